package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	DefaultCurrency     string    `json:"default_currency"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
}

const DefaultCurrency = "HNL"

// RecordSet names a group of rows counted for the profile summary.
type RecordSet string

const (
	RecordTransactions  RecordSet = "transactions"
	RecordActiveWallets RecordSet = "active_wallets"
	RecordCategories    RecordSet = "categories"
	RecordBudgets       RecordSet = "budgets"
	RecordDebts         RecordSet = "debts"
)

// ProfileStats is the usage summary shown on the profile page.
type ProfileStats struct {
	Transactions int `json:"transactions"`
	Wallets      int `json:"wallets"`
	Categories   int `json:"categories"`
	Budgets      int `json:"budgets"`
	Debts        int `json:"debts"`
}
