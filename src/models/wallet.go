package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WalletKind string

const (
	WalletCash    WalletKind = "cash"
	WalletBank    WalletKind = "bank"
	WalletCredit  WalletKind = "credit"
	WalletSavings WalletKind = "savings"
)

func (k WalletKind) Valid() bool {
	switch k {
	case WalletCash, WalletBank, WalletCredit, WalletSavings:
		return true
	}
	return false
}

type Wallet struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	Name           string           `json:"name"`
	Kind           WalletKind       `json:"kind"`
	InitialBalance decimal.Decimal  `json:"initial_balance"`
	Currency       string           `json:"currency"`
	Color          string           `json:"color"`
	CreditLimit    *decimal.Decimal `json:"credit_limit,omitempty"`
	StatementDay   *int             `json:"statement_day,omitempty"`
	PaymentDay     *int             `json:"payment_day,omitempty"`
	Active         bool             `json:"active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// WalletWithBalance is a wallet as shown in listings: the stored row plus
// its derived balance.
type WalletWithBalance struct {
	Wallet
	Balance decimal.Decimal `json:"balance"`
	Card    *CardStatus     `json:"card,omitempty"`
}

// CardStatus describes the billing position of a credit wallet.
type CardStatus struct {
	CreditUsed       decimal.Decimal `json:"credit_used"`
	CreditAvailable  decimal.Decimal `json:"credit_available"`
	UsagePercent     float64         `json:"usage_percent"`
	DaysUntilPayment *int            `json:"days_until_payment,omitempty"`
	PaymentUpcoming  bool            `json:"payment_upcoming"`
}

type WalletList struct {
	Wallets  []WalletWithBalance `json:"wallets"`
	NetWorth decimal.Decimal     `json:"net_worth"`
}

// Totals holds signed sums of a set of transactions.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

func (t Totals) Add(kind Kind, amount decimal.Decimal) Totals {
	switch kind {
	case KindIncome:
		t.Income = t.Income.Add(amount)
	case KindExpense:
		t.Expense = t.Expense.Add(amount)
	}
	return t
}
