package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Budget struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	CategoryID    uuid.UUID       `json:"category_id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Limit         decimal.Decimal `json:"limit"`
	CategoryName  string          `json:"category_name,omitempty"`
	CategoryIcon  string          `json:"category_icon,omitempty"`
	CategoryColor string          `json:"category_color,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BudgetUsage is a budget together with what has been spent against it.
type BudgetUsage struct {
	Budget
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage float64         `json:"percentage"`
	Progress   float64         `json:"progress"`
	Level      AlertLevel      `json:"level,omitempty"`
}

type BudgetList struct {
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Budgets    []BudgetUsage   `json:"budgets"`
	TotalLimit decimal.Decimal `json:"total_limit"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}
