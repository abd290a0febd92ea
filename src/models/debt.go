package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DebtDirection string

const (
	DebtOwedByMe DebtDirection = "owed_by_me"
	DebtOwedToMe DebtDirection = "owed_to_me"
)

func (d DebtDirection) Valid() bool {
	return d == DebtOwedByMe || d == DebtOwedToMe
}

type Debt struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Counterparty string          `json:"counterparty"`
	Description  string          `json:"description"`
	Direction    DebtDirection   `json:"direction"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	DueDate      *Date           `json:"due_date,omitempty"`
	Completed    bool            `json:"completed"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type DebtPayment struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	DebtID    uuid.UUID       `json:"debt_id"`
	WalletID  uuid.UUID       `json:"wallet_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      Date            `json:"date"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

type DebtWithProgress struct {
	Debt
	Pending  decimal.Decimal `json:"pending"`
	Progress float64         `json:"progress"`
}

type DebtList struct {
	Debts         []DebtWithProgress `json:"debts"`
	TotalOwedByMe decimal.Decimal    `json:"total_owed_by_me"`
	TotalOwedToMe decimal.Decimal    `json:"total_owed_to_me"`
}

// DebtPaymentResult is what recording an abono produces.
type DebtPaymentResult struct {
	Payment     DebtPayment `json:"payment"`
	Debt        Debt        `json:"debt"`
	Transaction Transaction `json:"transaction"`
}
