package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID                  uuid.UUID       `json:"id"`
	UserID              uuid.UUID       `json:"user_id"`
	WalletID            uuid.UUID       `json:"wallet_id"`
	DestinationWalletID *uuid.UUID      `json:"destination_wallet_id,omitempty"`
	TransferID          *uuid.UUID      `json:"transfer_id,omitempty"`
	CategoryID          *uuid.UUID      `json:"category_id,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	Kind                Kind            `json:"kind"`
	Date                Date            `json:"date"`
	Note                string          `json:"note"`
	CategoryName        string          `json:"category_name,omitempty"`
	CategoryIcon        string          `json:"category_icon,omitempty"`
	CategoryColor       string          `json:"category_color,omitempty"`
	WalletName          string          `json:"wallet_name,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// IsTransferLeg reports whether the row is one half of a transfer.
func (t Transaction) IsTransferLeg() bool {
	return t.TransferID != nil || t.DestinationWalletID != nil
}

// TransactionFilter narrows a transaction listing. Zero values mean "any".
type TransactionFilter struct {
	From       Date
	To         Date // exclusive
	Kind       Kind
	CategoryID *uuid.UUID
	WalletID   *uuid.UUID
	Search     string
	Limit      int
}

type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Totals       Totals        `json:"totals"`
}

type Transfer struct {
	Out Transaction `json:"out"`
	In  Transaction `json:"in"`
}
