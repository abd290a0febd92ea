package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Name      string     `json:"name"`
	Icon      string     `json:"icon"`
	Color     string     `json:"color"`
	Kind      Kind       `json:"kind"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	IsSystem  bool       `json:"is_system"`
	CreatedAt time.Time  `json:"created_at"`
}

// System categories are created on demand the first time a synthetic
// transaction needs them.
const (
	SystemCategoryAdjustment  = "Ajuste de saldo"
	SystemCategoryTransfer    = "Transferencia"
	SystemCategoryDebtPayment = "Pago de deuda"
)

// UncategorizedName labels report rows whose category is missing.
const UncategorizedName = "Sin categoría"
