package finance

import (
	"errors"

	"caudal-server/src/models"

	"github.com/shopspring/decimal"
)

var ErrNoAdjustment = errors.New("actual balance equals computed balance, nothing to adjust")

// Adjustment is the synthetic transaction that reconciles a wallet.
type Adjustment struct {
	Kind   models.Kind
	Amount decimal.Decimal
}

// PlanAdjustment computes the correction that moves computed to actual.
func PlanAdjustment(computed, actual decimal.Decimal) (Adjustment, error) {
	diff := actual.Sub(computed)
	if diff.IsZero() {
		return Adjustment{}, ErrNoAdjustment
	}
	kind := models.KindExpense
	if diff.IsPositive() {
		kind = models.KindIncome
	}
	return Adjustment{Kind: kind, Amount: diff.Abs()}, nil
}
