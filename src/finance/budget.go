package finance

import (
	"errors"
	"math"

	"caudal-server/src/models"

	"github.com/shopspring/decimal"
)

const (
	BudgetWarningPercent = 80
	BudgetDangerPercent  = 100
)

var ErrZeroLimit = errors.New("budget limit must be greater than zero")

// SpendPercentage returns spent/limit*100.
func SpendPercentage(spent, limit decimal.Decimal) (float64, error) {
	if !limit.IsPositive() {
		return 0, ErrZeroLimit
	}
	return percentOf(spent, limit), nil
}

// BudgetLevel maps a spend percentage to an alert level, or "" when the
// budget is still comfortable.
func BudgetLevel(percentage float64) models.AlertLevel {
	switch {
	case percentage >= BudgetDangerPercent:
		return models.AlertDanger
	case percentage >= BudgetWarningPercent:
		return models.AlertWarning
	}
	return ""
}

// Usage combines a budget with its spend. A zero limit yields 0% rather
// than an error so listings never fail on a bad row.
func Usage(b models.Budget, spent decimal.Decimal) models.BudgetUsage {
	pct, err := SpendPercentage(spent, b.Limit)
	if err != nil {
		pct = 0
	}
	return models.BudgetUsage{
		Budget:     b,
		Spent:      spent,
		Remaining:  b.Limit.Sub(spent),
		Percentage: pct,
		Progress:   math.Min(pct, 100),
		Level:      BudgetLevel(pct),
	}
}
