package finance

import (
	"errors"

	"caudal-server/src/models"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPaymentAmount  = errors.New("payment amount must be greater than zero")
	ErrPaymentExceedsPending = errors.New("payment exceeds the pending amount")
)

// Pending is what is still owed on a debt, never negative.
func Pending(d models.Debt) decimal.Decimal {
	p := d.TotalAmount.Sub(d.PaidAmount)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// Progress is the paid share of the total as a percentage capped at 100.
func Progress(d models.Debt) float64 {
	if !d.TotalAmount.IsPositive() {
		return 0
	}
	p := percentOf(d.PaidAmount, d.TotalAmount)
	if p > 100 {
		return 100
	}
	return p
}

func ValidatePayment(d models.Debt, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidPaymentAmount
	}
	if amount.GreaterThan(Pending(d)) {
		return ErrPaymentExceedsPending
	}
	return nil
}

// ApplyPayment returns the debt after an abono of amount.
func ApplyPayment(d models.Debt, amount decimal.Decimal) (models.Debt, error) {
	if err := ValidatePayment(d, amount); err != nil {
		return d, err
	}
	d.PaidAmount = d.PaidAmount.Add(amount)
	d.Completed = d.PaidAmount.GreaterThanOrEqual(d.TotalAmount)
	return d, nil
}

// PaymentKind is the kind of the transaction mirroring a payment: money
// leaves the wallet when the user pays a debt and arrives when collecting.
func PaymentKind(direction models.DebtDirection) models.Kind {
	if direction == models.DebtOwedToMe {
		return models.KindIncome
	}
	return models.KindExpense
}

// WithProgress decorates debts for listing and totals pending per direction.
func WithProgress(debts []models.Debt) models.DebtList {
	list := models.DebtList{
		Debts:         make([]models.DebtWithProgress, 0, len(debts)),
		TotalOwedByMe: decimal.Zero,
		TotalOwedToMe: decimal.Zero,
	}
	for _, d := range debts {
		pending := Pending(d)
		list.Debts = append(list.Debts, models.DebtWithProgress{Debt: d, Pending: pending, Progress: Progress(d)})
		if d.Completed {
			continue
		}
		if d.Direction == models.DebtOwedToMe {
			list.TotalOwedToMe = list.TotalOwedToMe.Add(pending)
		} else {
			list.TotalOwedByMe = list.TotalOwedByMe.Add(pending)
		}
	}
	return list
}
