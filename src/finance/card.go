package finance

import (
	"time"

	"caudal-server/src/models"

	"github.com/shopspring/decimal"
)

// PaymentUpcomingDays is the horizon in which a card payment is flagged.
const PaymentUpcomingDays = 5

// PaymentUrgentDays is the horizon in which the flag becomes a danger alert.
const PaymentUrgentDays = 2

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// DaysUntilPayment returns how many days remain until paymentDay, rolling
// over into the next month when the day has already passed. The target day
// is not clamped to the length of the next month.
func DaysUntilPayment(paymentDay int, today time.Time) int {
	day := today.Day()
	if paymentDay >= day {
		return paymentDay - day
	}
	return DaysInMonth(today) - day + paymentDay
}

// CardStatus reports the billing position of a credit wallet. It returns nil
// for wallets that are not credit cards or carry no positive limit.
func CardStatus(w models.Wallet, balance decimal.Decimal, today time.Time) *models.CardStatus {
	if w.Kind != models.WalletCredit || w.CreditLimit == nil || !w.CreditLimit.IsPositive() {
		return nil
	}
	used := balance.Abs()
	status := &models.CardStatus{
		CreditUsed:      used,
		CreditAvailable: w.CreditLimit.Sub(used),
		UsagePercent:    percentOf(used, *w.CreditLimit),
	}
	if w.PaymentDay != nil {
		days := DaysUntilPayment(*w.PaymentDay, today)
		status.DaysUntilPayment = &days
		status.PaymentUpcoming = days <= PaymentUpcomingDays
	}
	return status
}
