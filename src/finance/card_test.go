package finance

import (
	"testing"
	"time"

	"caudal-server/src/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func intPtr(i int) *int { return &i }

func TestDaysUntilPayment(t *testing.T) {
	tests := []struct {
		name       string
		paymentDay int
		today      time.Time
		want       int
	}{
		{"later this month", 20, day(2025, time.March, 10), 10},
		{"today", 10, day(2025, time.March, 10), 0},
		{"rolls over 30 day month", 5, day(2025, time.April, 28), 7},
		{"rolls over february", 3, day(2025, time.February, 27), 4},
		{"leap february", 3, day(2024, time.February, 27), 5},
		// Day 31 is not clamped to the next month's length.
		{"unclamped 31", 31, day(2025, time.April, 30), 1},
		{"unclamped rollover", 1, day(2025, time.January, 31), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntilPayment(tt.paymentDay, tt.today); got != tt.want {
				t.Fatalf("DaysUntilPayment(%d, %s) = %d, want %d", tt.paymentDay, tt.today.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestCardStatus(t *testing.T) {
	limit := dec("1000")
	w := models.Wallet{Kind: models.WalletCredit, CreditLimit: &limit, PaymentDay: intPtr(12)}

	st := CardStatus(w, dec("-250"), day(2025, time.June, 9))
	if st == nil {
		t.Fatalf("expected card status")
	}
	if !st.CreditUsed.Equal(dec("250")) || !st.CreditAvailable.Equal(dec("750")) {
		t.Fatalf("used/available = %s/%s, want 250/750", st.CreditUsed, st.CreditAvailable)
	}
	if st.UsagePercent != 25 {
		t.Fatalf("usage = %v, want 25", st.UsagePercent)
	}
	if st.DaysUntilPayment == nil || *st.DaysUntilPayment != 3 || !st.PaymentUpcoming {
		t.Fatalf("payment days = %v upcoming=%v, want 3 true", st.DaysUntilPayment, st.PaymentUpcoming)
	}

	if CardStatus(models.Wallet{Kind: models.WalletBank}, dec("10"), day(2025, time.June, 9)) != nil {
		t.Fatalf("bank wallet should have no card status")
	}
	if CardStatus(models.Wallet{Kind: models.WalletCredit}, dec("10"), day(2025, time.June, 9)) != nil {
		t.Fatalf("credit wallet without limit should have no card status")
	}
}
