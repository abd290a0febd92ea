package finance

import (
	"testing"

	"caudal-server/src/models"

	"github.com/google/uuid"
)

func TestSpendPercentage(t *testing.T) {
	pct, err := SpendPercentage(dec("850"), dec("1000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pct != 85 {
		t.Fatalf("percentage = %v, want 85", pct)
	}
	if BudgetLevel(pct) != models.AlertWarning {
		t.Fatalf("level = %q, want warning", BudgetLevel(pct))
	}

	if _, err := SpendPercentage(dec("10"), dec("0")); err != ErrZeroLimit {
		t.Fatalf("expected ErrZeroLimit, got %v", err)
	}
}

func TestBudgetLevel(t *testing.T) {
	tests := []struct {
		pct  float64
		want models.AlertLevel
	}{
		{0, ""},
		{79.99, ""},
		{80, models.AlertWarning},
		{99.9, models.AlertWarning},
		{100, models.AlertDanger},
		{240, models.AlertDanger},
	}
	for _, tt := range tests {
		if got := BudgetLevel(tt.pct); got != tt.want {
			t.Errorf("BudgetLevel(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestSpendPercentageMonotonic(t *testing.T) {
	limit := dec("300")
	spent := dec("0")
	prev := -1.0
	for _, amount := range []string{"10", "0", "55.5", "100", "200", "0.01"} {
		spent = spent.Add(dec(amount))
		pct, err := SpendPercentage(spent, limit)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pct < prev {
			t.Fatalf("percentage decreased from %v to %v", prev, pct)
		}
		prev = pct
	}
}

func TestUsageCapsProgress(t *testing.T) {
	b := models.Budget{ID: uuid.New(), Limit: dec("100")}
	u := Usage(b, dec("150"))
	if u.Percentage != 150 || u.Progress != 100 {
		t.Fatalf("percentage/progress = %v/%v, want 150/100", u.Percentage, u.Progress)
	}
	if !u.Remaining.Equal(dec("-50")) {
		t.Fatalf("remaining = %s, want -50", u.Remaining)
	}
	if u.Level != models.AlertDanger {
		t.Fatalf("level = %q, want danger", u.Level)
	}

	zero := Usage(models.Budget{Limit: dec("0")}, dec("5"))
	if zero.Percentage != 0 || zero.Level != "" {
		t.Fatalf("zero limit usage = %+v", zero)
	}
}
