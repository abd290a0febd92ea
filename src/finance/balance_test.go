package finance

import (
	"testing"

	"caudal-server/src/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txn(kind models.Kind, amount string) models.Transaction {
	return models.Transaction{ID: uuid.New(), Kind: kind, Amount: dec(amount)}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		txns    []models.Transaction
		want    string
	}{
		{"no movements", "1000", nil, "1000"},
		{"expense and income", "1000", []models.Transaction{txn(models.KindExpense, "200"), txn(models.KindIncome, "50")}, "850"},
		{"negative result", "0", []models.Transaction{txn(models.KindExpense, "12.50")}, "-12.5"},
		{"cents", "10.10", []models.Transaction{txn(models.KindIncome, "0.20"), txn(models.KindExpense, "0.05")}, "10.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Balance(dec(tt.initial), tt.txns)
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("Balance() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBalanceIndependentOfOrder(t *testing.T) {
	txns := []models.Transaction{
		txn(models.KindExpense, "200"),
		txn(models.KindIncome, "50"),
		txn(models.KindExpense, "33.33"),
		txn(models.KindIncome, "1000"),
	}
	want := Balance(dec("500"), txns)

	reversed := make([]models.Transaction, len(txns))
	for i, t := range txns {
		reversed[len(txns)-1-i] = t
	}
	if got := Balance(dec("500"), reversed); !got.Equal(want) {
		t.Fatalf("reversed order balance = %s, want %s", got, want)
	}
	if got := BalanceFromTotals(dec("500"), SumByKind(txns)); !got.Equal(want) {
		t.Fatalf("BalanceFromTotals = %s, want %s", got, want)
	}
}

func TestNetWorthSkipsInactiveWallets(t *testing.T) {
	wallets := []models.WalletWithBalance{
		{Wallet: models.Wallet{Active: true}, Balance: dec("100")},
		{Wallet: models.Wallet{Active: true}, Balance: dec("-40")},
		{Wallet: models.Wallet{Active: false}, Balance: dec("999")},
	}
	if got := NetWorth(wallets); !got.Equal(dec("60")) {
		t.Fatalf("NetWorth = %s, want 60", got)
	}
}

func TestPlanAdjustment(t *testing.T) {
	if _, err := PlanAdjustment(dec("100"), dec("100.00")); err != ErrNoAdjustment {
		t.Fatalf("expected ErrNoAdjustment, got %v", err)
	}

	adj, err := PlanAdjustment(dec("100"), dec("150.25"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adj.Kind != models.KindIncome || !adj.Amount.Equal(dec("50.25")) {
		t.Fatalf("got %+v, want income 50.25", adj)
	}

	adj, err = PlanAdjustment(dec("100"), dec("-20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adj.Kind != models.KindExpense || !adj.Amount.Equal(dec("120")) {
		t.Fatalf("got %+v, want expense 120", adj)
	}

	// Applying the plan must land exactly on the actual balance.
	computed := dec("100")
	after := Balance(computed, []models.Transaction{{Kind: adj.Kind, Amount: adj.Amount}})
	if !after.Equal(dec("-20")) {
		t.Fatalf("balance after adjustment = %s, want -20", after)
	}
}
