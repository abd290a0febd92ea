package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"caudal-server/src/finance"
	"caudal-server/src/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func seed(t *testing.T, s *Store, user uuid.UUID) (models.Wallet, models.Category) {
	t.Helper()
	ctx := context.Background()
	w, err := s.CreateWallet(ctx, &models.Wallet{UserID: user, Name: "Banco", Kind: models.WalletBank, InitialBalance: decimal.NewFromInt(100)})
	if err != nil {
		t.Fatalf("CreateWallet: %v", err)
	}
	c, err := s.CreateCategory(ctx, &models.Category{UserID: user, Name: "Comida", Kind: models.KindExpense})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	return *w, *c
}

func TestUserScoping(t *testing.T) {
	s := New()
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()
	w, _ := seed(t, s, alice)

	if _, err := s.GetWallet(ctx, bob, w.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("other user's wallet: err = %v, want ErrNotFound", err)
	}
	list, _ := s.ListWallets(ctx, bob, true)
	if len(list) != 0 {
		t.Fatalf("bob sees %d wallets", len(list))
	}
}

func TestTransferDeleteRemovesBothLegs(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := uuid.New()
	a, _ := seed(t, s, user)
	b, err := s.CreateWallet(ctx, &models.Wallet{UserID: user, Name: "Efectivo", Kind: models.WalletCash})
	if err != nil {
		t.Fatalf("CreateWallet: %v", err)
	}

	transferID := uuid.New()
	day := models.NewDate(2025, time.May, 3)
	out := &models.Transaction{UserID: user, WalletID: a.ID, DestinationWalletID: &b.ID, TransferID: &transferID, Kind: models.KindExpense, Amount: decimal.NewFromInt(30), Date: day}
	in := &models.Transaction{UserID: user, WalletID: b.ID, DestinationWalletID: &a.ID, TransferID: &transferID, Kind: models.KindIncome, Amount: decimal.NewFromInt(30), Date: day}
	tr, err := s.CreateTransfer(ctx, out, in)
	if err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	if tr.Out.WalletName != "Banco" {
		t.Fatalf("out leg not joined: %+v", tr.Out)
	}

	totals, _ := s.WalletTotals(ctx, user)
	if !totals[a.ID].Expense.Equal(decimal.NewFromInt(30)) || !totals[b.ID].Income.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("totals = %+v", totals)
	}

	if err := s.DeleteTransaction(ctx, user, tr.In.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	left, _ := s.ListTransactions(ctx, user, models.TransactionFilter{})
	if len(left) != 0 {
		t.Fatalf("%d legs left after delete", len(left))
	}
}

func TestBudgetUniqueness(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := uuid.New()
	_, c := seed(t, s, user)

	b := &models.Budget{UserID: user, CategoryID: c.ID, Month: 4, Year: 2025, Limit: decimal.NewFromInt(500)}
	if _, err := s.CreateBudget(ctx, b); err != nil {
		t.Fatalf("CreateBudget: %v", err)
	}
	if _, err := s.CreateBudget(ctx, &models.Budget{UserID: user, CategoryID: c.ID, Month: 4, Year: 2025, Limit: decimal.NewFromInt(1)}); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("duplicate budget: err = %v, want ErrConflict", err)
	}
	if _, err := s.CreateBudget(ctx, &models.Budget{UserID: user, CategoryID: c.ID, Month: 5, Year: 2025, Limit: decimal.NewFromInt(1)}); err != nil {
		t.Fatalf("next month budget: %v", err)
	}

	if err := s.DeleteCategory(ctx, user, c.ID); !errors.Is(err, models.ErrInUse) {
		t.Fatalf("deleting a budgeted category: err = %v, want ErrInUse", err)
	}
}

func TestListTransactionsFilters(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := uuid.New()
	w, food := seed(t, s, user)
	snacks, err := s.CreateCategory(ctx, &models.Category{UserID: user, Name: "Snacks", Kind: models.KindExpense, ParentID: &food.ID})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	add := func(kind models.Kind, amount int64, d models.Date, cat *uuid.UUID, note string) {
		if _, err := s.CreateTransaction(ctx, &models.Transaction{UserID: user, WalletID: w.ID, Kind: kind, Amount: decimal.NewFromInt(amount), Date: d, CategoryID: cat, Note: note}); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}
	add(models.KindExpense, 10, models.NewDate(2025, time.March, 31), &food.ID, "marzo")
	add(models.KindExpense, 20, models.NewDate(2025, time.April, 1), &snacks.ID, "chips")
	add(models.KindIncome, 99, models.NewDate(2025, time.April, 15), nil, "salario")

	april := models.YearMonth{Year: 2025, Month: time.April}
	got, _ := s.ListTransactions(ctx, user, models.TransactionFilter{From: april.Start(), To: april.End()})
	if len(got) != 2 || got[0].Note != "salario" {
		t.Fatalf("april listing = %+v", got)
	}

	got, _ = s.ListTransactions(ctx, user, models.TransactionFilter{CategoryID: &food.ID})
	if len(got) != 2 {
		t.Fatalf("parent category filter should include children, got %d", len(got))
	}

	got, _ = s.ListTransactions(ctx, user, models.TransactionFilter{Search: "SNACK"})
	if len(got) != 1 || got[0].CategoryName != "Snacks" {
		t.Fatalf("search by category name = %+v", got)
	}
}

func TestRecordDebtPaymentGuard(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := uuid.New()
	w, c := seed(t, s, user)
	d, err := s.CreateDebt(ctx, &models.Debt{UserID: user, Counterparty: "Ana", Direction: models.DebtOwedByMe, TotalAmount: decimal.NewFromInt(500)})
	if err != nil {
		t.Fatalf("CreateDebt: %v", err)
	}

	pay := func(amount int64) (*models.DebtPaymentResult, error) {
		return s.RecordDebtPayment(ctx,
			&models.DebtPayment{UserID: user, DebtID: d.ID, WalletID: w.ID, Amount: decimal.NewFromInt(amount), Date: models.NewDate(2025, time.June, 1)},
			&models.Transaction{UserID: user, WalletID: w.ID, CategoryID: &c.ID, Kind: models.KindExpense, Amount: decimal.NewFromInt(amount), Date: models.NewDate(2025, time.June, 1)},
		)
	}
	if _, err := pay(501); !errors.Is(err, finance.ErrPaymentExceedsPending) {
		t.Fatalf("overpayment: err = %v, want ErrPaymentExceedsPending", err)
	}
	res, err := pay(500)
	if err != nil {
		t.Fatalf("RecordDebtPayment: %v", err)
	}
	if !res.Debt.Completed || res.Transaction.WalletName != "Banco" {
		t.Fatalf("result = %+v", res)
	}
	if err := s.DeleteDebt(ctx, user, d.ID); !errors.Is(err, models.ErrInUse) {
		t.Fatalf("deleting a debt with payments: err = %v, want ErrInUse", err)
	}
}

func TestTransferFailedLegLeavesNothing(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := uuid.New()
	a, c := seed(t, s, user)
	b, err := s.CreateWallet(ctx, &models.Wallet{UserID: user, Name: "Efectivo", Kind: models.WalletCash})
	if err != nil {
		t.Fatalf("CreateWallet: %v", err)
	}
	day := models.NewDate(2025, time.May, 3)
	existing, err := s.CreateTransaction(ctx, &models.Transaction{UserID: user, WalletID: a.ID, CategoryID: &c.ID, Kind: models.KindExpense, Amount: decimal.NewFromInt(5), Date: day})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	transferID := uuid.New()
	out := &models.Transaction{UserID: user, WalletID: a.ID, DestinationWalletID: &b.ID, TransferID: &transferID, Kind: models.KindExpense, Amount: decimal.NewFromInt(30), Date: day}
	in := &models.Transaction{ID: existing.ID, UserID: user, WalletID: b.ID, DestinationWalletID: &a.ID, TransferID: &transferID, Kind: models.KindIncome, Amount: decimal.NewFromInt(30), Date: day}
	if _, err := s.CreateTransfer(ctx, out, in); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("CreateTransfer: err = %v, want ErrConflict", err)
	}
	got, _ := s.ListTransactions(ctx, user, models.TransactionFilter{})
	if len(got) != 1 || got[0].ID != existing.ID {
		t.Fatalf("transactions after failed transfer = %+v", got)
	}
}

func TestDebtPaymentFailedMirrorLeavesDebtUntouched(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := uuid.New()
	w, c := seed(t, s, user)
	d, err := s.CreateDebt(ctx, &models.Debt{UserID: user, Counterparty: "Ana", Direction: models.DebtOwedByMe, TotalAmount: decimal.NewFromInt(500)})
	if err != nil {
		t.Fatalf("CreateDebt: %v", err)
	}
	day := models.NewDate(2025, time.June, 1)
	existing, err := s.CreateTransaction(ctx, &models.Transaction{UserID: user, WalletID: w.ID, CategoryID: &c.ID, Kind: models.KindExpense, Amount: decimal.NewFromInt(5), Date: day})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	_, err = s.RecordDebtPayment(ctx,
		&models.DebtPayment{UserID: user, DebtID: d.ID, WalletID: w.ID, Amount: decimal.NewFromInt(100), Date: day},
		&models.Transaction{ID: existing.ID, UserID: user, WalletID: w.ID, CategoryID: &c.ID, Kind: models.KindExpense, Amount: decimal.NewFromInt(100), Date: day},
	)
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("RecordDebtPayment: err = %v, want ErrConflict", err)
	}
	after, _ := s.GetDebt(ctx, user, d.ID)
	if !after.PaidAmount.IsZero() {
		t.Errorf("paid amount = %s, want 0", after.PaidAmount)
	}
	if payments, _ := s.ListDebtPayments(ctx, user, d.ID); len(payments) != 0 {
		t.Errorf("payments = %d, want 0", len(payments))
	}
}
