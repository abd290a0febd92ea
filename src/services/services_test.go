package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"caudal-server/src/db/memory"
	"caudal-server/src/finance"
	"caudal-server/src/models"
	"caudal-server/src/session"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2025, time.May, 20, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type fixture struct {
	ctx   context.Context
	store *memory.Store
	svc   *Services
	user  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	return &fixture{
		ctx:   context.Background(),
		store: store,
		svc:   New(store, nil, clock),
		user:  uuid.New(),
	}
}

func (f *fixture) wallet(t *testing.T, name string, kind models.WalletKind, initial int64) *models.Wallet {
	t.Helper()
	w, err := f.svc.Wallets.Create(f.ctx, f.user, WalletInput{Name: name, Kind: kind, InitialBalance: dec(initial)})
	if err != nil {
		t.Fatalf("create wallet %q: %v", name, err)
	}
	return w
}

func (f *fixture) category(t *testing.T, name string, kind models.Kind, parent *uuid.UUID) *models.Category {
	t.Helper()
	c, err := f.svc.Categories.Create(f.ctx, f.user, CategoryInput{Name: name, Kind: kind, ParentID: parent})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

func (f *fixture) txn(t *testing.T, w *models.Wallet, c *models.Category, kind models.Kind, amount int64) *models.Transaction {
	t.Helper()
	tx, err := f.svc.Transactions.Create(f.ctx, f.user, TransactionInput{
		WalletID:   w.ID,
		CategoryID: &c.ID,
		Amount:     dec(amount),
		Kind:       kind,
		Date:       models.NewDate(2025, time.May, 10),
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return tx
}

func TestWalletBalanceFollowsTransactions(t *testing.T) {
	f := newFixture(t)
	w := f.wallet(t, "Banco", models.WalletBank, 1000)
	food := f.category(t, "Comida", models.KindExpense, nil)
	salary := f.category(t, "Salario", models.KindIncome, nil)
	f.txn(t, w, food, models.KindExpense, 200)
	f.txn(t, w, salary, models.KindIncome, 50)

	got, err := f.svc.Wallets.Get(f.ctx, f.user, w.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Balance.Equal(dec(850)) {
		t.Fatalf("balance = %s, want 850", got.Balance)
	}
}

func TestAdjustRejectsNoopAndPostsDifference(t *testing.T) {
	f := newFixture(t)
	w := f.wallet(t, "Efectivo", models.WalletCash, 300)

	if _, err := f.svc.Wallets.Adjust(f.ctx, f.user, w.ID, dec(300)); !errors.Is(err, finance.ErrNoAdjustment) {
		t.Fatalf("zero difference: err = %v, want ErrNoAdjustment", err)
	}

	tests := []struct {
		actual int64
		kind   models.Kind
		amount int64
	}{
		{actual: 250, kind: models.KindExpense, amount: 50},
		{actual: 400, kind: models.KindIncome, amount: 150},
	}
	for _, tt := range tests {
		tx, err := f.svc.Wallets.Adjust(f.ctx, f.user, w.ID, dec(tt.actual))
		if err != nil {
			t.Fatalf("Adjust(%d): %v", tt.actual, err)
		}
		if tx.Kind != tt.kind || !tx.Amount.Equal(dec(tt.amount)) {
			t.Errorf("Adjust(%d) = %s %s, want %s %d", tt.actual, tx.Kind, tx.Amount, tt.kind, tt.amount)
		}
		if tx.Note != "Ajuste de saldo — Efectivo" {
			t.Errorf("note = %q", tx.Note)
		}
		got, _ := f.svc.Wallets.Get(f.ctx, f.user, w.ID)
		if !got.Balance.Equal(dec(tt.actual)) {
			t.Errorf("balance after adjust = %s, want %d", got.Balance, tt.actual)
		}
	}
}

func TestTransferCreatesTwoLegs(t *testing.T) {
	f := newFixture(t)
	a := f.wallet(t, "Banco", models.WalletBank, 500)
	b := f.wallet(t, "Ahorro", models.WalletSavings, 0)

	tr, err := f.svc.Transactions.CreateTransfer(f.ctx, f.user, TransferInput{
		FromWalletID: a.ID,
		ToWalletID:   b.ID,
		Amount:       dec(120),
	})
	if err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	if tr.Out.Kind != models.KindExpense || tr.Out.WalletID != a.ID {
		t.Errorf("out leg = %s on %s", tr.Out.Kind, tr.Out.WalletID)
	}
	if tr.In.Kind != models.KindIncome || tr.In.WalletID != b.ID {
		t.Errorf("in leg = %s on %s", tr.In.Kind, tr.In.WalletID)
	}
	if !tr.Out.Date.Equal(tr.In.Date.Time) || !tr.Out.Amount.Equal(tr.In.Amount) {
		t.Errorf("legs differ: %v/%s vs %v/%s", tr.Out.Date, tr.Out.Amount, tr.In.Date, tr.In.Amount)
	}
	if tr.Out.Note != "Transferencia a Ahorro" || tr.In.Note != "Transferencia desde Banco" {
		t.Errorf("notes = %q / %q", tr.Out.Note, tr.In.Note)
	}

	list, err := f.svc.Wallets.List(f.ctx, f.user)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !list.NetWorth.Equal(dec(500)) {
		t.Errorf("net worth = %s, want 500", list.NetWorth)
	}

	if _, err := f.svc.Transactions.Update(f.ctx, f.user, tr.In.ID, TransactionInput{}); !errors.Is(err, ErrTransferLegReadOnly) {
		t.Errorf("update leg: err = %v", err)
	}
	if err := f.svc.Transactions.Delete(f.ctx, f.user, tr.Out.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.svc.Transactions.Get(f.ctx, f.user, tr.In.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("pair survived delete: err = %v", err)
	}
}

func TestTransferToSameWalletRejected(t *testing.T) {
	f := newFixture(t)
	a := f.wallet(t, "Banco", models.WalletBank, 500)
	_, err := f.svc.Transactions.CreateTransfer(f.ctx, f.user, TransferInput{FromWalletID: a.ID, ToWalletID: a.ID, Amount: dec(1)})
	if !IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestTransactionValidation(t *testing.T) {
	f := newFixture(t)
	w := f.wallet(t, "Banco", models.WalletBank, 0)
	food := f.category(t, "Comida", models.KindExpense, nil)
	f.category(t, "Restaurantes", models.KindExpense, &food.ID)
	salary := f.category(t, "Salario", models.KindIncome, nil)

	tests := []struct {
		name string
		in   TransactionInput
	}{
		{"zero amount", TransactionInput{WalletID: w.ID, CategoryID: &salary.ID, Kind: models.KindIncome}},
		{"missing category", TransactionInput{WalletID: w.ID, Amount: dec(5), Kind: models.KindExpense}},
		{"kind mismatch", TransactionInput{WalletID: w.ID, CategoryID: &salary.ID, Amount: dec(5), Kind: models.KindExpense}},
		{"parent with children", TransactionInput{WalletID: w.ID, CategoryID: &food.ID, Amount: dec(5), Kind: models.KindExpense}},
		{"unknown wallet", TransactionInput{WalletID: uuid.New(), CategoryID: &salary.ID, Amount: dec(5), Kind: models.KindIncome}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.Transactions.Create(f.ctx, f.user, tt.in); !IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
		})
	}
}

func TestSubcategoryInheritsKindAndBlocksParentDelete(t *testing.T) {
	f := newFixture(t)
	food := f.category(t, "Comida", models.KindExpense, nil)
	child := f.category(t, "Súper", models.KindIncome, &food.ID)
	if child.Kind != models.KindExpense {
		t.Errorf("child kind = %s, want expense", child.Kind)
	}
	if _, err := f.svc.Categories.Create(f.ctx, f.user, CategoryInput{Name: "Nieto", ParentID: &child.ID}); !IsValidation(err) {
		t.Errorf("grandchild: err = %v", err)
	}
	if err := f.svc.Categories.Delete(f.ctx, f.user, food.ID); !errors.Is(err, models.ErrInUse) {
		t.Errorf("delete parent: err = %v, want ErrInUse", err)
	}
}

func TestBudgetUsageAndDuplicate(t *testing.T) {
	f := newFixture(t)
	w := f.wallet(t, "Banco", models.WalletBank, 5000)
	food := f.category(t, "Comida", models.KindExpense, nil)

	in := BudgetInput{CategoryID: food.ID, Limit: dec(1000)}
	if _, err := f.svc.Budgets.Create(f.ctx, f.user, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.Budgets.Create(f.ctx, f.user, in); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("duplicate: err = %v, want ErrConflict", err)
	}
	f.txn(t, w, food, models.KindExpense, 850)

	list, err := f.svc.Budgets.List(f.ctx, f.user, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list.Budgets) != 1 {
		t.Fatalf("got %d budgets", len(list.Budgets))
	}
	u := list.Budgets[0]
	if u.Percentage != 85 || u.Level != models.AlertWarning {
		t.Errorf("usage = %v%% %q, want 85%% warning", u.Percentage, u.Level)
	}
	if !list.TotalSpent.Equal(dec(850)) || !list.TotalLimit.Equal(dec(1000)) {
		t.Errorf("totals = %s / %s", list.TotalSpent, list.TotalLimit)
	}

	alerts, err := f.svc.Notifications.Alerts(f.ctx, f.user)
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if len(alerts) != 1 || alerts[0].Level != models.AlertWarning {
		t.Fatalf("alerts = %+v, want one warning", alerts)
	}
}

func TestBudgetRejectsIncomeCategory(t *testing.T) {
	f := newFixture(t)
	salary := f.category(t, "Salario", models.KindIncome, nil)
	if _, err := f.svc.Budgets.Create(f.ctx, f.user, BudgetInput{CategoryID: salary.ID, Limit: dec(10)}); !IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestDebtPaymentCompletesDebt(t *testing.T) {
	f := newFixture(t)
	w := f.wallet(t, "Efectivo", models.WalletCash, 1000)
	debt, err := f.svc.Debts.Create(f.ctx, f.user, DebtInput{
		Counterparty: "Ana",
		Direction:    models.DebtOwedByMe,
		TotalAmount:  dec(500),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := f.svc.Debts.RecordPayment(f.ctx, f.user, debt.ID, PaymentInput{WalletID: w.ID, Amount: dec(200)})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if first.Debt.Completed {
		t.Fatal("debt completed after partial payment")
	}
	if first.Transaction.Kind != models.KindExpense || first.Transaction.Note != "Abono: Ana" {
		t.Errorf("mirror = %s %q", first.Transaction.Kind, first.Transaction.Note)
	}

	if _, err := f.svc.Debts.RecordPayment(f.ctx, f.user, debt.ID, PaymentInput{WalletID: w.ID, Amount: dec(301)}); !errors.Is(err, finance.ErrPaymentExceedsPending) {
		t.Fatalf("overpayment: err = %v", err)
	}
	last, err := f.svc.Debts.RecordPayment(f.ctx, f.user, debt.ID, PaymentInput{WalletID: w.ID, Amount: dec(300)})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if !last.Debt.Completed || !last.Debt.PaidAmount.Equal(dec(500)) {
		t.Errorf("debt = paid %s completed %v", last.Debt.PaidAmount, last.Debt.Completed)
	}

	payments, err := f.svc.Debts.Payments(f.ctx, f.user, debt.ID)
	if err != nil || len(payments) != 2 {
		t.Fatalf("Payments = %d, %v", len(payments), err)
	}
	got, _ := f.svc.Wallets.Get(f.ctx, f.user, w.ID)
	if !got.Balance.Equal(dec(500)) {
		t.Errorf("wallet balance = %s, want 500", got.Balance)
	}
}

func TestCollectingDebtRecordsIncome(t *testing.T) {
	f := newFixture(t)
	w := f.wallet(t, "Banco", models.WalletBank, 0)
	debt, err := f.svc.Debts.Create(f.ctx, f.user, DebtInput{Counterparty: "Luis", Direction: models.DebtOwedToMe, TotalAmount: dec(100)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	res, err := f.svc.Debts.RecordPayment(f.ctx, f.user, debt.ID, PaymentInput{WalletID: w.ID, Amount: dec(40), Note: "efectivo"})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if res.Transaction.Kind != models.KindIncome {
		t.Errorf("mirror kind = %s, want income", res.Transaction.Kind)
	}
	if res.Transaction.Note != "Abono: Luis — efectivo" {
		t.Errorf("mirror note = %q", res.Transaction.Note)
	}
}

func TestOverdueDebtRaisesAlert(t *testing.T) {
	f := newFixture(t)
	due := models.NewDate(2025, time.May, 1)
	if _, err := f.svc.Debts.Create(f.ctx, f.user, DebtInput{Counterparty: "Ana", Direction: models.DebtOwedByMe, TotalAmount: dec(50), DueDate: &due}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	alerts, err := f.svc.Notifications.Alerts(f.ctx, f.user)
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if len(alerts) != 1 || alerts[0].Source != models.AlertSourceDebt {
		t.Fatalf("alerts = %+v", alerts)
	}
}

func TestFormDataCreatesDefaultWallet(t *testing.T) {
	f := newFixture(t)
	data, err := f.svc.Transactions.FormData(f.ctx, f.user)
	if err != nil {
		t.Fatalf("FormData: %v", err)
	}
	if len(data.Wallets) != 1 || data.Wallets[0].Name != DefaultWalletName || data.Wallets[0].Kind != models.WalletCash {
		t.Fatalf("wallets = %+v", data.Wallets)
	}
	again, _ := f.svc.Transactions.FormData(f.ctx, f.user)
	if len(again.Wallets) != 1 {
		t.Fatalf("second call created another wallet: %d", len(again.Wallets))
	}
}

type failingTotals struct {
	WalletRepository
}

func (failingTotals) WalletTotals(context.Context, uuid.UUID) (map[uuid.UUID]models.Totals, error) {
	return nil, errors.New("connection reset")
}

func TestWalletListDegradesToInitialBalances(t *testing.T) {
	f := newFixture(t)
	w := f.wallet(t, "Banco", models.WalletBank, 700)
	food := f.category(t, "Comida", models.KindExpense, nil)
	f.txn(t, w, food, models.KindExpense, 100)

	degraded := NewWalletService(failingTotals{f.store}, f.store, f.svc.Categories, clock)
	list, err := degraded.List(f.ctx, f.user)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list.Wallets) != 1 || !list.Wallets[0].Balance.Equal(dec(700)) {
		t.Fatalf("wallets = %+v", list.Wallets)
	}
}

func TestProfileAutoCreated(t *testing.T) {
	f := newFixture(t)
	sess := session.Session{UserID: f.user, Email: "maria@example.com"}
	p, err := f.svc.Profiles.Get(f.ctx, sess)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Name != "maria" || p.DefaultCurrency != models.DefaultCurrency || p.OnboardingCompleted {
		t.Fatalf("profile = %+v", p)
	}
	done, err := f.svc.Profiles.CompleteOnboarding(f.ctx, sess)
	if err != nil || !done.OnboardingCompleted {
		t.Fatalf("CompleteOnboarding = %+v, %v", done, err)
	}
	if _, err := f.svc.Profiles.Update(f.ctx, sess, ProfileInput{Name: "María", DefaultCurrency: "usd"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	p, _ = f.svc.Profiles.Get(f.ctx, sess)
	if p.Name != "María" || p.DefaultCurrency != "USD" {
		t.Fatalf("profile after update = %+v", p)
	}
}

func TestDashboardExcludesTransfersFromCategories(t *testing.T) {
	f := newFixture(t)
	a := f.wallet(t, "Banco", models.WalletBank, 1000)
	b := f.wallet(t, "Ahorro", models.WalletSavings, 0)
	food := f.category(t, "Comida", models.KindExpense, nil)
	f.txn(t, a, food, models.KindExpense, 80)
	if _, err := f.svc.Transactions.CreateTransfer(f.ctx, f.user, TransferInput{FromWalletID: a.ID, ToWalletID: b.ID, Amount: dec(300), Date: models.NewDate(2025, time.May, 11)}); err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}

	d, err := f.svc.Reports.Dashboard(f.ctx, f.user)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.Month != "2025-05" {
		t.Errorf("month = %s", d.Month)
	}
	if len(d.ExpenseByCategory) != 1 || d.ExpenseByCategory[0].Name != "Comida" {
		t.Errorf("expense by category = %+v", d.ExpenseByCategory)
	}
	if len(d.RecentTransactions) != 3 {
		t.Errorf("recent = %d, want 3", len(d.RecentTransactions))
	}
	if !d.NetWorth.Equal(dec(920)) {
		t.Errorf("net worth = %s, want 920", d.NetWorth)
	}
}

func TestClampMonths(t *testing.T) {
	tests := map[int]int{0: 3, -2: 3, 1: 1, 12: 12, 99: 24}
	for in, want := range tests {
		if got := ClampMonths(in); got != want {
			t.Errorf("ClampMonths(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestProfileStatsCountsUserRecords(t *testing.T) {
	f := newFixture(t)
	a := f.wallet(t, "Banco", models.WalletBank, 1000)
	b := f.wallet(t, "Viejo", models.WalletCash, 0)
	food := f.category(t, "Comida", models.KindExpense, nil)
	f.txn(t, a, food, models.KindExpense, 40)
	if _, err := f.svc.Wallets.Adjust(f.ctx, f.user, a.ID, dec(1000)); err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if _, err := f.svc.Budgets.Create(f.ctx, f.user, BudgetInput{CategoryID: food.ID, Limit: dec(200)}); err != nil {
		t.Fatalf("budget: %v", err)
	}
	if _, err := f.svc.Debts.Create(f.ctx, f.user, DebtInput{Counterparty: "Ana", Direction: models.DebtOwedToMe, TotalAmount: dec(10)}); err != nil {
		t.Fatalf("debt: %v", err)
	}
	if err := f.svc.Wallets.Deactivate(f.ctx, f.user, b.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	other := uuid.New()
	if _, err := f.svc.Wallets.Create(f.ctx, other, WalletInput{Name: "Ajena", Kind: models.WalletCash}); err != nil {
		t.Fatalf("other wallet: %v", err)
	}

	stats, err := f.svc.Profiles.Stats(f.ctx, f.user)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := models.ProfileStats{Transactions: 2, Wallets: 1, Categories: 1, Budgets: 1, Debts: 1}
	if *stats != want {
		t.Fatalf("stats = %+v, want %+v", *stats, want)
	}
}
