// Package memory is an in-process row store with the same semantics as the
// PostgreSQL repositories. It backs DATA_BACKEND=memory and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"caudal-server/src/finance"
	"caudal-server/src/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu           sync.RWMutex
	now          func() time.Time
	last         time.Time
	wallets      map[uuid.UUID]models.Wallet
	categories   map[uuid.UUID]models.Category
	transactions map[uuid.UUID]models.Transaction
	budgets      map[uuid.UUID]models.Budget
	debts        map[uuid.UUID]models.Debt
	payments     map[uuid.UUID]models.DebtPayment
	profiles     map[uuid.UUID]models.Profile
}

func New() *Store {
	return &Store{
		now:          time.Now,
		wallets:      make(map[uuid.UUID]models.Wallet),
		categories:   make(map[uuid.UUID]models.Category),
		transactions: make(map[uuid.UUID]models.Transaction),
		budgets:      make(map[uuid.UUID]models.Budget),
		debts:        make(map[uuid.UUID]models.Debt),
		payments:     make(map[uuid.UUID]models.DebtPayment),
		profiles:     make(map[uuid.UUID]models.Profile),
	}
}

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, models.ErrNotFound)
}

func ensureID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

// Wallets

func (s *Store) ListWallets(_ context.Context, userID uuid.UUID, includeInactive bool) ([]models.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Wallet, 0)
	for _, w := range s.wallets {
		if w.UserID == userID && (includeInactive || w.Active) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetWallet(_ context.Context, userID, id uuid.UUID) (*models.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[id]
	if !ok || w.UserID != userID {
		return nil, notFound("get wallet")
	}
	return &w, nil
}

func (s *Store) CreateWallet(_ context.Context, w *models.Wallet) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *w
	row.ID = ensureID(row.ID)
	if _, exists := s.wallets[row.ID]; exists {
		return nil, fmt.Errorf("create wallet: %w", models.ErrConflict)
	}
	row.Active = true
	row.CreatedAt = s.tick()
	row.UpdatedAt = row.CreatedAt
	s.wallets[row.ID] = row
	return &row, nil
}

func (s *Store) UpdateWallet(_ context.Context, w *models.Wallet) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.wallets[w.ID]
	if !ok || row.UserID != w.UserID {
		return nil, notFound("update wallet")
	}
	row.Name, row.Kind, row.Currency, row.Color = w.Name, w.Kind, w.Currency, w.Color
	row.CreditLimit, row.StatementDay, row.PaymentDay = w.CreditLimit, w.StatementDay, w.PaymentDay
	row.UpdatedAt = s.now()
	s.wallets[row.ID] = row
	return &row, nil
}

func (s *Store) DeactivateWallet(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.wallets[id]
	if !ok || row.UserID != userID {
		return notFound("deactivate wallet")
	}
	row.Active = false
	row.UpdatedAt = s.now()
	s.wallets[id] = row
	return nil
}

func (s *Store) WalletTotals(_ context.Context, userID uuid.UUID) (map[uuid.UUID]models.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return finance.GroupByWallet(s.userTransactions(userID)), nil
}

// Categories

func (s *Store) ListCategories(_ context.Context, userID uuid.UUID) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, 0)
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetCategory(_ context.Context, userID, id uuid.UUID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return nil, notFound("get category")
	}
	return &c, nil
}

func (s *Store) FindSystemCategory(_ context.Context, userID uuid.UUID, name string, kind models.Kind) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *models.Category
	for _, c := range s.categories {
		if c.UserID == userID && c.IsSystem && c.Name == name && c.Kind == kind {
			if found == nil || c.CreatedAt.Before(found.CreatedAt) {
				cc := c
				found = &cc
			}
		}
	}
	if found == nil {
		return nil, notFound("get system category")
	}
	return found, nil
}

func (s *Store) CreateCategory(_ context.Context, c *models.Category) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *c
	row.ID = ensureID(row.ID)
	if row.ParentID != nil {
		if p, ok := s.categories[*row.ParentID]; !ok || p.UserID != row.UserID {
			return nil, fmt.Errorf("create category: %w", models.ErrInUse)
		}
	}
	row.CreatedAt = s.tick()
	s.categories[row.ID] = row
	return &row, nil
}

func (s *Store) UpdateCategory(_ context.Context, c *models.Category) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.categories[c.ID]
	if !ok || row.UserID != c.UserID {
		return nil, notFound("update category")
	}
	row.Name, row.Icon, row.Color = c.Name, c.Icon, c.Color
	s.categories[row.ID] = row
	return &row, nil
}

func (s *Store) DeleteCategory(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.categories[id]
	if !ok || row.UserID != userID {
		return notFound("delete category")
	}
	for _, c := range s.categories {
		if c.ParentID != nil && *c.ParentID == id {
			return fmt.Errorf("delete category: %w", models.ErrInUse)
		}
	}
	for _, t := range s.transactions {
		if t.CategoryID != nil && *t.CategoryID == id {
			return fmt.Errorf("delete category: %w", models.ErrInUse)
		}
	}
	for _, b := range s.budgets {
		if b.CategoryID == id {
			return fmt.Errorf("delete category: %w", models.ErrInUse)
		}
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) CountChildCategories(_ context.Context, userID, id uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.categories {
		if c.UserID == userID && c.ParentID != nil && *c.ParentID == id {
			n++
		}
	}
	return n, nil
}

// Transactions

func (s *Store) ListTransactions(_ context.Context, userID uuid.UUID, f models.TransactionFilter) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Transaction, 0)
	for _, t := range s.transactions {
		if t.UserID != userID {
			continue
		}
		if !f.From.IsZero() && t.Date.Before(f.From.Time) {
			continue
		}
		if !f.To.IsZero() && !t.Date.Before(f.To.Time) {
			continue
		}
		if f.Kind != "" && t.Kind != f.Kind {
			continue
		}
		if f.WalletID != nil && t.WalletID != *f.WalletID {
			continue
		}
		joined := s.join(t)
		if f.CategoryID != nil && !s.inCategory(t, *f.CategoryID) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(joined.Note), search) &&
			!strings.Contains(strings.ToLower(joined.CategoryName), search) {
			continue
		}
		out = append(out, joined)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, notFound("get transaction")
	}
	joined := s.join(t)
	return &joined, nil
}

func (s *Store) CreateTransaction(_ context.Context, t *models.Transaction) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, err := s.insertTransaction(*t)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	joined := s.join(row)
	return &joined, nil
}

func (s *Store) CreateTransfer(_ context.Context, out, in *models.Transaction) (*models.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkTransactionRefs(*out); err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}
	if err := s.checkTransactionRefs(*in); err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}
	o, err := s.insertTransaction(*out)
	if err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}
	i, err := s.insertTransaction(*in)
	if err != nil {
		delete(s.transactions, o.ID)
		return nil, fmt.Errorf("create transfer: %w", err)
	}
	return &models.Transfer{Out: s.join(o), In: s.join(i)}, nil
}

func (s *Store) UpdateTransaction(_ context.Context, t *models.Transaction) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.transactions[t.ID]
	if !ok || row.UserID != t.UserID {
		return nil, notFound("update transaction")
	}
	if err := s.checkTransactionRefs(*t); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	row.WalletID, row.CategoryID, row.Amount, row.Kind, row.Date, row.Note = t.WalletID, t.CategoryID, t.Amount, t.Kind, t.Date, t.Note
	row.UpdatedAt = s.now()
	s.transactions[row.ID] = row
	joined := s.join(row)
	return &joined, nil
}

func (s *Store) DeleteTransaction(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.transactions[id]
	if !ok || row.UserID != userID {
		return notFound("delete transaction")
	}
	delete(s.transactions, id)
	if row.TransferID != nil {
		for otherID, t := range s.transactions {
			if t.TransferID != nil && *t.TransferID == *row.TransferID && t.UserID == userID {
				delete(s.transactions, otherID)
			}
		}
	}
	return nil
}

// Budgets

func (s *Store) ListBudgets(_ context.Context, userID uuid.UUID, month, year int) ([]models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Budget, 0)
	for _, b := range s.budgets {
		if b.UserID == userID && b.Month == month && b.Year == year {
			out = append(out, s.joinBudget(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CategoryName != out[j].CategoryName {
			return out[i].CategoryName < out[j].CategoryName
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) GetBudget(_ context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return nil, notFound("get budget")
	}
	joined := s.joinBudget(b)
	return &joined, nil
}

func (s *Store) CreateBudget(_ context.Context, b *models.Budget) (*models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[b.CategoryID]; !ok {
		return nil, fmt.Errorf("create budget: %w", models.ErrInUse)
	}
	for _, existing := range s.budgets {
		if existing.UserID == b.UserID && existing.CategoryID == b.CategoryID && existing.Month == b.Month && existing.Year == b.Year {
			return nil, fmt.Errorf("create budget: %w", models.ErrConflict)
		}
	}
	row := *b
	row.ID = ensureID(row.ID)
	row.CreatedAt = s.tick()
	row.UpdatedAt = row.CreatedAt
	s.budgets[row.ID] = row
	joined := s.joinBudget(row)
	return &joined, nil
}

func (s *Store) UpdateBudget(_ context.Context, b *models.Budget) (*models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.budgets[b.ID]
	if !ok || row.UserID != b.UserID {
		return nil, notFound("update budget")
	}
	row.Limit = b.Limit
	row.UpdatedAt = s.now()
	s.budgets[row.ID] = row
	joined := s.joinBudget(row)
	return &joined, nil
}

func (s *Store) DeleteBudget(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.budgets[id]
	if !ok || row.UserID != userID {
		return notFound("delete budget")
	}
	delete(s.budgets, id)
	return nil
}

// Debts

func (s *Store) ListDebts(_ context.Context, userID uuid.UUID, direction models.DebtDirection) ([]models.Debt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Debt, 0)
	for _, d := range s.debts {
		if d.UserID == userID && (direction == "" || d.Direction == direction) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ListOverdueDebts(_ context.Context, userID uuid.UUID, today models.Date) ([]models.Debt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Debt, 0)
	for _, d := range s.debts {
		if d.UserID == userID && !d.Completed && d.DueDate != nil && d.DueDate.Before(today.Time) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate.Time) })
	return out, nil
}

func (s *Store) GetDebt(_ context.Context, userID, id uuid.UUID) (*models.Debt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.debts[id]
	if !ok || d.UserID != userID {
		return nil, notFound("get debt")
	}
	return &d, nil
}

func (s *Store) CreateDebt(_ context.Context, d *models.Debt) (*models.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *d
	row.ID = ensureID(row.ID)
	row.CreatedAt = s.tick()
	row.UpdatedAt = row.CreatedAt
	s.debts[row.ID] = row
	return &row, nil
}

func (s *Store) UpdateDebt(_ context.Context, d *models.Debt) (*models.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.debts[d.ID]
	if !ok || row.UserID != d.UserID {
		return nil, notFound("update debt")
	}
	created := row.CreatedAt
	row = *d
	row.CreatedAt = created
	row.UpdatedAt = s.now()
	s.debts[row.ID] = row
	return &row, nil
}

func (s *Store) SetDebtCompleted(_ context.Context, userID, id uuid.UUID, completed bool) (*models.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.debts[id]
	if !ok || row.UserID != userID {
		return nil, notFound("set debt completed")
	}
	row.Completed = completed
	row.UpdatedAt = s.now()
	s.debts[id] = row
	return &row, nil
}

func (s *Store) DeleteDebt(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.debts[id]
	if !ok || row.UserID != userID {
		return notFound("delete debt")
	}
	for _, p := range s.payments {
		if p.DebtID == id {
			return fmt.Errorf("delete debt: %w", models.ErrInUse)
		}
	}
	delete(s.debts, id)
	return nil
}

func (s *Store) ListDebtPayments(_ context.Context, userID, debtID uuid.UUID) ([]models.DebtPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.DebtPayment, 0)
	for _, p := range s.payments {
		if p.UserID == userID && p.DebtID == debtID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) RecordDebtPayment(_ context.Context, p *models.DebtPayment, mirror *models.Transaction) (*models.DebtPaymentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	debt, ok := s.debts[p.DebtID]
	if !ok || debt.UserID != p.UserID {
		return nil, notFound("record debt payment")
	}
	if w, ok := s.wallets[p.WalletID]; !ok || w.UserID != p.UserID {
		return nil, fmt.Errorf("record debt payment: %w", models.ErrInUse)
	}
	if err := s.checkTransactionRefs(*mirror); err != nil {
		return nil, fmt.Errorf("record debt payment: %w", err)
	}
	updated, err := finance.ApplyPayment(debt, p.Amount)
	if err != nil {
		return nil, fmt.Errorf("record debt payment: %w", err)
	}
	payment := *p
	payment.ID = ensureID(payment.ID)
	if _, exists := s.payments[payment.ID]; exists {
		return nil, fmt.Errorf("record debt payment: %w", models.ErrConflict)
	}

	// the mirror goes first so a failed insert leaves the debt untouched
	row, err := s.insertTransaction(*mirror)
	if err != nil {
		return nil, fmt.Errorf("record debt payment: %w", err)
	}
	updated.UpdatedAt = s.now()
	s.debts[debt.ID] = updated
	payment.CreatedAt = s.tick()
	s.payments[payment.ID] = payment
	return &models.DebtPaymentResult{Payment: payment, Debt: updated, Transaction: s.join(row)}, nil
}

// Profiles

func (s *Store) GetProfile(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, notFound("get profile")
	}
	return &p, nil
}

func (s *Store) CreateProfile(_ context.Context, p *models.Profile) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.profiles[p.ID]; ok {
		return &existing, nil
	}
	row := *p
	row.CreatedAt = s.now()
	s.profiles[row.ID] = row
	return &row, nil
}

func (s *Store) UpdateProfile(_ context.Context, p *models.Profile) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.profiles[p.ID]
	if !ok {
		return nil, notFound("update profile")
	}
	row.Name, row.DefaultCurrency, row.OnboardingCompleted = p.Name, p.DefaultCurrency, p.OnboardingCompleted
	s.profiles[row.ID] = row
	return &row, nil
}

func (s *Store) CountRecords(_ context.Context, userID uuid.UUID, set models.RecordSet) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	switch set {
	case models.RecordTransactions:
		for _, t := range s.transactions {
			if t.UserID == userID {
				n++
			}
		}
	case models.RecordActiveWallets:
		for _, w := range s.wallets {
			if w.UserID == userID && w.Active {
				n++
			}
		}
	case models.RecordCategories:
		for _, c := range s.categories {
			if c.UserID == userID && !c.IsSystem {
				n++
			}
		}
	case models.RecordBudgets:
		for _, b := range s.budgets {
			if b.UserID == userID {
				n++
			}
		}
	case models.RecordDebts:
		for _, d := range s.debts {
			if d.UserID == userID {
				n++
			}
		}
	default:
		return 0, fmt.Errorf("count records: unknown set %q", set)
	}
	return n, nil
}

// Reports

func (s *Store) PeriodTotals(_ context.Context, userID uuid.UUID, from, to models.Date) (models.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return finance.SumByKind(s.window(userID, from, to)), nil
}

func (s *Store) SpendByCategory(_ context.Context, userID uuid.UUID, from, to models.Date) (map[uuid.UUID]decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, t := range s.window(userID, from, to) {
		if t.Kind == models.KindExpense && t.CategoryID != nil {
			out[*t.CategoryID] = out[*t.CategoryID].Add(t.Amount)
		}
	}
	return out, nil
}

func (s *Store) TotalsByMonth(_ context.Context, userID uuid.UUID, from, to models.Date) ([]models.MonthTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return finance.GroupByMonth(s.window(userID, from, to)), nil
}

func (s *Store) TotalsByCategory(_ context.Context, userID uuid.UUID, kind models.Kind, from, to models.Date, excludeTransfers bool) ([]models.CategoryTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txns := s.window(userID, from, to)
	if excludeTransfers {
		kept := txns[:0]
		for _, t := range txns {
			if !t.IsTransferLeg() {
				kept = append(kept, t)
			}
		}
		txns = kept
	}
	rows := finance.GroupByCategory(txns, s.categories, kind)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total.GreaterThan(rows[j].Total) })
	return rows, nil
}

func (s *Store) TotalsByWeekday(_ context.Context, userID uuid.UUID, from, to models.Date) ([]models.WeekdayTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return finance.GroupByWeekday(s.window(userID, from, to)), nil
}

func (s *Store) TotalsByDay(_ context.Context, userID uuid.UUID, from, to models.Date) ([]models.DayTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return finance.GroupByDay(s.window(userID, from, to)), nil
}

// helpers, callers hold the lock

// tick returns a creation timestamp strictly after the previous one so
// ordering by creation time is stable within one clock tick.
func (s *Store) tick() time.Time {
	t := s.now()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func (s *Store) userTransactions(userID uuid.UUID) []models.Transaction {
	out := make([]models.Transaction, 0)
	for _, t := range s.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) window(userID uuid.UUID, from, to models.Date) []models.Transaction {
	out := make([]models.Transaction, 0)
	for _, t := range s.transactions {
		if t.UserID != userID || t.Date.Before(from.Time) {
			continue
		}
		if !to.IsZero() && !t.Date.Before(to.Time) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Store) checkTransactionRefs(t models.Transaction) error {
	if w, ok := s.wallets[t.WalletID]; !ok || w.UserID != t.UserID {
		return models.ErrInUse
	}
	if t.DestinationWalletID != nil {
		if w, ok := s.wallets[*t.DestinationWalletID]; !ok || w.UserID != t.UserID {
			return models.ErrInUse
		}
	}
	if t.CategoryID != nil {
		if c, ok := s.categories[*t.CategoryID]; !ok || c.UserID != t.UserID {
			return models.ErrInUse
		}
	}
	return nil
}

func (s *Store) insertTransaction(t models.Transaction) (models.Transaction, error) {
	if err := s.checkTransactionRefs(t); err != nil {
		return models.Transaction{}, err
	}
	t.ID = ensureID(t.ID)
	if _, exists := s.transactions[t.ID]; exists {
		return models.Transaction{}, models.ErrConflict
	}
	t.CreatedAt = s.tick()
	t.UpdatedAt = t.CreatedAt
	t.CategoryName, t.CategoryIcon, t.CategoryColor, t.WalletName = "", "", "", ""
	s.transactions[t.ID] = t
	return t, nil
}

func (s *Store) join(t models.Transaction) models.Transaction {
	if t.CategoryID != nil {
		if c, ok := s.categories[*t.CategoryID]; ok {
			t.CategoryName, t.CategoryIcon, t.CategoryColor = c.Name, c.Icon, c.Color
		}
	}
	if w, ok := s.wallets[t.WalletID]; ok {
		t.WalletName = w.Name
	}
	return t
}

func (s *Store) inCategory(t models.Transaction, id uuid.UUID) bool {
	if t.CategoryID == nil {
		return false
	}
	if *t.CategoryID == id {
		return true
	}
	c, ok := s.categories[*t.CategoryID]
	return ok && c.ParentID != nil && *c.ParentID == id
}

func (s *Store) joinBudget(b models.Budget) models.Budget {
	if c, ok := s.categories[b.CategoryID]; ok {
		b.CategoryName, b.CategoryIcon, b.CategoryColor = c.Name, c.Icon, c.Color
	}
	return b
}
