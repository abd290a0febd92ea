package db

import (
	"context"

	"caudal-server/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Store binds the statement functions to a connection pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) ListWallets(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]models.Wallet, error) {
	return GetWalletsForUser(ctx, s.pool, userID, includeInactive)
}

func (s *Store) GetWallet(ctx context.Context, userID, id uuid.UUID) (*models.Wallet, error) {
	return GetWalletByID(ctx, s.pool, userID, id)
}

func (s *Store) CreateWallet(ctx context.Context, w *models.Wallet) (*models.Wallet, error) {
	return CreateWallet(ctx, s.pool, w)
}

func (s *Store) UpdateWallet(ctx context.Context, w *models.Wallet) (*models.Wallet, error) {
	return UpdateWallet(ctx, s.pool, w)
}

func (s *Store) DeactivateWallet(ctx context.Context, userID, id uuid.UUID) error {
	return DeactivateWallet(ctx, s.pool, userID, id)
}

func (s *Store) WalletTotals(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]models.Totals, error) {
	return GetWalletTotals(ctx, s.pool, userID)
}

func (s *Store) ListCategories(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	return GetCategoriesForUser(ctx, s.pool, userID)
}

func (s *Store) GetCategory(ctx context.Context, userID, id uuid.UUID) (*models.Category, error) {
	return GetCategoryByID(ctx, s.pool, userID, id)
}

func (s *Store) FindSystemCategory(ctx context.Context, userID uuid.UUID, name string, kind models.Kind) (*models.Category, error) {
	return GetSystemCategory(ctx, s.pool, userID, name, kind)
}

func (s *Store) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	return CreateCategory(ctx, s.pool, c)
}

func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	return UpdateCategory(ctx, s.pool, c)
}

func (s *Store) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	return DeleteCategory(ctx, s.pool, userID, id)
}

func (s *Store) CountChildCategories(ctx context.Context, userID, id uuid.UUID) (int, error) {
	return CountChildCategories(ctx, s.pool, userID, id)
}

func (s *Store) ListTransactions(ctx context.Context, userID uuid.UUID, f models.TransactionFilter) ([]models.Transaction, error) {
	return GetTransactionsForUser(ctx, s.pool, userID, f)
}

func (s *Store) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	return GetTransactionByID(ctx, s.pool, userID, id)
}

func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	return CreateTransaction(ctx, s.pool, t)
}

func (s *Store) CreateTransfer(ctx context.Context, out, in *models.Transaction) (*models.Transfer, error) {
	return CreateTransfer(ctx, s.pool, out, in)
}

func (s *Store) UpdateTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	return UpdateTransaction(ctx, s.pool, t)
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	return DeleteTransaction(ctx, s.pool, userID, id)
}

func (s *Store) ListBudgets(ctx context.Context, userID uuid.UUID, month, year int) ([]models.Budget, error) {
	return GetBudgetsForMonth(ctx, s.pool, userID, month, year)
}

func (s *Store) GetBudget(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	return GetBudgetByID(ctx, s.pool, userID, id)
}

func (s *Store) CreateBudget(ctx context.Context, b *models.Budget) (*models.Budget, error) {
	return CreateBudget(ctx, s.pool, b)
}

func (s *Store) UpdateBudget(ctx context.Context, b *models.Budget) (*models.Budget, error) {
	return UpdateBudget(ctx, s.pool, b)
}

func (s *Store) DeleteBudget(ctx context.Context, userID, id uuid.UUID) error {
	return DeleteBudget(ctx, s.pool, userID, id)
}

func (s *Store) ListDebts(ctx context.Context, userID uuid.UUID, direction models.DebtDirection) ([]models.Debt, error) {
	return GetDebtsForUser(ctx, s.pool, userID, direction)
}

func (s *Store) ListOverdueDebts(ctx context.Context, userID uuid.UUID, today models.Date) ([]models.Debt, error) {
	return GetOverdueDebts(ctx, s.pool, userID, today)
}

func (s *Store) GetDebt(ctx context.Context, userID, id uuid.UUID) (*models.Debt, error) {
	return GetDebtByID(ctx, s.pool, userID, id)
}

func (s *Store) CreateDebt(ctx context.Context, d *models.Debt) (*models.Debt, error) {
	return CreateDebt(ctx, s.pool, d)
}

func (s *Store) UpdateDebt(ctx context.Context, d *models.Debt) (*models.Debt, error) {
	return UpdateDebt(ctx, s.pool, d)
}

func (s *Store) SetDebtCompleted(ctx context.Context, userID, id uuid.UUID, completed bool) (*models.Debt, error) {
	return SetDebtCompleted(ctx, s.pool, userID, id, completed)
}

func (s *Store) DeleteDebt(ctx context.Context, userID, id uuid.UUID) error {
	return DeleteDebt(ctx, s.pool, userID, id)
}

func (s *Store) ListDebtPayments(ctx context.Context, userID, debtID uuid.UUID) ([]models.DebtPayment, error) {
	return GetDebtPayments(ctx, s.pool, userID, debtID)
}

func (s *Store) RecordDebtPayment(ctx context.Context, p *models.DebtPayment, mirror *models.Transaction) (*models.DebtPaymentResult, error) {
	return RecordDebtPayment(ctx, s.pool, p, mirror)
}

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return GetProfileByID(ctx, s.pool, id)
}

func (s *Store) CreateProfile(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	return CreateProfile(ctx, s.pool, p)
}

func (s *Store) UpdateProfile(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	return UpdateProfile(ctx, s.pool, p)
}

func (s *Store) CountRecords(ctx context.Context, userID uuid.UUID, set models.RecordSet) (int, error) {
	return CountRecords(ctx, s.pool, userID, set)
}

func (s *Store) PeriodTotals(ctx context.Context, userID uuid.UUID, from, to models.Date) (models.Totals, error) {
	return GetPeriodTotals(ctx, s.pool, userID, from, to)
}

func (s *Store) SpendByCategory(ctx context.Context, userID uuid.UUID, from, to models.Date) (map[uuid.UUID]decimal.Decimal, error) {
	return GetSpendByCategory(ctx, s.pool, userID, from, to)
}

func (s *Store) TotalsByMonth(ctx context.Context, userID uuid.UUID, from, to models.Date) ([]models.MonthTotals, error) {
	return GetTotalsByMonth(ctx, s.pool, userID, from, to)
}

func (s *Store) TotalsByCategory(ctx context.Context, userID uuid.UUID, kind models.Kind, from, to models.Date, excludeTransfers bool) ([]models.CategoryTotal, error) {
	return GetTotalsByCategory(ctx, s.pool, userID, kind, from, to, excludeTransfers)
}

func (s *Store) TotalsByWeekday(ctx context.Context, userID uuid.UUID, from, to models.Date) ([]models.WeekdayTotal, error) {
	return GetTotalsByWeekday(ctx, s.pool, userID, from, to)
}

func (s *Store) TotalsByDay(ctx context.Context, userID uuid.UUID, from, to models.Date) ([]models.DayTotals, error) {
	return GetTotalsByDay(ctx, s.pool, userID, from, to)
}
