package services

import (
	"context"

	"caudal-server/src/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Every repository method is scoped by the owning user; rows of other users
// behave as if they did not exist and yield models.ErrNotFound.

type WalletRepository interface {
	ListWallets(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]models.Wallet, error)
	GetWallet(ctx context.Context, userID, id uuid.UUID) (*models.Wallet, error)
	CreateWallet(ctx context.Context, w *models.Wallet) (*models.Wallet, error)
	UpdateWallet(ctx context.Context, w *models.Wallet) (*models.Wallet, error)
	DeactivateWallet(ctx context.Context, userID, id uuid.UUID) error
	// WalletTotals sums income and expense per wallet.
	WalletTotals(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]models.Totals, error)
}

type CategoryRepository interface {
	ListCategories(ctx context.Context, userID uuid.UUID) ([]models.Category, error)
	GetCategory(ctx context.Context, userID, id uuid.UUID) (*models.Category, error)
	FindSystemCategory(ctx context.Context, userID uuid.UUID, name string, kind models.Kind) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, id uuid.UUID) error
	CountChildCategories(ctx context.Context, userID, id uuid.UUID) (int, error)
}

type TransactionRepository interface {
	ListTransactions(ctx context.Context, userID uuid.UUID, f models.TransactionFilter) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error)
	// CreateTransfer stores both legs or neither.
	CreateTransfer(ctx context.Context, out, in *models.Transaction) (*models.Transfer, error)
	UpdateTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error)
	// DeleteTransaction removes the row and, for a transfer leg, its pair.
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
}

type BudgetRepository interface {
	ListBudgets(ctx context.Context, userID uuid.UUID, month, year int) ([]models.Budget, error)
	GetBudget(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error)
	CreateBudget(ctx context.Context, b *models.Budget) (*models.Budget, error)
	UpdateBudget(ctx context.Context, b *models.Budget) (*models.Budget, error)
	DeleteBudget(ctx context.Context, userID, id uuid.UUID) error
}

type DebtRepository interface {
	ListDebts(ctx context.Context, userID uuid.UUID, direction models.DebtDirection) ([]models.Debt, error)
	ListOverdueDebts(ctx context.Context, userID uuid.UUID, today models.Date) ([]models.Debt, error)
	GetDebt(ctx context.Context, userID, id uuid.UUID) (*models.Debt, error)
	CreateDebt(ctx context.Context, d *models.Debt) (*models.Debt, error)
	UpdateDebt(ctx context.Context, d *models.Debt) (*models.Debt, error)
	SetDebtCompleted(ctx context.Context, userID, id uuid.UUID, completed bool) (*models.Debt, error)
	DeleteDebt(ctx context.Context, userID, id uuid.UUID) error
	ListDebtPayments(ctx context.Context, userID, debtID uuid.UUID) ([]models.DebtPayment, error)
	// RecordDebtPayment stores the payment, bumps the debt and writes the
	// mirroring transaction atomically. It fails with
	// finance.ErrPaymentExceedsPending when the payment would exceed the
	// pending amount at write time.
	RecordDebtPayment(ctx context.Context, p *models.DebtPayment, mirror *models.Transaction) (*models.DebtPaymentResult, error)
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	// CreateProfile inserts the profile unless it already exists and
	// returns the stored row either way.
	CreateProfile(ctx context.Context, p *models.Profile) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) (*models.Profile, error)
	// CountRecords counts the user's rows in one set. System categories
	// and inactive wallets are not counted.
	CountRecords(ctx context.Context, userID uuid.UUID, set models.RecordSet) (int, error)
}

// ReportRepository exposes grouped sums. A zero "to" date means no upper
// bound; "to" is exclusive otherwise.
type ReportRepository interface {
	PeriodTotals(ctx context.Context, userID uuid.UUID, from, to models.Date) (models.Totals, error)
	SpendByCategory(ctx context.Context, userID uuid.UUID, from, to models.Date) (map[uuid.UUID]decimal.Decimal, error)
	TotalsByMonth(ctx context.Context, userID uuid.UUID, from, to models.Date) ([]models.MonthTotals, error)
	TotalsByCategory(ctx context.Context, userID uuid.UUID, kind models.Kind, from, to models.Date, excludeTransfers bool) ([]models.CategoryTotal, error)
	TotalsByWeekday(ctx context.Context, userID uuid.UUID, from, to models.Date) ([]models.WeekdayTotal, error)
	TotalsByDay(ctx context.Context, userID uuid.UUID, from, to models.Date) ([]models.DayTotals, error)
}

// Store is the full row-level store.
type Store interface {
	WalletRepository
	CategoryRepository
	TransactionRepository
	BudgetRepository
	DebtRepository
	ProfileRepository
	ReportRepository
}
