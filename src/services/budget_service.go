package services

import (
	"context"
	"errors"
	"time"

	"caudal-server/src/finance"
	"caudal-server/src/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetInput struct {
	CategoryID uuid.UUID       `json:"category_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Limit      decimal.Decimal `json:"limit"`
}

type BudgetService struct {
	budgets    BudgetRepository
	categories CategoryRepository
	reports    ReportRepository
	now        func() time.Time
}

func NewBudgetService(budgets BudgetRepository, categories CategoryRepository, reports ReportRepository, now func() time.Time) *BudgetService {
	return &BudgetService{budgets: budgets, categories: categories, reports: reports, now: now}
}

// List returns the budgets of a month with what has been spent in that
// month. Zero month or year default to the current month.
func (s *BudgetService) List(ctx context.Context, userID uuid.UUID, month, year int) (*models.BudgetList, error) {
	current := models.YearMonthOf(s.now())
	if month == 0 {
		month = int(current.Month)
	}
	if year == 0 {
		year = current.Year
	}
	if month < 1 || month > 12 {
		return nil, invalid("month", "must be between 1 and 12")
	}
	ym := models.YearMonth{Year: year, Month: time.Month(month)}

	budgets, err := s.budgets.ListBudgets(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}
	spend, err := s.reports.SpendByCategory(ctx, userID, ym.Start(), ym.End())
	if err != nil {
		return nil, err
	}

	list := &models.BudgetList{Month: month, Year: year, Budgets: make([]models.BudgetUsage, 0, len(budgets))}
	for _, b := range budgets {
		u := finance.Usage(b, spend[b.CategoryID])
		list.Budgets = append(list.Budgets, u)
		list.TotalLimit = list.TotalLimit.Add(b.Limit)
		list.TotalSpent = list.TotalSpent.Add(u.Spent)
	}
	return list, nil
}

// CurrentUsages computes usage of this month's budgets counting every
// expense dated from the first of the month onward.
func (s *BudgetService) CurrentUsages(ctx context.Context, userID uuid.UUID) ([]models.BudgetUsage, error) {
	today := s.now()
	budgets, err := s.budgets.ListBudgets(ctx, userID, int(today.Month()), today.Year())
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return nil, nil
	}
	spend, err := s.reports.SpendByCategory(ctx, userID, finance.MonthStart(today), models.Date{})
	if err != nil {
		return nil, err
	}
	usages := make([]models.BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		usages = append(usages, finance.Usage(b, spend[b.CategoryID]))
	}
	return usages, nil
}

func (s *BudgetService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	return s.budgets.GetBudget(ctx, userID, id)
}

func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, in BudgetInput) (*models.Budget, error) {
	current := models.YearMonthOf(s.now())
	if in.Month == 0 {
		in.Month = int(current.Month)
	}
	if in.Year == 0 {
		in.Year = current.Year
	}
	if in.Month < 1 || in.Month > 12 {
		return nil, invalid("month", "must be between 1 and 12")
	}
	if in.Year < 2000 || in.Year > 2100 {
		return nil, invalid("year", "is out of range")
	}
	if !in.Limit.IsPositive() {
		return nil, invalid("limit", "must be greater than zero")
	}
	category, err := s.categories.GetCategory(ctx, userID, in.CategoryID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, invalid("category_id", "category does not exist")
	}
	if err != nil {
		return nil, err
	}
	if category.Kind != models.KindExpense {
		return nil, invalid("category_id", "budgets apply to expense categories only")
	}

	return s.budgets.CreateBudget(ctx, &models.Budget{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: in.CategoryID,
		Month:      in.Month,
		Year:       in.Year,
		Limit:      in.Limit,
	})
}

func (s *BudgetService) UpdateLimit(ctx context.Context, userID, id uuid.UUID, limit decimal.Decimal) (*models.Budget, error) {
	if !limit.IsPositive() {
		return nil, invalid("limit", "must be greater than zero")
	}
	existing, err := s.budgets.GetBudget(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	existing.Limit = limit
	return s.budgets.UpdateBudget(ctx, existing)
}

func (s *BudgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.budgets.DeleteBudget(ctx, userID, id)
}
