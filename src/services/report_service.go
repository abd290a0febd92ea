package services

import (
	"context"
	"time"

	"caudal-server/src/finance"
	"caudal-server/src/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const dashboardRecentLimit = 10

type ReportService struct {
	reports       ReportRepository
	txns          TransactionRepository
	wallets       *WalletService
	notifications *NotificationService
	now           func() time.Time
}

func NewReportService(reports ReportRepository, txns TransactionRepository, wallets *WalletService, notifications *NotificationService, now func() time.Time) *ReportService {
	return &ReportService{reports: reports, txns: txns, wallets: wallets, notifications: notifications, now: now}
}

// ClampMonths bounds the report window; zero selects the default.
func ClampMonths(months int) int {
	switch {
	case months <= 0:
		return finance.DefaultReportMonths
	case months > finance.MaxReportMonths:
		return finance.MaxReportMonths
	default:
		return months
	}
}

// Report aggregates everything from the start of the month `months` back
// until today.
func (s *ReportService) Report(ctx context.Context, userID uuid.UUID, months int) (*models.Report, error) {
	months = ClampMonths(months)
	from := finance.ReportWindowStart(s.now(), months)

	var (
		byMonth    []models.MonthTotals
		byCategory []models.CategoryTotal
		byWeekday  []models.WeekdayTotal
		totals     models.Totals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byMonth, err = s.reports.TotalsByMonth(gctx, userID, from, models.Date{})
		return err
	})
	g.Go(func() error {
		var err error
		byCategory, err = s.reports.TotalsByCategory(gctx, userID, models.KindExpense, from, models.Date{}, false)
		return err
	})
	g.Go(func() error {
		var err error
		byWeekday, err = s.reports.TotalsByWeekday(gctx, userID, from, models.Date{})
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.reports.PeriodTotals(gctx, userID, from, models.Date{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := finance.BuildReport(from, months, byMonth, byCategory, byWeekday, totals)
	return &report, nil
}

// Calendar returns the daily heat map of one month; a zero month means
// the current one.
func (s *ReportService) Calendar(ctx context.Context, userID uuid.UUID, ym models.YearMonth) (*models.CalendarMonth, error) {
	now := s.now()
	if ym.Year == 0 {
		ym = models.YearMonthOf(now)
	}
	days, err := s.reports.TotalsByDay(ctx, userID, ym.Start(), ym.End())
	if err != nil {
		return nil, err
	}
	cal := finance.Calendar(ym, days, now)
	return &cal, nil
}

// Dashboard summarises the current month next to the net worth and the
// number of pending alerts.
func (s *ReportService) Dashboard(ctx context.Context, userID uuid.UUID) (*models.Dashboard, error) {
	ym := models.YearMonthOf(s.now())
	from, to := ym.Start(), ym.End()

	var (
		totals     models.Totals
		byCategory []models.CategoryTotal
		recent     []models.Transaction
		wallets    *models.WalletList
		alerts     []models.Alert
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.reports.PeriodTotals(gctx, userID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		byCategory, err = s.reports.TotalsByCategory(gctx, userID, models.KindExpense, from, to, true)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.txns.ListTransactions(gctx, userID, models.TransactionFilter{Limit: dashboardRecentLimit})
		return err
	})
	g.Go(func() error {
		var err error
		wallets, err = s.wallets.List(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		alerts, err = s.notifications.Alerts(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.Dashboard{
		Month:              ym.String(),
		Totals:             totals,
		Net:                totals.Net(),
		ExpenseByCategory:  finance.TopCategories(byCategory, 0),
		RecentTransactions: recent,
		NetWorth:           wallets.NetWorth,
		AlertCount:         len(alerts),
	}, nil
}
