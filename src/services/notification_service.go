package services

import (
	"context"
	"time"

	"caudal-server/src/finance"
	"caudal-server/src/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type NotificationService struct {
	budgets *BudgetService
	debts   DebtRepository
	wallets WalletRepository
	now     func() time.Time
}

func NewNotificationService(budgets *BudgetService, debts DebtRepository, wallets WalletRepository, now func() time.Time) *NotificationService {
	return &NotificationService{budgets: budgets, debts: debts, wallets: wallets, now: now}
}

// Alerts evaluates budget, debt and card alerts for today. Nothing is
// stored; the list is recomputed on every call.
func (s *NotificationService) Alerts(ctx context.Context, userID uuid.UUID) ([]models.Alert, error) {
	today := s.now()

	var (
		usages  []models.BudgetUsage
		overdue []models.Debt
		wallets []models.Wallet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		usages, err = s.budgets.CurrentUsages(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		overdue, err = s.debts.ListOverdueDebts(gctx, userID, models.DateOf(today))
		return err
	})
	g.Go(func() error {
		var err error
		wallets, err = s.wallets.ListWallets(gctx, userID, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return finance.EvaluateAlerts(usages, overdue, wallets, today), nil
}
