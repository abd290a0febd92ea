// Package services implements Caudal's operations on top of a row store:
// validation, synthetic transactions, derived balances and aggregates.
package services

import (
	"time"

	"caudal-server/src/db"
)

// Services bundles every service over one store.
type Services struct {
	Wallets       *WalletService
	Categories    *CategoryService
	Transactions  *TransactionService
	Budgets       *BudgetService
	Debts         *DebtService
	Profiles      *ProfileService
	Reports       *ReportService
	Notifications *NotificationService
}

// New wires the services. now supplies the current time in the zone dates
// are evaluated in; cache may be nil.
func New(store Store, cache *db.Cache, now func() time.Time) *Services {
	if now == nil {
		now = time.Now
	}
	categories := NewCategoryService(store, cache)
	wallets := NewWalletService(store, store, categories, now)
	budgets := NewBudgetService(store, store, store, now)
	notifications := NewNotificationService(budgets, store, store, now)
	return &Services{
		Wallets:       wallets,
		Categories:    categories,
		Transactions:  NewTransactionService(store, categories, wallets, now),
		Budgets:       budgets,
		Debts:         NewDebtService(store, store, categories, now),
		Profiles:      NewProfileService(store, cache),
		Reports:       NewReportService(store, store, wallets, notifications, now),
		Notifications: notifications,
	}
}
