package api

import (
	"net/http"
	"time"

	"caudal-server/src/config"
	"caudal-server/src/db"
	"caudal-server/src/handlers"
	"caudal-server/src/middleware"
	"caudal-server/src/services"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Deps is everything the router hands to handlers.
type Deps struct {
	Services *services.Services
	Cache    *db.Cache
	Exporter handlers.Exporter
	Now      func() time.Time
}

func NewRouter(cfg *config.Config, deps Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.DemoModeMiddleware(cfg.DemoMode))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	svc := deps.Services
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, cfg.JWTAudience))

		// Wallets
		r.Get("/wallets", handlers.ListWallets(svc.Wallets))
		r.Post("/wallets", handlers.CreateWallet(svc.Wallets))
		r.Get("/wallets/{wallet_id}", handlers.GetWallet(svc.Wallets))
		r.Put("/wallets/{wallet_id}", handlers.UpdateWallet(svc.Wallets))
		r.Delete("/wallets/{wallet_id}", handlers.DeactivateWallet(svc.Wallets))
		r.Post("/wallets/{wallet_id}/adjust", handlers.AdjustWallet(svc.Wallets))

		// Categories
		r.Get("/categories", handlers.ListCategories(svc.Categories))
		r.Post("/categories", handlers.CreateCategory(svc.Categories))
		r.Get("/categories/{category_id}", handlers.GetCategory(svc.Categories))
		r.Put("/categories/{category_id}", handlers.UpdateCategory(svc.Categories))
		r.Delete("/categories/{category_id}", handlers.DeleteCategory(svc.Categories))

		// Transactions
		r.Get("/transactions", handlers.ListTransactions(svc.Transactions))
		r.Post("/transactions", handlers.CreateTransaction(svc.Transactions))
		r.Post("/transactions/transfers", handlers.CreateTransfer(svc.Transactions))
		r.Get("/transactions/form-data", handlers.GetFormData(svc.Transactions))
		r.Get("/transactions/{transaction_id}", handlers.GetTransaction(svc.Transactions))
		r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(svc.Transactions))
		r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(svc.Transactions))

		// Budgets
		r.Get("/budgets", handlers.ListBudgets(svc.Budgets))
		r.Post("/budgets", handlers.CreateBudget(svc.Budgets))
		r.Get("/budgets/{budget_id}", handlers.GetBudgetByID(svc.Budgets))
		r.Put("/budgets/{budget_id}", handlers.UpdateBudget(svc.Budgets))
		r.Delete("/budgets/{budget_id}", handlers.DeleteBudget(svc.Budgets))

		// Debts
		r.Get("/debts", handlers.ListDebts(svc.Debts))
		r.Post("/debts", handlers.CreateDebt(svc.Debts))
		r.Get("/debts/{debt_id}", handlers.GetDebt(svc.Debts))
		r.Put("/debts/{debt_id}", handlers.UpdateDebt(svc.Debts))
		r.Delete("/debts/{debt_id}", handlers.DeleteDebt(svc.Debts))
		r.Post("/debts/{debt_id}/complete", handlers.ToggleDebtCompleted(svc.Debts))
		r.Get("/debts/{debt_id}/payments", handlers.ListDebtPayments(svc.Debts))
		r.Post("/debts/{debt_id}/payments", handlers.RecordDebtPayment(svc.Debts))

		// Reports
		r.Get("/reports", handlers.GetReport(svc.Reports))
		r.Get("/reports/calendar", handlers.GetCalendar(svc.Reports))
		r.Get("/dashboard", handlers.GetDashboard(svc.Reports))
		r.Get("/notifications", handlers.GetNotifications(svc.Notifications))

		// Profile
		r.Get("/profile", handlers.GetProfile(svc.Profiles))
		r.Put("/profile", handlers.UpdateProfile(svc.Profiles))
		r.Get("/profile/stats", handlers.GetProfileStats(svc.Profiles))
		r.Post("/profile/onboarding", handlers.CompleteOnboarding(svc.Profiles))

		// Export
		r.Get("/export/{format}", handlers.ExportMonth(deps.Exporter, deps.Now))

		// Admin
		r.With(middleware.SuperAdminMiddleware).Post("/admin/cache/clear/{cache_name}", handlers.ClearCache(deps.Cache))
	})

	return r
}
