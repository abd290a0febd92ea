package finance

import (
	"fmt"
	"math"
	"time"

	"caudal-server/src/models"
)

// BudgetAlerts emits one alert per budget at or above the warning threshold.
// Budgets with a non-positive limit are skipped.
func BudgetAlerts(usages []models.BudgetUsage) []models.Alert {
	var alerts []models.Alert
	for _, u := range usages {
		if !u.Limit.IsPositive() {
			continue
		}
		name := u.CategoryName
		if name == "" {
			name = "Categoría"
		}
		icon := u.CategoryIcon
		if icon == "" {
			icon = "📦"
		}
		switch BudgetLevel(u.Percentage) {
		case models.AlertDanger:
			alerts = append(alerts, models.Alert{
				ID:      u.ID.String(),
				Level:   models.AlertDanger,
				Source:  models.AlertSourceBudget,
				Title:   icon + " Presupuesto sobrepasado",
				Message: fmt.Sprintf("%s: gastaste L %s de L %s", name, u.Spent.StringFixed(2), u.Limit.StringFixed(2)),
				Link:    "/presupuesto",
			})
		case models.AlertWarning:
			alerts = append(alerts, models.Alert{
				ID:      u.ID.String(),
				Level:   models.AlertWarning,
				Source:  models.AlertSourceBudget,
				Title:   fmt.Sprintf("%s Presupuesto al %d%%", icon, int(math.Round(u.Percentage))),
				Message: fmt.Sprintf("%s: te quedan L %s", name, u.Limit.Sub(u.Spent).StringFixed(2)),
				Link:    "/presupuesto",
			})
		}
	}
	return alerts
}

// IsOverdue reports whether an incomplete debt's due date lies before today.
func IsOverdue(d models.Debt, today time.Time) bool {
	if d.Completed || d.DueDate == nil || d.DueDate.IsZero() {
		return false
	}
	return d.DueDate.Before(models.DateOf(today).Time)
}

// DebtAlerts emits a danger alert for every overdue debt.
func DebtAlerts(debts []models.Debt, today time.Time) []models.Alert {
	var alerts []models.Alert
	for _, d := range debts {
		if !IsOverdue(d, today) {
			continue
		}
		alerts = append(alerts, models.Alert{
			ID:      "deuda-" + d.ID.String(),
			Level:   models.AlertDanger,
			Source:  models.AlertSourceDebt,
			Title:   "🤝 Deuda vencida",
			Message: fmt.Sprintf("%s: venció el %s", d.Counterparty, d.DueDate.Format("02/01/2006")),
			Link:    "/deudas",
		})
	}
	return alerts
}

// CardAlerts flags active credit wallets whose payment day is near.
func CardAlerts(wallets []models.Wallet, today time.Time) []models.Alert {
	var alerts []models.Alert
	for _, w := range wallets {
		if w.Kind != models.WalletCredit || !w.Active || w.PaymentDay == nil {
			continue
		}
		days := DaysUntilPayment(*w.PaymentDay, today)
		if days > PaymentUpcomingDays {
			continue
		}
		level := models.AlertWarning
		if days <= PaymentUrgentDays {
			level = models.AlertDanger
		}
		msg := fmt.Sprintf("Faltan %d días para tu fecha de pago (día %d)", days, *w.PaymentDay)
		if days == 0 {
			msg = "¡Hoy es tu fecha de pago!"
		}
		alerts = append(alerts, models.Alert{
			ID:      "tarjeta-" + w.ID.String(),
			Level:   level,
			Source:  models.AlertSourceCard,
			Title:   "💳 Pago próximo: " + w.Name,
			Message: msg,
			Link:    "/carteras",
		})
	}
	return alerts
}

// EvaluateAlerts concatenates budget, debt and card alerts in that order.
func EvaluateAlerts(usages []models.BudgetUsage, debts []models.Debt, wallets []models.Wallet, today time.Time) []models.Alert {
	alerts := make([]models.Alert, 0)
	alerts = append(alerts, BudgetAlerts(usages)...)
	alerts = append(alerts, DebtAlerts(debts, today)...)
	alerts = append(alerts, CardAlerts(wallets, today)...)
	return alerts
}
