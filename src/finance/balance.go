// Package finance holds the pure money rules of Caudal: balances, card
// cycles, budget thresholds, alerts, debt payments and report shaping.
// Nothing here touches storage; callers feed it rows or grouped sums.
package finance

import (
	"caudal-server/src/models"

	"github.com/shopspring/decimal"
)

// SumByKind adds up income and expense amounts separately.
func SumByKind(txns []models.Transaction) models.Totals {
	totals := models.Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range txns {
		totals = totals.Add(t.Kind, t.Amount)
	}
	return totals
}

// Balance derives the current balance of a wallet from its initial balance
// and every transaction referencing it.
func Balance(initial decimal.Decimal, txns []models.Transaction) decimal.Decimal {
	return BalanceFromTotals(initial, SumByKind(txns))
}

// BalanceFromTotals is Balance for callers that already hold grouped sums.
func BalanceFromTotals(initial decimal.Decimal, totals models.Totals) decimal.Decimal {
	return initial.Add(totals.Income).Sub(totals.Expense)
}

// NetWorth sums the balances of active wallets.
func NetWorth(wallets []models.WalletWithBalance) decimal.Decimal {
	total := decimal.Zero
	for _, w := range wallets {
		if w.Active {
			total = total.Add(w.Balance)
		}
	}
	return total
}

// percentOf returns part/whole*100 as a float, 0 when whole is zero.
func percentOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
