package finance

import (
	"sort"

	"caudal-server/src/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The Group* reducers mirror the grouped SQL aggregates for stores that
// keep rows in memory.

func GroupByWallet(txns []models.Transaction) map[uuid.UUID]models.Totals {
	out := make(map[uuid.UUID]models.Totals)
	for _, t := range txns {
		out[t.WalletID] = out[t.WalletID].Add(t.Kind, t.Amount)
	}
	return out
}

func GroupByMonth(txns []models.Transaction) []models.MonthTotals {
	idx := make(map[string]int)
	var rows []models.MonthTotals
	for _, t := range txns {
		key := models.YearMonthOf(t.Date.Time).String()
		i, ok := idx[key]
		if !ok {
			i = len(rows)
			idx[key] = i
			rows = append(rows, models.MonthTotals{Month: key, Totals: models.Totals{Income: decimal.Zero, Expense: decimal.Zero}})
		}
		rows[i].Totals = rows[i].Totals.Add(t.Kind, t.Amount)
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].Month < rows[b].Month })
	return rows
}

// GroupByCategory totals transactions of the given kind per category.
func GroupByCategory(txns []models.Transaction, categories map[uuid.UUID]models.Category, kind models.Kind) []models.CategoryTotal {
	idx := make(map[uuid.UUID]int)
	var rows []models.CategoryTotal
	for _, t := range txns {
		if t.Kind != kind {
			continue
		}
		key := uuid.Nil
		if t.CategoryID != nil {
			key = *t.CategoryID
		}
		i, ok := idx[key]
		if !ok {
			i = len(rows)
			idx[key] = i
			row := models.CategoryTotal{Total: decimal.Zero}
			if c, found := categories[key]; found {
				id := c.ID
				row.CategoryID = &id
				row.Name, row.Icon, row.Color = c.Name, c.Icon, c.Color
			}
			rows = append(rows, row)
		}
		rows[i].Total = rows[i].Total.Add(t.Amount)
		rows[i].Count++
	}
	return rows
}

// GroupByWeekday totals expenses per weekday, 0 being Sunday.
func GroupByWeekday(txns []models.Transaction) []models.WeekdayTotal {
	var totals [7]decimal.Decimal
	seen := [7]bool{}
	for _, t := range txns {
		if t.Kind != models.KindExpense {
			continue
		}
		wd := int(t.Date.Weekday())
		totals[wd] = totals[wd].Add(t.Amount)
		seen[wd] = true
	}
	var rows []models.WeekdayTotal
	for wd := range totals {
		if seen[wd] {
			rows = append(rows, models.WeekdayTotal{Weekday: wd, Total: totals[wd]})
		}
	}
	return rows
}

func GroupByDay(txns []models.Transaction) []models.DayTotals {
	idx := make(map[string]int)
	var rows []models.DayTotals
	for _, t := range txns {
		key := t.Date.String()
		i, ok := idx[key]
		if !ok {
			i = len(rows)
			idx[key] = i
			rows = append(rows, models.DayTotals{Date: models.DateOf(t.Date.Time), Totals: models.Totals{Income: decimal.Zero, Expense: decimal.Zero}})
		}
		rows[i].Totals = rows[i].Totals.Add(t.Kind, t.Amount)
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].Date.Before(rows[b].Date.Time) })
	return rows
}
