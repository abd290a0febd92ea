package finance

import (
	"time"

	"caudal-server/src/models"

	"github.com/shopspring/decimal"
)

// Calendar lays out a month as a Monday-first heat map of daily movement.
// Intensity is bucketed 0-4 against the day with the highest expense.
func Calendar(ym models.YearMonth, days []models.DayTotals, now time.Time) models.CalendarMonth {
	first := ym.Start()
	offset := int(first.Weekday()) - 1
	if first.Weekday() == time.Sunday {
		offset = 6
	}
	length := DaysInMonth(first.Time)

	byDay := make(map[int]models.Totals, len(days))
	maxExpense := decimal.NewFromInt(1)
	for _, d := range days {
		if d.Date.Year() != ym.Year || d.Date.Month() != ym.Month {
			continue
		}
		t := byDay[d.Date.Day()]
		t.Income = t.Income.Add(d.Income)
		t.Expense = t.Expense.Add(d.Expense)
		byDay[d.Date.Day()] = t
		if t.Expense.GreaterThan(maxExpense) {
			maxExpense = t.Expense
		}
	}

	today := models.DateOf(now)
	out := models.CalendarMonth{Month: ym.String(), Offset: offset, Days: make([]models.CalendarDay, 0, length)}
	for day := 1; day <= length; day++ {
		date := models.NewDate(ym.Year, ym.Month, day)
		t := byDay[day]
		out.Days = append(out.Days, models.CalendarDay{
			Day:       day,
			Income:    t.Income,
			Expense:   t.Expense,
			Intensity: intensity(t.Expense, maxExpense),
			Today:     date.Equal(today.Time),
			Future:    date.After(today.Time),
		})
	}
	return out
}

func intensity(expense, peak decimal.Decimal) int {
	if !expense.IsPositive() {
		return 0
	}
	ratio := expense.Div(peak).InexactFloat64()
	switch {
	case ratio > 0.75:
		return 4
	case ratio > 0.5:
		return 3
	case ratio > 0.25:
		return 2
	}
	return 1
}
