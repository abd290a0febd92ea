package finance

import (
	"sort"
	"time"

	"caudal-server/src/models"

	"github.com/shopspring/decimal"
)

const (
	DefaultReportMonths = 3
	MaxReportMonths     = 24
	TopCategoryLimit    = 6
)

// ReportWindowStart returns the first day of the month n months before
// today's month.
func ReportWindowStart(today time.Time, n int) models.Date {
	return models.NewDate(today.Year(), today.Month()-time.Month(n), 1)
}

// MonthStart returns the first day of today's month.
func MonthStart(today time.Time) models.Date {
	return models.NewDate(today.Year(), today.Month(), 1)
}

// MonthlyTrend turns grouped month totals into trend points ordered by month.
func MonthlyTrend(rows []models.MonthTotals) []models.MonthTrend {
	sorted := append([]models.MonthTotals(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Month < sorted[j].Month })
	trend := make([]models.MonthTrend, 0, len(sorted))
	for _, r := range sorted {
		trend = append(trend, models.MonthTrend{
			Month:   r.Month,
			Income:  r.Income,
			Expense: r.Expense,
			Savings: r.Net(),
		})
	}
	return trend
}

// TopCategories ranks category totals by amount, highest first, and keeps
// at most limit rows. Unnamed rows are labelled as uncategorised.
func TopCategories(rows []models.CategoryTotal, limit int) []models.CategoryTotal {
	ranked := make([]models.CategoryTotal, 0, len(rows))
	for _, r := range rows {
		if r.Name == "" {
			r.Name = models.UncategorizedName
		}
		if r.Icon == "" {
			r.Icon = "📦"
		}
		ranked = append(ranked, r)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Total.GreaterThan(ranked[j].Total) })
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// WeekdaySpend expands sparse weekday rows to a full Sunday..Saturday week.
func WeekdaySpend(rows []models.WeekdayTotal) []models.WeekdayTotal {
	week := make([]models.WeekdayTotal, 7)
	for i := range week {
		week[i] = models.WeekdayTotal{Weekday: i, Total: decimal.Zero}
	}
	for _, r := range rows {
		if r.Weekday < 0 || r.Weekday > 6 {
			continue
		}
		week[r.Weekday].Total = week[r.Weekday].Total.Add(r.Total)
	}
	return week
}

// BusiestWeekday returns the weekday with the largest spend, or nil when
// nothing was spent. Ties go to the earlier weekday.
func BusiestWeekday(week []models.WeekdayTotal) *models.WeekdayTotal {
	var best *models.WeekdayTotal
	for i := range week {
		if !week[i].Total.IsPositive() {
			continue
		}
		if best == nil || week[i].Total.GreaterThan(best.Total) {
			d := week[i]
			best = &d
		}
	}
	return best
}

// Summarize computes headline figures for a window. monthsWithData is the
// number of months that had any movement and drives the monthly average.
func Summarize(totals models.Totals, monthsWithData int) models.ReportSummary {
	savings := totals.Net()
	summary := models.ReportSummary{
		Income:              totals.Income,
		Expense:             totals.Expense,
		Savings:             savings,
		AverageMonthlySpend: decimal.Zero,
	}
	if totals.Income.IsPositive() {
		summary.SavingsRate = savings.Div(totals.Income).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
	}
	if monthsWithData > 0 {
		summary.AverageMonthlySpend = totals.Expense.Div(decimal.NewFromInt(int64(monthsWithData))).Round(2)
	}
	return summary
}

// BuildReport assembles the report document from the independent aggregates.
func BuildReport(from models.Date, months int, byMonth []models.MonthTotals, byCategory []models.CategoryTotal, byWeekday []models.WeekdayTotal, totals models.Totals) models.Report {
	trend := MonthlyTrend(byMonth)
	week := WeekdaySpend(byWeekday)
	return models.Report{
		From:           from,
		Months:         months,
		Summary:        Summarize(totals, len(trend)),
		Trend:          trend,
		TopCategories:  TopCategories(byCategory, TopCategoryLimit),
		Weekdays:       week,
		BusiestWeekday: BusiestWeekday(week),
	}
}
