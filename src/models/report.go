package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthTotals is one row of a grouped-by-month aggregate.
type MonthTotals struct {
	Month string `json:"month"` // YYYY-MM
	Totals
}

type MonthTrend struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Savings decimal.Decimal `json:"savings"`
}

type CategoryTotal struct {
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	Name       string          `json:"name"`
	Icon       string          `json:"icon"`
	Color      string          `json:"color"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
}

type WeekdayTotal struct {
	Weekday int             `json:"weekday"` // 0 = Sunday
	Total   decimal.Decimal `json:"total"`
}

type DayTotals struct {
	Date Date `json:"date"`
	Totals
}

type ReportSummary struct {
	Income              decimal.Decimal `json:"income"`
	Expense             decimal.Decimal `json:"expense"`
	Savings             decimal.Decimal `json:"savings"`
	SavingsRate         float64         `json:"savings_rate"`
	AverageMonthlySpend decimal.Decimal `json:"average_monthly_spend"`
}

type Report struct {
	From           Date            `json:"from"`
	Months         int             `json:"months"`
	Summary        ReportSummary   `json:"summary"`
	Trend          []MonthTrend    `json:"trend"`
	TopCategories  []CategoryTotal `json:"top_categories"`
	Weekdays       []WeekdayTotal  `json:"weekdays"`
	BusiestWeekday *WeekdayTotal   `json:"busiest_weekday,omitempty"`
}

type CalendarDay struct {
	Day       int             `json:"day"`
	Income    decimal.Decimal `json:"income"`
	Expense   decimal.Decimal `json:"expense"`
	Intensity int             `json:"intensity"` // 0-4
	Today     bool            `json:"today"`
	Future    bool            `json:"future"`
}

type CalendarMonth struct {
	Month  string        `json:"month"`
	Offset int           `json:"offset"` // blank cells before day 1, Monday first
	Days   []CalendarDay `json:"days"`
}

type Dashboard struct {
	Month              string          `json:"month"`
	Totals             Totals          `json:"totals"`
	Net                decimal.Decimal `json:"net"`
	ExpenseByCategory  []CategoryTotal `json:"expense_by_category"`
	RecentTransactions []Transaction   `json:"recent_transactions"`
	NetWorth           decimal.Decimal `json:"net_worth"`
	AlertCount         int             `json:"alert_count"`
}
