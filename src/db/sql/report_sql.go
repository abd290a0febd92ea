package db

import (
	"context"
	"time"

	"caudal-server/src/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Every aggregate takes a [from, to) window on the transaction date; a nil
// upper bound leaves the window open.
const windowFilter = `t.user_id = $1 AND t.date >= $2 AND ($3::date IS NULL OR t.date < $3::date)`

func GetPeriodTotals(ctx context.Context, q Querier, userID uuid.UUID, from, to models.Date) (models.Totals, error) {
	query := `
		SELECT COALESCE(SUM(t.amount) FILTER (WHERE t.kind = 'income'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.kind = 'expense'), 0)
		FROM transactions t
		WHERE ` + windowFilter
	var totals models.Totals
	if err := q.QueryRow(ctx, query, userID, from.Time, upperBound(to)).Scan(&totals.Income, &totals.Expense); err != nil {
		return models.Totals{}, mapError("period totals", err)
	}
	return totals, nil
}

// GetSpendByCategory sums expenses per category id.
func GetSpendByCategory(ctx context.Context, q Querier, userID uuid.UUID, from, to models.Date) (map[uuid.UUID]decimal.Decimal, error) {
	query := `
		SELECT t.category_id, SUM(t.amount)
		FROM transactions t
		WHERE ` + windowFilter + ` AND t.kind = 'expense' AND t.category_id IS NOT NULL
		GROUP BY t.category_id
	`
	rows, err := q.Query(ctx, query, userID, from.Time, upperBound(to))
	if err != nil {
		return nil, mapError("spend by category", err)
	}
	defer rows.Close()

	spend := make(map[uuid.UUID]decimal.Decimal)
	for rows.Next() {
		var id uuid.UUID
		var total decimal.Decimal
		if err := rows.Scan(&id, &total); err != nil {
			return nil, mapError("scan spend by category", err)
		}
		spend[id] = total
	}
	return spend, mapError("spend by category", rows.Err())
}

func GetTotalsByMonth(ctx context.Context, q Querier, userID uuid.UUID, from, to models.Date) ([]models.MonthTotals, error) {
	query := `
		SELECT to_char(t.date, 'YYYY-MM') AS month,
			COALESCE(SUM(t.amount) FILTER (WHERE t.kind = 'income'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.kind = 'expense'), 0)
		FROM transactions t
		WHERE ` + windowFilter + `
		GROUP BY month
		ORDER BY month ASC
	`
	rows, err := q.Query(ctx, query, userID, from.Time, upperBound(to))
	if err != nil {
		return nil, mapError("totals by month", err)
	}
	defer rows.Close()

	out := make([]models.MonthTotals, 0)
	for rows.Next() {
		var m models.MonthTotals
		if err := rows.Scan(&m.Month, &m.Income, &m.Expense); err != nil {
			return nil, mapError("scan totals by month", err)
		}
		out = append(out, m)
	}
	return out, mapError("totals by month", rows.Err())
}

// GetTotalsByCategory sums one kind per category. Transfer legs can be left
// out so that moving money between wallets does not read as spending.
func GetTotalsByCategory(ctx context.Context, q Querier, userID uuid.UUID, kind models.Kind, from, to models.Date, excludeTransfers bool) ([]models.CategoryTotal, error) {
	query := `
		SELECT t.category_id, COALESCE(c.name, ''), COALESCE(c.icon, ''), COALESCE(c.color, ''),
			SUM(t.amount), COUNT(*)
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE ` + windowFilter + ` AND t.kind = $4
			AND (NOT $5 OR (t.transfer_id IS NULL AND t.destination_wallet_id IS NULL))
		GROUP BY t.category_id, c.name, c.icon, c.color
		ORDER BY SUM(t.amount) DESC
	`
	rows, err := q.Query(ctx, query, userID, from.Time, upperBound(to), kind, excludeTransfers)
	if err != nil {
		return nil, mapError("totals by category", err)
	}
	defer rows.Close()

	out := make([]models.CategoryTotal, 0)
	for rows.Next() {
		var c models.CategoryTotal
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Icon, &c.Color, &c.Total, &c.Count); err != nil {
			return nil, mapError("scan totals by category", err)
		}
		out = append(out, c)
	}
	return out, mapError("totals by category", rows.Err())
}

// GetTotalsByWeekday sums expenses per weekday, 0 being Sunday.
func GetTotalsByWeekday(ctx context.Context, q Querier, userID uuid.UUID, from, to models.Date) ([]models.WeekdayTotal, error) {
	query := `
		SELECT EXTRACT(DOW FROM t.date)::int AS weekday, SUM(t.amount)
		FROM transactions t
		WHERE ` + windowFilter + ` AND t.kind = 'expense'
		GROUP BY weekday
		ORDER BY weekday ASC
	`
	rows, err := q.Query(ctx, query, userID, from.Time, upperBound(to))
	if err != nil {
		return nil, mapError("totals by weekday", err)
	}
	defer rows.Close()

	out := make([]models.WeekdayTotal, 0, 7)
	for rows.Next() {
		var w models.WeekdayTotal
		if err := rows.Scan(&w.Weekday, &w.Total); err != nil {
			return nil, mapError("scan totals by weekday", err)
		}
		out = append(out, w)
	}
	return out, mapError("totals by weekday", rows.Err())
}

func GetTotalsByDay(ctx context.Context, q Querier, userID uuid.UUID, from, to models.Date) ([]models.DayTotals, error) {
	query := `
		SELECT t.date,
			COALESCE(SUM(t.amount) FILTER (WHERE t.kind = 'income'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.kind = 'expense'), 0)
		FROM transactions t
		WHERE ` + windowFilter + `
		GROUP BY t.date
		ORDER BY t.date ASC
	`
	rows, err := q.Query(ctx, query, userID, from.Time, upperBound(to))
	if err != nil {
		return nil, mapError("totals by day", err)
	}
	defer rows.Close()

	out := make([]models.DayTotals, 0)
	for rows.Next() {
		var d models.DayTotals
		var day time.Time
		if err := rows.Scan(&day, &d.Income, &d.Expense); err != nil {
			return nil, mapError("scan totals by day", err)
		}
		d.Date = models.DateOf(day)
		out = append(out, d)
	}
	return out, mapError("totals by day", rows.Err())
}
