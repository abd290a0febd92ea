package db

import (
	"context"

	"caudal-server/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const budgetSelect = `
	SELECT b.id, b.user_id, b.category_id, b.month, b.year, b.limit_amount, b.created_at, b.updated_at,
		COALESCE(c.name, ''), COALESCE(c.icon, ''), COALESCE(c.color, '')
	FROM budgets b
	LEFT JOIN categories c ON c.id = b.category_id
`

func scanBudget(row pgx.Row, b *models.Budget) error {
	return row.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Month, &b.Year, &b.Limit, &b.CreatedAt, &b.UpdatedAt,
		&b.CategoryName, &b.CategoryIcon, &b.CategoryColor)
}

func CreateBudget(ctx context.Context, q Querier, budget *models.Budget) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (id, user_id, category_id, month, year, limit_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := q.Exec(ctx, query, budget.ID, budget.UserID, budget.CategoryID, budget.Month, budget.Year, budget.Limit); err != nil {
		return nil, mapError("create budget", err)
	}
	return GetBudgetByID(ctx, q, budget.UserID, budget.ID)
}

func GetBudgetByID(ctx context.Context, q Querier, userID, budgetID uuid.UUID) (*models.Budget, error) {
	query := budgetSelect + ` WHERE b.id = $1 AND b.user_id = $2`
	var b models.Budget
	if err := scanBudget(q.QueryRow(ctx, query, budgetID, userID), &b); err != nil {
		return nil, mapError("get budget", err)
	}
	return &b, nil
}

func GetBudgetsForMonth(ctx context.Context, q Querier, userID uuid.UUID, month, year int) ([]models.Budget, error) {
	query := budgetSelect + `
		WHERE b.user_id = $1 AND b.month = $2 AND b.year = $3
		ORDER BY c.name ASC, b.created_at ASC
	`
	rows, err := q.Query(ctx, query, userID, month, year)
	if err != nil {
		return nil, mapError("list budgets", err)
	}
	defer rows.Close()

	budgets := make([]models.Budget, 0)
	for rows.Next() {
		var b models.Budget
		if err := scanBudget(rows, &b); err != nil {
			return nil, mapError("scan budget", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, mapError("list budgets", rows.Err())
}

func UpdateBudget(ctx context.Context, q Querier, budget *models.Budget) (*models.Budget, error) {
	query := `
		UPDATE budgets
		SET limit_amount = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`
	cmd, err := q.Exec(ctx, query, budget.Limit, budget.ID, budget.UserID)
	if err != nil {
		return nil, mapError("update budget", err)
	}
	if err := notFoundIfNone("update budget", cmd); err != nil {
		return nil, err
	}
	return GetBudgetByID(ctx, q, budget.UserID, budget.ID)
}

func DeleteBudget(ctx context.Context, q Querier, userID, budgetID uuid.UUID) error {
	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`
	cmd, err := q.Exec(ctx, query, budgetID, userID)
	if err != nil {
		return mapError("delete budget", err)
	}
	return notFoundIfNone("delete budget", cmd)
}
