package db

import (
	"context"

	"caudal-server/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const categoryColumns = `id, user_id, name, icon, color, kind, parent_id, is_system, created_at`

func scanCategory(row pgx.Row, c *models.Category) error {
	return row.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &c.Kind, &c.ParentID, &c.IsSystem, &c.CreatedAt)
}

func CreateCategory(ctx context.Context, q Querier, category *models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (id, user_id, name, icon, color, kind, parent_id, is_system)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + categoryColumns
	var c models.Category
	err := scanCategory(q.QueryRow(ctx, query, category.ID, category.UserID, category.Name, category.Icon,
		category.Color, category.Kind, category.ParentID, category.IsSystem), &c)
	if err != nil {
		return nil, mapError("create category", err)
	}
	return &c, nil
}

func GetCategoryByID(ctx context.Context, q Querier, userID, categoryID uuid.UUID) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND user_id = $2`
	var c models.Category
	if err := scanCategory(q.QueryRow(ctx, query, categoryID, userID), &c); err != nil {
		return nil, mapError("get category", err)
	}
	return &c, nil
}

func GetCategoriesForUser(ctx context.Context, q Querier, userID uuid.UUID) ([]models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1
		ORDER BY name ASC
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError("list categories", err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, mapError("scan category", err)
		}
		categories = append(categories, c)
	}
	return categories, mapError("list categories", rows.Err())
}

// GetSystemCategory finds the oldest system category with the given name
// and kind.
func GetSystemCategory(ctx context.Context, q Querier, userID uuid.UUID, name string, kind models.Kind) (*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1 AND name = $2 AND kind = $3 AND is_system
		ORDER BY created_at ASC
		LIMIT 1
	`
	var c models.Category
	if err := scanCategory(q.QueryRow(ctx, query, userID, name, kind), &c); err != nil {
		return nil, mapError("get system category", err)
	}
	return &c, nil
}

func UpdateCategory(ctx context.Context, q Querier, category *models.Category) (*models.Category, error) {
	query := `
		UPDATE categories
		SET name = $1, icon = $2, color = $3
		WHERE id = $4 AND user_id = $5
		RETURNING ` + categoryColumns
	var c models.Category
	err := scanCategory(q.QueryRow(ctx, query, category.Name, category.Icon, category.Color, category.ID, category.UserID), &c)
	if err != nil {
		return nil, mapError("update category", err)
	}
	return &c, nil
}

func DeleteCategory(ctx context.Context, q Querier, userID, categoryID uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`
	cmd, err := q.Exec(ctx, query, categoryID, userID)
	if err != nil {
		return mapError("delete category", err)
	}
	return notFoundIfNone("delete category", cmd)
}

func CountChildCategories(ctx context.Context, q Querier, userID, categoryID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM categories WHERE user_id = $1 AND parent_id = $2`
	var n int
	if err := q.QueryRow(ctx, query, userID, categoryID).Scan(&n); err != nil {
		return 0, mapError("count child categories", err)
	}
	return n, nil
}
