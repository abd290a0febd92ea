package db

import (
	"context"
	"fmt"

	"caudal-server/src/models"

	"github.com/google/uuid"
)

func GetProfileByID(ctx context.Context, q Querier, userID uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT id, name, default_currency, onboarding_completed, created_at
		FROM profiles WHERE id = $1
	`
	var p models.Profile
	err := q.QueryRow(ctx, query, userID).
		Scan(&p.ID, &p.Name, &p.DefaultCurrency, &p.OnboardingCompleted, &p.CreatedAt)
	if err != nil {
		return nil, mapError("get profile", err)
	}
	return &p, nil
}

// CreateProfile inserts the profile unless one exists already, then returns
// whichever row is stored.
func CreateProfile(ctx context.Context, q Querier, profile *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (id, name, default_currency, onboarding_completed)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := q.Exec(ctx, query, profile.ID, profile.Name, profile.DefaultCurrency, profile.OnboardingCompleted); err != nil {
		return nil, mapError("create profile", err)
	}
	return GetProfileByID(ctx, q, profile.ID)
}

func UpdateProfile(ctx context.Context, q Querier, profile *models.Profile) (*models.Profile, error) {
	query := `
		UPDATE profiles
		SET name = $1, default_currency = $2, onboarding_completed = $3
		WHERE id = $4
		RETURNING id, name, default_currency, onboarding_completed, created_at
	`
	var p models.Profile
	err := q.QueryRow(ctx, query, profile.Name, profile.DefaultCurrency, profile.OnboardingCompleted, profile.ID).
		Scan(&p.ID, &p.Name, &p.DefaultCurrency, &p.OnboardingCompleted, &p.CreatedAt)
	if err != nil {
		return nil, mapError("update profile", err)
	}
	return &p, nil
}

var countQueries = map[models.RecordSet]string{
	models.RecordTransactions:  `SELECT COUNT(*) FROM transactions WHERE user_id = $1`,
	models.RecordActiveWallets: `SELECT COUNT(*) FROM wallets WHERE user_id = $1 AND active`,
	models.RecordCategories:    `SELECT COUNT(*) FROM categories WHERE user_id = $1 AND NOT is_system`,
	models.RecordBudgets:       `SELECT COUNT(*) FROM budgets WHERE user_id = $1`,
	models.RecordDebts:         `SELECT COUNT(*) FROM debts WHERE user_id = $1`,
}

// CountRecords counts one set of the user's rows.
func CountRecords(ctx context.Context, q Querier, userID uuid.UUID, set models.RecordSet) (int, error) {
	query, ok := countQueries[set]
	if !ok {
		return 0, fmt.Errorf("count records: unknown set %q", set)
	}
	var n int
	if err := q.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, mapError("count "+string(set), err)
	}
	return n, nil
}
