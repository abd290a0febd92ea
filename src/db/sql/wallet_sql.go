package db

import (
	"context"

	"caudal-server/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const walletColumns = `id, user_id, name, kind, initial_balance, currency, color, credit_limit,
	statement_day, payment_day, active, created_at, updated_at`

func scanWallet(row pgx.Row, w *models.Wallet) error {
	return row.Scan(&w.ID, &w.UserID, &w.Name, &w.Kind, &w.InitialBalance, &w.Currency, &w.Color, &w.CreditLimit,
		&w.StatementDay, &w.PaymentDay, &w.Active, &w.CreatedAt, &w.UpdatedAt)
}

func CreateWallet(ctx context.Context, q Querier, wallet *models.Wallet) (*models.Wallet, error) {
	query := `
		INSERT INTO wallets (id, user_id, name, kind, initial_balance, currency, color, credit_limit,
			statement_day, payment_day, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
		RETURNING ` + walletColumns
	var w models.Wallet
	err := scanWallet(q.QueryRow(ctx, query, wallet.ID, wallet.UserID, wallet.Name, wallet.Kind, wallet.InitialBalance,
		wallet.Currency, wallet.Color, wallet.CreditLimit, wallet.StatementDay, wallet.PaymentDay), &w)
	if err != nil {
		return nil, mapError("create wallet", err)
	}
	return &w, nil
}

func GetWalletByID(ctx context.Context, q Querier, userID, walletID uuid.UUID) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 AND user_id = $2`
	var w models.Wallet
	if err := scanWallet(q.QueryRow(ctx, query, walletID, userID), &w); err != nil {
		return nil, mapError("get wallet", err)
	}
	return &w, nil
}

func GetWalletsForUser(ctx context.Context, q Querier, userID uuid.UUID, includeInactive bool) ([]models.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE user_id = $1 AND ($2 OR active)
		ORDER BY created_at ASC
	`
	rows, err := q.Query(ctx, query, userID, includeInactive)
	if err != nil {
		return nil, mapError("list wallets", err)
	}
	defer rows.Close()

	wallets := make([]models.Wallet, 0)
	for rows.Next() {
		var w models.Wallet
		if err := scanWallet(rows, &w); err != nil {
			return nil, mapError("scan wallet", err)
		}
		wallets = append(wallets, w)
	}
	return wallets, mapError("list wallets", rows.Err())
}

// UpdateWallet rewrites the editable fields. The initial balance is left
// untouched; drift is corrected through adjustments instead.
func UpdateWallet(ctx context.Context, q Querier, wallet *models.Wallet) (*models.Wallet, error) {
	query := `
		UPDATE wallets
		SET name = $1, kind = $2, currency = $3, color = $4, credit_limit = $5,
			statement_day = $6, payment_day = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + walletColumns
	var w models.Wallet
	err := scanWallet(q.QueryRow(ctx, query, wallet.Name, wallet.Kind, wallet.Currency, wallet.Color, wallet.CreditLimit,
		wallet.StatementDay, wallet.PaymentDay, wallet.ID, wallet.UserID), &w)
	if err != nil {
		return nil, mapError("update wallet", err)
	}
	return &w, nil
}

func DeactivateWallet(ctx context.Context, q Querier, userID, walletID uuid.UUID) error {
	query := `UPDATE wallets SET active = FALSE, updated_at = NOW() WHERE id = $1 AND user_id = $2`
	cmd, err := q.Exec(ctx, query, walletID, userID)
	if err != nil {
		return mapError("deactivate wallet", err)
	}
	return notFoundIfNone("deactivate wallet", cmd)
}

// GetWalletTotals sums income and expense per wallet in one grouped query.
func GetWalletTotals(ctx context.Context, q Querier, userID uuid.UUID) (map[uuid.UUID]models.Totals, error) {
	query := `
		SELECT wallet_id,
			COALESCE(SUM(amount) FILTER (WHERE kind = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1
		GROUP BY wallet_id
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError("wallet totals", err)
	}
	defer rows.Close()

	totals := make(map[uuid.UUID]models.Totals)
	for rows.Next() {
		var id uuid.UUID
		var t models.Totals
		if err := rows.Scan(&id, &t.Income, &t.Expense); err != nil {
			return nil, mapError("scan wallet totals", err)
		}
		totals[id] = t
	}
	return totals, mapError("wallet totals", rows.Err())
}
