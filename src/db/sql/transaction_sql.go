package db

import (
	"context"
	"fmt"
	"strings"

	"caudal-server/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionSelect = `
	SELECT t.id, t.user_id, t.wallet_id, t.destination_wallet_id, t.transfer_id, t.category_id,
		t.amount, t.kind, t.date, t.note, t.created_at, t.updated_at,
		COALESCE(c.name, ''), COALESCE(c.icon, ''), COALESCE(c.color, ''), COALESCE(w.name, '')
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN wallets w ON w.id = t.wallet_id
`

func scanTransaction(row pgx.Row, t *models.Transaction) error {
	return row.Scan(&t.ID, &t.UserID, &t.WalletID, &t.DestinationWalletID, &t.TransferID, &t.CategoryID,
		&t.Amount, &t.Kind, &t.Date.Time, &t.Note, &t.CreatedAt, &t.UpdatedAt,
		&t.CategoryName, &t.CategoryIcon, &t.CategoryColor, &t.WalletName)
}

func insertTransaction(ctx context.Context, q Querier, txn *models.Transaction) (uuid.UUID, error) {
	query := `
		INSERT INTO transactions (id, user_id, wallet_id, destination_wallet_id, transfer_id, category_id,
			amount, kind, date, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var id uuid.UUID
	err := q.QueryRow(ctx, query, txn.ID, txn.UserID, txn.WalletID, txn.DestinationWalletID, txn.TransferID,
		txn.CategoryID, txn.Amount, txn.Kind, txn.Date.Time, txn.Note).Scan(&id)
	return id, err
}

func CreateTransaction(ctx context.Context, q Querier, txn *models.Transaction) (*models.Transaction, error) {
	id, err := insertTransaction(ctx, q, txn)
	if err != nil {
		return nil, mapError("create transaction", err)
	}
	return GetTransactionByID(ctx, q, txn.UserID, id)
}

// CreateTransfer writes both legs of a transfer inside one database
// transaction.
func CreateTransfer(ctx context.Context, q Querier, out, in *models.Transaction) (*models.Transfer, error) {
	var transfer models.Transfer
	err := pgx.BeginFunc(ctx, q, func(tx pgx.Tx) error {
		if _, err := insertTransaction(ctx, tx, out); err != nil {
			return err
		}
		if _, err := insertTransaction(ctx, tx, in); err != nil {
			return err
		}
		o, err := GetTransactionByID(ctx, tx, out.UserID, out.ID)
		if err != nil {
			return err
		}
		i, err := GetTransactionByID(ctx, tx, in.UserID, in.ID)
		if err != nil {
			return err
		}
		transfer = models.Transfer{Out: *o, In: *i}
		return nil
	})
	if err != nil {
		return nil, mapError("create transfer", err)
	}
	return &transfer, nil
}

func GetTransactionByID(ctx context.Context, q Querier, userID, transactionID uuid.UUID) (*models.Transaction, error) {
	query := transactionSelect + ` WHERE t.id = $1 AND t.user_id = $2`
	var t models.Transaction
	if err := scanTransaction(q.QueryRow(ctx, query, transactionID, userID), &t); err != nil {
		return nil, mapError("get transaction", err)
	}
	return &t, nil
}

// GetTransactionsForUser lists transactions newest first, narrowed by the
// filter.
func GetTransactionsForUser(ctx context.Context, q Querier, userID uuid.UUID, f models.TransactionFilter) ([]models.Transaction, error) {
	conds := []string{"t.user_id = $1"}
	args := []any{userID}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if !f.From.IsZero() {
		add("t.date >= $%d", f.From.Time)
	}
	if !f.To.IsZero() {
		add("t.date < $%d", f.To.Time)
	}
	if f.Kind != "" {
		add("t.kind = $%d", f.Kind)
	}
	if f.CategoryID != nil {
		add("(t.category_id = $%[1]d OR c.parent_id = $%[1]d)", *f.CategoryID)
	}
	if f.WalletID != nil {
		add("t.wallet_id = $%d", *f.WalletID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		add("(t.note ILIKE $%[1]d OR c.name ILIKE $%[1]d)", "%"+s+"%")
	}

	query := transactionSelect + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY t.date DESC, t.created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list transactions", err)
	}
	defer rows.Close()

	txns := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, mapError("scan transaction", err)
		}
		txns = append(txns, t)
	}
	return txns, mapError("list transactions", rows.Err())
}

func UpdateTransaction(ctx context.Context, q Querier, txn *models.Transaction) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET wallet_id = $1, category_id = $2, amount = $3, kind = $4, date = $5, note = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
	`
	cmd, err := q.Exec(ctx, query, txn.WalletID, txn.CategoryID, txn.Amount, txn.Kind, txn.Date.Time, txn.Note, txn.ID, txn.UserID)
	if err != nil {
		return nil, mapError("update transaction", err)
	}
	if err := notFoundIfNone("update transaction", cmd); err != nil {
		return nil, err
	}
	return GetTransactionByID(ctx, q, txn.UserID, txn.ID)
}

// DeleteTransaction removes a transaction; for a transfer leg both legs go.
func DeleteTransaction(ctx context.Context, q Querier, userID, transactionID uuid.UUID) error {
	query := `
		DELETE FROM transactions
		WHERE user_id = $2 AND (
			id = $1 OR transfer_id = (
				SELECT transfer_id FROM transactions WHERE id = $1 AND user_id = $2 AND transfer_id IS NOT NULL
			)
		)
	`
	cmd, err := q.Exec(ctx, query, transactionID, userID)
	if err != nil {
		return mapError("delete transaction", err)
	}
	return notFoundIfNone("delete transaction", cmd)
}
