package db

import (
	"context"
	"fmt"
	"time"

	"caudal-server/src/finance"
	"caudal-server/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const debtColumns = `id, user_id, counterparty, description, direction, total_amount, paid_amount,
	due_date, completed, created_at, updated_at`

func scanDebt(row pgx.Row, d *models.Debt) error {
	var due *time.Time
	err := row.Scan(&d.ID, &d.UserID, &d.Counterparty, &d.Description, &d.Direction, &d.TotalAmount, &d.PaidAmount,
		&due, &d.Completed, &d.CreatedAt, &d.UpdatedAt)
	d.DueDate = dateFromNullable(due)
	return err
}

func collectDebts(rows pgx.Rows, op string) ([]models.Debt, error) {
	defer rows.Close()
	debts := make([]models.Debt, 0)
	for rows.Next() {
		var d models.Debt
		if err := scanDebt(rows, &d); err != nil {
			return nil, mapError(op, err)
		}
		debts = append(debts, d)
	}
	return debts, mapError(op, rows.Err())
}

func CreateDebt(ctx context.Context, q Querier, debt *models.Debt) (*models.Debt, error) {
	query := `
		INSERT INTO debts (id, user_id, counterparty, description, direction, total_amount, paid_amount, due_date, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + debtColumns
	var d models.Debt
	err := scanDebt(q.QueryRow(ctx, query, debt.ID, debt.UserID, debt.Counterparty, debt.Description, debt.Direction,
		debt.TotalAmount, debt.PaidAmount, nullableDate(debt.DueDate), debt.Completed), &d)
	if err != nil {
		return nil, mapError("create debt", err)
	}
	return &d, nil
}

func GetDebtByID(ctx context.Context, q Querier, userID, debtID uuid.UUID) (*models.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1 AND user_id = $2`
	var d models.Debt
	if err := scanDebt(q.QueryRow(ctx, query, debtID, userID), &d); err != nil {
		return nil, mapError("get debt", err)
	}
	return &d, nil
}

// GetDebtsForUser lists incomplete debts first, newest first within each
// group. An empty direction matches both.
func GetDebtsForUser(ctx context.Context, q Querier, userID uuid.UUID, direction models.DebtDirection) ([]models.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE user_id = $1 AND ($2 = '' OR direction = $2)
		ORDER BY completed ASC, created_at DESC
	`
	rows, err := q.Query(ctx, query, userID, string(direction))
	if err != nil {
		return nil, mapError("list debts", err)
	}
	return collectDebts(rows, "list debts")
}

func GetOverdueDebts(ctx context.Context, q Querier, userID uuid.UUID, today models.Date) ([]models.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE user_id = $1 AND NOT completed AND due_date IS NOT NULL AND due_date < $2
		ORDER BY due_date ASC
	`
	rows, err := q.Query(ctx, query, userID, today.Time)
	if err != nil {
		return nil, mapError("list overdue debts", err)
	}
	return collectDebts(rows, "list overdue debts")
}

func UpdateDebt(ctx context.Context, q Querier, debt *models.Debt) (*models.Debt, error) {
	query := `
		UPDATE debts
		SET counterparty = $1, description = $2, direction = $3, total_amount = $4, paid_amount = $5,
			due_date = $6, completed = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + debtColumns
	var d models.Debt
	err := scanDebt(q.QueryRow(ctx, query, debt.Counterparty, debt.Description, debt.Direction, debt.TotalAmount,
		debt.PaidAmount, nullableDate(debt.DueDate), debt.Completed, debt.ID, debt.UserID), &d)
	if err != nil {
		return nil, mapError("update debt", err)
	}
	return &d, nil
}

func SetDebtCompleted(ctx context.Context, q Querier, userID, debtID uuid.UUID, completed bool) (*models.Debt, error) {
	query := `
		UPDATE debts SET completed = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING ` + debtColumns
	var d models.Debt
	if err := scanDebt(q.QueryRow(ctx, query, completed, debtID, userID), &d); err != nil {
		return nil, mapError("set debt completed", err)
	}
	return &d, nil
}

func DeleteDebt(ctx context.Context, q Querier, userID, debtID uuid.UUID) error {
	query := `DELETE FROM debts WHERE id = $1 AND user_id = $2`
	cmd, err := q.Exec(ctx, query, debtID, userID)
	if err != nil {
		return mapError("delete debt", err)
	}
	return notFoundIfNone("delete debt", cmd)
}

func GetDebtPayments(ctx context.Context, q Querier, userID, debtID uuid.UUID) ([]models.DebtPayment, error) {
	query := `
		SELECT id, user_id, debt_id, wallet_id, amount, date, note, created_at
		FROM debt_payments
		WHERE user_id = $1 AND debt_id = $2
		ORDER BY date DESC, created_at DESC
	`
	rows, err := q.Query(ctx, query, userID, debtID)
	if err != nil {
		return nil, mapError("list debt payments", err)
	}
	defer rows.Close()

	payments := make([]models.DebtPayment, 0)
	for rows.Next() {
		var p models.DebtPayment
		if err := rows.Scan(&p.ID, &p.UserID, &p.DebtID, &p.WalletID, &p.Amount, &p.Date.Time, &p.Note, &p.CreatedAt); err != nil {
			return nil, mapError("scan debt payment", err)
		}
		payments = append(payments, p)
	}
	return payments, mapError("list debt payments", rows.Err())
}

// RecordDebtPayment inserts the abono, bumps the debt and writes the
// mirroring transaction in one database transaction. The debt update is
// guarded so concurrent payments can never push paid past total.
func RecordDebtPayment(ctx context.Context, q Querier, payment *models.DebtPayment, mirror *models.Transaction) (*models.DebtPaymentResult, error) {
	var result models.DebtPaymentResult
	err := pgx.BeginFunc(ctx, q, func(tx pgx.Tx) error {
		bump := `
			UPDATE debts
			SET paid_amount = paid_amount + $1,
				completed = paid_amount + $1 >= total_amount,
				updated_at = NOW()
			WHERE id = $2 AND user_id = $3 AND paid_amount + $1 <= total_amount
			RETURNING ` + debtColumns
		if err := scanDebt(tx.QueryRow(ctx, bump, payment.Amount, payment.DebtID, payment.UserID), &result.Debt); err != nil {
			if err == pgx.ErrNoRows {
				return fmt.Errorf("debt %s: %w", payment.DebtID, finance.ErrPaymentExceedsPending)
			}
			return err
		}

		insert := `
			INSERT INTO debt_payments (id, user_id, debt_id, wallet_id, amount, date, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, user_id, debt_id, wallet_id, amount, date, note, created_at
		`
		p := &result.Payment
		err := tx.QueryRow(ctx, insert, payment.ID, payment.UserID, payment.DebtID, payment.WalletID, payment.Amount,
			payment.Date.Time, payment.Note).
			Scan(&p.ID, &p.UserID, &p.DebtID, &p.WalletID, &p.Amount, &p.Date.Time, &p.Note, &p.CreatedAt)
		if err != nil {
			return err
		}

		if _, err := insertTransaction(ctx, tx, mirror); err != nil {
			return err
		}
		t, err := GetTransactionByID(ctx, tx, mirror.UserID, mirror.ID)
		if err != nil {
			return err
		}
		result.Transaction = *t
		return nil
	})
	if err != nil {
		return nil, mapError("record debt payment", err)
	}
	return &result, nil
}
