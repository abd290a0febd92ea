package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"caudal-server/src/finance"
	"caudal-server/src/models"
	"caudal-server/src/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DebtInput struct {
	Counterparty string               `json:"counterparty"`
	Description  string               `json:"description"`
	Direction    models.DebtDirection `json:"direction"`
	TotalAmount  decimal.Decimal      `json:"total_amount"`
	PaidAmount   decimal.Decimal      `json:"paid_amount"`
	DueDate      *models.Date         `json:"due_date"`
}

type PaymentInput struct {
	WalletID uuid.UUID       `json:"wallet_id"`
	Amount   decimal.Decimal `json:"amount"`
	Date     models.Date     `json:"date"`
	Note     string          `json:"note"`
}

type DebtService struct {
	debts      DebtRepository
	wallets    WalletRepository
	categories *CategoryService
	now        func() time.Time
}

func NewDebtService(debts DebtRepository, wallets WalletRepository, categories *CategoryService, now func() time.Time) *DebtService {
	return &DebtService{debts: debts, wallets: wallets, categories: categories, now: now}
}

func (s *DebtService) List(ctx context.Context, userID uuid.UUID, direction models.DebtDirection) (*models.DebtList, error) {
	if direction != "" && !direction.Valid() {
		return nil, invalid("direction", "must be owed_by_me or owed_to_me")
	}
	debts, err := s.debts.ListDebts(ctx, userID, direction)
	if err != nil {
		return nil, err
	}
	list := finance.WithProgress(debts)
	return &list, nil
}

func (s *DebtService) Get(ctx context.Context, userID, id uuid.UUID) (*models.DebtWithProgress, error) {
	d, err := s.debts.GetDebt(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &models.DebtWithProgress{Debt: *d, Pending: finance.Pending(*d), Progress: finance.Progress(*d)}, nil
}

func validateDebt(in *DebtInput) error {
	in.Counterparty = strings.TrimSpace(in.Counterparty)
	if !util.ValidateName(in.Counterparty, 80) {
		return invalid("counterparty", "is required and must be at most 80 characters")
	}
	in.Description = strings.TrimSpace(in.Description)
	if !in.Direction.Valid() {
		return invalid("direction", "must be owed_by_me or owed_to_me")
	}
	if !in.TotalAmount.IsPositive() {
		return invalid("total_amount", "must be greater than zero")
	}
	if in.PaidAmount.IsNegative() {
		return invalid("paid_amount", "must not be negative")
	}
	if in.PaidAmount.GreaterThan(in.TotalAmount) {
		return invalid("paid_amount", "must not exceed the total amount")
	}
	if in.DueDate != nil && in.DueDate.IsZero() {
		in.DueDate = nil
	}
	return nil
}

func (s *DebtService) Create(ctx context.Context, userID uuid.UUID, in DebtInput) (*models.Debt, error) {
	if err := validateDebt(&in); err != nil {
		return nil, err
	}
	return s.debts.CreateDebt(ctx, &models.Debt{
		ID:           uuid.New(),
		UserID:       userID,
		Counterparty: in.Counterparty,
		Description:  in.Description,
		Direction:    in.Direction,
		TotalAmount:  in.TotalAmount,
		PaidAmount:   in.PaidAmount,
		DueDate:      in.DueDate,
		Completed:    in.PaidAmount.GreaterThanOrEqual(in.TotalAmount),
	})
}

// Update rewrites the whole debt; completion follows the amounts.
func (s *DebtService) Update(ctx context.Context, userID, id uuid.UUID, in DebtInput) (*models.Debt, error) {
	if err := validateDebt(&in); err != nil {
		return nil, err
	}
	existing, err := s.debts.GetDebt(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	existing.Counterparty, existing.Description, existing.Direction = in.Counterparty, in.Description, in.Direction
	existing.TotalAmount, existing.PaidAmount, existing.DueDate = in.TotalAmount, in.PaidAmount, in.DueDate
	existing.Completed = in.PaidAmount.GreaterThanOrEqual(in.TotalAmount)
	return s.debts.UpdateDebt(ctx, existing)
}

// ToggleCompleted flips the completed flag by hand.
func (s *DebtService) ToggleCompleted(ctx context.Context, userID, id uuid.UUID) (*models.Debt, error) {
	existing, err := s.debts.GetDebt(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.debts.SetDebtCompleted(ctx, userID, id, !existing.Completed)
}

func (s *DebtService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.debts.DeleteDebt(ctx, userID, id)
}

func (s *DebtService) Payments(ctx context.Context, userID, debtID uuid.UUID) ([]models.DebtPayment, error) {
	if _, err := s.debts.GetDebt(ctx, userID, debtID); err != nil {
		return nil, err
	}
	return s.debts.ListDebtPayments(ctx, userID, debtID)
}

// RecordPayment registers an abono: the payment row, the new paid amount
// and a mirroring transaction on the chosen wallet.
func (s *DebtService) RecordPayment(ctx context.Context, userID, debtID uuid.UUID, in PaymentInput) (*models.DebtPaymentResult, error) {
	debt, err := s.debts.GetDebt(ctx, userID, debtID)
	if err != nil {
		return nil, err
	}
	if err := finance.ValidatePayment(*debt, in.Amount); err != nil {
		return nil, err
	}
	wallet, err := s.wallets.GetWallet(ctx, userID, in.WalletID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, invalid("wallet_id", "wallet does not exist")
	}
	if err != nil {
		return nil, err
	}
	if !wallet.Active {
		return nil, invalid("wallet_id", "wallet is inactive")
	}
	if in.Date.IsZero() {
		in.Date = models.DateOf(s.now())
	}
	in.Note = strings.TrimSpace(in.Note)

	kind := finance.PaymentKind(debt.Direction)
	category, err := s.categories.EnsureSystem(ctx, userID, models.SystemCategoryDebtPayment, kind)
	if err != nil {
		return nil, fmt.Errorf("debt payment category: %w", err)
	}
	categoryID := category.ID

	note := "Abono: " + debt.Counterparty
	if in.Note != "" {
		note += " — " + in.Note
	}

	result, err := s.debts.RecordDebtPayment(ctx,
		&models.DebtPayment{
			ID:       uuid.New(),
			UserID:   userID,
			DebtID:   debtID,
			WalletID: wallet.ID,
			Amount:   in.Amount,
			Date:     in.Date,
			Note:     in.Note,
		},
		&models.Transaction{
			ID:         uuid.New(),
			UserID:     userID,
			WalletID:   wallet.ID,
			CategoryID: &categoryID,
			Amount:     in.Amount,
			Kind:       kind,
			Date:       in.Date,
			Note:       note,
		},
	)
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: Recorded payment of %s on debt %s for user %s (completed=%v)", in.Amount, debtID, userID, result.Debt.Completed)
	return result, nil
}
