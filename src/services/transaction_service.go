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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxNoteLength = 280

type TransactionInput struct {
	WalletID   uuid.UUID       `json:"wallet_id"`
	CategoryID *uuid.UUID      `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Kind       models.Kind     `json:"kind"`
	Date       models.Date     `json:"date"`
	Note       string          `json:"note"`
}

type TransferInput struct {
	FromWalletID uuid.UUID       `json:"from_wallet_id"`
	ToWalletID   uuid.UUID       `json:"to_wallet_id"`
	Amount       decimal.Decimal `json:"amount"`
	Date         models.Date     `json:"date"`
	Note         string          `json:"note"`
}

// TransactionQuery selects a month of transactions plus optional filters.
type TransactionQuery struct {
	Month      models.YearMonth
	Kind       models.Kind
	CategoryID *uuid.UUID
	WalletID   *uuid.UUID
	Search     string
}

// FormData is what the entry form needs to render.
type FormData struct {
	Wallets    []models.Wallet   `json:"wallets"`
	Categories []models.Category `json:"categories"`
}

type TransactionService struct {
	txns       TransactionRepository
	categories *CategoryService
	walletSvc  *WalletService
	now        func() time.Time
}

func NewTransactionService(txns TransactionRepository, categories *CategoryService, walletSvc *WalletService, now func() time.Time) *TransactionService {
	return &TransactionService{txns: txns, categories: categories, walletSvc: walletSvc, now: now}
}

func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, q TransactionQuery) (*models.TransactionList, error) {
	if q.Month.Year == 0 {
		q.Month = models.YearMonthOf(s.now())
	}
	if q.Kind != "" && !q.Kind.Valid() {
		return nil, invalid("kind", "must be expense or income")
	}
	txns, err := s.txns.ListTransactions(ctx, userID, models.TransactionFilter{
		From:       q.Month.Start(),
		To:         q.Month.End(),
		Kind:       q.Kind,
		CategoryID: q.CategoryID,
		WalletID:   q.WalletID,
		Search:     q.Search,
	})
	if err != nil {
		return nil, err
	}
	return &models.TransactionList{Transactions: txns, Totals: finance.SumByKind(txns)}, nil
}

func (s *TransactionService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	return s.txns.GetTransaction(ctx, userID, id)
}

func (s *TransactionService) validate(ctx context.Context, userID uuid.UUID, in *TransactionInput) error {
	if !in.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	if !in.Kind.Valid() {
		return invalid("kind", "must be expense or income")
	}
	if in.Date.IsZero() {
		in.Date = models.DateOf(s.now())
	}
	in.Note = strings.TrimSpace(in.Note)
	if len([]rune(in.Note)) > maxNoteLength {
		return invalid("note", fmt.Sprintf("must be at most %d characters", maxNoteLength))
	}
	if _, err := s.walletSvc.activeWallet(ctx, userID, in.WalletID, "wallet_id"); err != nil {
		return err
	}

	if in.CategoryID == nil {
		return invalid("category_id", "is required")
	}
	category, err := s.categories.Get(ctx, userID, *in.CategoryID)
	if errors.Is(err, models.ErrNotFound) {
		return invalid("category_id", "category does not exist")
	}
	if err != nil {
		return err
	}
	if category.Kind != in.Kind {
		return invalid("category_id", fmt.Sprintf("category is for %s, not %s", category.Kind, in.Kind))
	}
	hasChildren, err := s.categories.HasChildren(ctx, userID, category.ID)
	if err != nil {
		return err
	}
	if hasChildren {
		return invalid("category_id", "choose a subcategory")
	}
	return nil
}

func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, in TransactionInput) (*models.Transaction, error) {
	if err := s.validate(ctx, userID, &in); err != nil {
		return nil, err
	}
	return s.txns.CreateTransaction(ctx, &models.Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		WalletID:   in.WalletID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Kind:       in.Kind,
		Date:       in.Date,
		Note:       in.Note,
	})
}

// CreateTransfer moves money between two wallets as an expense on the
// source and an income on the destination, stored atomically.
func (s *TransactionService) CreateTransfer(ctx context.Context, userID uuid.UUID, in TransferInput) (*models.Transfer, error) {
	if !in.Amount.IsPositive() {
		return nil, invalid("amount", "must be greater than zero")
	}
	if in.FromWalletID == in.ToWalletID {
		return nil, invalid("to_wallet_id", "must differ from the source wallet")
	}
	if in.Date.IsZero() {
		in.Date = models.DateOf(s.now())
	}
	in.Note = strings.TrimSpace(in.Note)
	if len([]rune(in.Note)) > maxNoteLength {
		return nil, invalid("note", fmt.Sprintf("must be at most %d characters", maxNoteLength))
	}
	from, err := s.walletSvc.activeWallet(ctx, userID, in.FromWalletID, "from_wallet_id")
	if err != nil {
		return nil, err
	}
	to, err := s.walletSvc.activeWallet(ctx, userID, in.ToWalletID, "to_wallet_id")
	if err != nil {
		return nil, err
	}

	category, err := s.categories.EnsureSystem(ctx, userID, models.SystemCategoryTransfer, models.KindExpense)
	if err != nil {
		return nil, fmt.Errorf("transfer category: %w", err)
	}
	categoryID := category.ID
	transferID := uuid.New()

	outNote, inNote := in.Note, in.Note
	if in.Note == "" {
		outNote = "Transferencia a " + to.Name
		inNote = "Transferencia desde " + from.Name
	}
	out := &models.Transaction{
		ID:                  uuid.New(),
		UserID:              userID,
		WalletID:            from.ID,
		DestinationWalletID: &to.ID,
		TransferID:          &transferID,
		CategoryID:          &categoryID,
		Amount:              in.Amount,
		Kind:                models.KindExpense,
		Date:                in.Date,
		Note:                outNote,
	}
	incoming := &models.Transaction{
		ID:                  uuid.New(),
		UserID:              userID,
		WalletID:            to.ID,
		DestinationWalletID: &from.ID,
		TransferID:          &transferID,
		CategoryID:          &categoryID,
		Amount:              in.Amount,
		Kind:                models.KindIncome,
		Date:                in.Date,
		Note:                inNote,
	}
	transfer, err := s.txns.CreateTransfer(ctx, out, incoming)
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: Transfer %s of %s from wallet %s to %s for user %s", transferID, in.Amount, from.ID, to.ID, userID)
	return transfer, nil
}

func (s *TransactionService) Update(ctx context.Context, userID, id uuid.UUID, in TransactionInput) (*models.Transaction, error) {
	existing, err := s.txns.GetTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if existing.IsTransferLeg() {
		return nil, ErrTransferLegReadOnly
	}
	if err := s.validate(ctx, userID, &in); err != nil {
		return nil, err
	}
	existing.WalletID, existing.CategoryID, existing.Amount = in.WalletID, in.CategoryID, in.Amount
	existing.Kind, existing.Date, existing.Note = in.Kind, in.Date, in.Note
	return s.txns.UpdateTransaction(ctx, existing)
}

func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.txns.DeleteTransaction(ctx, userID, id)
}

// FormData returns wallets and categories for the entry form, creating the
// default cash wallet for brand new users.
func (s *TransactionService) FormData(ctx context.Context, userID uuid.UUID) (*FormData, error) {
	wallets, err := s.walletSvc.EnsureDefault(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	visible := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if !c.IsSystem {
			visible = append(visible, c)
		}
	}
	return &FormData{Wallets: wallets, Categories: visible}, nil
}
