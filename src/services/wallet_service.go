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

const DefaultWalletName = "Efectivo"

type WalletInput struct {
	Name           string            `json:"name"`
	Kind           models.WalletKind `json:"kind"`
	InitialBalance decimal.Decimal   `json:"initial_balance"`
	Currency       string            `json:"currency"`
	Color          string            `json:"color"`
	CreditLimit    *decimal.Decimal  `json:"credit_limit"`
	StatementDay   *int              `json:"statement_day"`
	PaymentDay     *int              `json:"payment_day"`
}

type WalletService struct {
	wallets    WalletRepository
	txns       TransactionRepository
	categories *CategoryService
	now        func() time.Time
}

func NewWalletService(wallets WalletRepository, txns TransactionRepository, categories *CategoryService, now func() time.Time) *WalletService {
	return &WalletService{wallets: wallets, txns: txns, categories: categories, now: now}
}

// List returns active wallets with derived balances and the net worth. A
// failed totals query degrades every balance to its initial value.
func (s *WalletService) List(ctx context.Context, userID uuid.UUID) (*models.WalletList, error) {
	wallets, err := s.wallets.ListWallets(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	totals, err := s.wallets.WalletTotals(ctx, userID)
	if err != nil {
		log.Printf("ERROR: Failed to sum transactions for user %s, showing initial balances: %v", userID, err)
		totals = map[uuid.UUID]models.Totals{}
	}

	today := s.now()
	list := &models.WalletList{Wallets: make([]models.WalletWithBalance, 0, len(wallets))}
	for _, w := range wallets {
		list.Wallets = append(list.Wallets, withBalance(w, totals[w.ID], today))
	}
	list.NetWorth = finance.NetWorth(list.Wallets)
	return list, nil
}

func withBalance(w models.Wallet, totals models.Totals, today time.Time) models.WalletWithBalance {
	balance := finance.BalanceFromTotals(w.InitialBalance, totals)
	return models.WalletWithBalance{
		Wallet:  w,
		Balance: balance,
		Card:    finance.CardStatus(w, balance, today),
	}
}

func (s *WalletService) Get(ctx context.Context, userID, id uuid.UUID) (*models.WalletWithBalance, error) {
	w, err := s.wallets.GetWallet(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	totals, err := s.wallets.WalletTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := withBalance(*w, totals[w.ID], s.now())
	return &out, nil
}

func (s *WalletService) validate(in *WalletInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if !util.ValidateName(in.Name, 60) {
		return invalid("name", "is required and must be at most 60 characters")
	}
	if !in.Kind.Valid() {
		return invalid("kind", "must be one of cash, bank, credit, savings")
	}
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = models.DefaultCurrency
	}
	if !util.ValidateCurrency(in.Currency) {
		return invalid("currency", "must be a three letter code")
	}
	if in.Color == "" {
		in.Color = "#0D9488"
	}
	if !util.ValidateColor(in.Color) {
		return invalid("color", "must be a hex color")
	}

	if in.Kind != models.WalletCredit {
		in.CreditLimit, in.StatementDay, in.PaymentDay = nil, nil, nil
		return nil
	}
	if in.CreditLimit != nil && in.CreditLimit.IsNegative() {
		return invalid("credit_limit", "must not be negative")
	}
	if in.StatementDay != nil && !util.ValidateDayOfMonth(*in.StatementDay) {
		return invalid("statement_day", "must be between 1 and 31")
	}
	if in.PaymentDay != nil && !util.ValidateDayOfMonth(*in.PaymentDay) {
		return invalid("payment_day", "must be between 1 and 31")
	}
	return nil
}

func (s *WalletService) Create(ctx context.Context, userID uuid.UUID, in WalletInput) (*models.Wallet, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}
	return s.wallets.CreateWallet(ctx, &models.Wallet{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           in.Name,
		Kind:           in.Kind,
		InitialBalance: in.InitialBalance,
		Currency:       in.Currency,
		Color:          in.Color,
		CreditLimit:    in.CreditLimit,
		StatementDay:   in.StatementDay,
		PaymentDay:     in.PaymentDay,
	})
}

// Update edits a wallet. The initial balance is kept as stored.
func (s *WalletService) Update(ctx context.Context, userID, id uuid.UUID, in WalletInput) (*models.Wallet, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}
	existing, err := s.wallets.GetWallet(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	existing.Name, existing.Kind, existing.Currency, existing.Color = in.Name, in.Kind, in.Currency, in.Color
	existing.CreditLimit, existing.StatementDay, existing.PaymentDay = in.CreditLimit, in.StatementDay, in.PaymentDay
	return s.wallets.UpdateWallet(ctx, existing)
}

func (s *WalletService) Deactivate(ctx context.Context, userID, id uuid.UUID) error {
	return s.wallets.DeactivateWallet(ctx, userID, id)
}

// Adjust reconciles a wallet to the balance the user reports by posting a
// single synthetic transaction for the difference.
func (s *WalletService) Adjust(ctx context.Context, userID, id uuid.UUID, actual decimal.Decimal) (*models.Transaction, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !current.Active {
		return nil, invalid("wallet_id", "wallet is inactive")
	}
	plan, err := finance.PlanAdjustment(current.Balance, actual)
	if err != nil {
		return nil, err
	}
	category, err := s.categories.EnsureSystem(ctx, userID, models.SystemCategoryAdjustment, plan.Kind)
	if err != nil {
		return nil, fmt.Errorf("adjustment category: %w", err)
	}
	categoryID := category.ID
	return s.txns.CreateTransaction(ctx, &models.Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		WalletID:   id,
		CategoryID: &categoryID,
		Amount:     plan.Amount,
		Kind:       plan.Kind,
		Date:       models.DateOf(s.now()),
		Note:       "Ajuste de saldo — " + current.Name,
	})
}

// EnsureDefault returns the user's active wallets, creating the default
// cash wallet when there are none.
func (s *WalletService) EnsureDefault(ctx context.Context, userID uuid.UUID, currency string) ([]models.Wallet, error) {
	wallets, err := s.wallets.ListWallets(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if len(wallets) > 0 {
		return wallets, nil
	}
	if currency == "" {
		currency = models.DefaultCurrency
	}
	created, err := s.Create(ctx, userID, WalletInput{
		Name:           DefaultWalletName,
		Kind:           models.WalletCash,
		InitialBalance: decimal.Zero,
		Currency:       currency,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: Created default wallet %s for user %s", created.ID, userID)
	return []models.Wallet{*created}, nil
}

// activeWallet loads a wallet and insists it is usable for new movements.
func (s *WalletService) activeWallet(ctx context.Context, userID, id uuid.UUID, field string) (*models.Wallet, error) {
	w, err := s.wallets.GetWallet(ctx, userID, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, invalid(field, "wallet does not exist")
	}
	if err != nil {
		return nil, err
	}
	if !w.Active {
		return nil, invalid(field, "wallet is inactive")
	}
	return w, nil
}
