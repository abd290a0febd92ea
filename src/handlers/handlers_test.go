package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"caudal-server/src/db/memory"
	"caudal-server/src/export"
	"caudal-server/src/finance"
	"caudal-server/src/models"
	"caudal-server/src/services"
	"caudal-server/src/session"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func testNow() time.Time { return time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC) }

type stubExporter struct {
	err error
	got models.YearMonth
}

func (s *stubExporter) Fetch(_ context.Context, _ session.Session, f export.Format, ym models.YearMonth) (*export.File, error) {
	s.got = ym
	if s.err != nil {
		return nil, s.err
	}
	return &export.File{Name: export.FileName(ym, f), ContentType: f.ContentType(), Body: io.NopCloser(strings.NewReader("file"))}, nil
}

func newTestRouter(t *testing.T, user uuid.UUID, exporter Exporter) http.Handler {
	t.Helper()
	svc := services.New(memory.New(), nil, testNow)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user != uuid.Nil {
				r = r.WithContext(session.NewContext(r.Context(), session.Session{UserID: user, Email: "ana@example.com"}))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Get("/wallets", ListWallets(svc.Wallets))
	r.Post("/wallets", CreateWallet(svc.Wallets))
	r.Get("/wallets/{wallet_id}", GetWallet(svc.Wallets))
	r.Post("/wallets/{wallet_id}/adjust", AdjustWallet(svc.Wallets))
	r.Post("/categories", CreateCategory(svc.Categories))
	r.Post("/transactions", CreateTransaction(svc.Transactions))
	r.Get("/transactions", ListTransactions(svc.Transactions))
	r.Post("/budgets", CreateBudget(svc.Budgets))
	r.Get("/profile", GetProfile(svc.Profiles))
	r.Get("/export/{format}", ExportMonth(exporter, testNow))
	return r
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

func TestMissingSessionIsUnauthorized(t *testing.T) {
	h := newTestRouter(t, uuid.Nil, &stubExporter{})
	if rr := do(t, h, http.MethodGet, "/wallets", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestWalletLifecycle(t *testing.T) {
	h := newTestRouter(t, uuid.New(), &stubExporter{})

	rr := do(t, h, http.MethodPost, "/wallets", map[string]interface{}{"name": "Banco", "kind": "bank", "initial_balance": "1000"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rr.Code, rr.Body)
	}
	var wallet models.Wallet
	decodeBody(t, rr, &wallet)

	rr = do(t, h, http.MethodPost, "/wallets/"+wallet.ID.String()+"/adjust", map[string]string{"actual_balance": "1000"})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("noop adjust status = %d, want 422", rr.Code)
	}
	rr = do(t, h, http.MethodPost, "/wallets/"+wallet.ID.String()+"/adjust", map[string]string{"actual_balance": "900.50"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("adjust status = %d: %s", rr.Code, rr.Body)
	}

	rr = do(t, h, http.MethodGet, "/wallets/"+wallet.ID.String(), nil)
	var got models.WalletWithBalance
	decodeBody(t, rr, &got)
	if got.Balance.String() != "900.5" {
		t.Fatalf("balance = %s, want 900.5", got.Balance)
	}

	if rr := do(t, h, http.MethodGet, "/wallets/not-a-uuid", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/wallets/"+uuid.NewString(), nil); rr.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d", rr.Code)
	}
}

func TestCreateWalletValidation(t *testing.T) {
	h := newTestRouter(t, uuid.New(), &stubExporter{})
	tests := []struct {
		name string
		body interface{}
	}{
		{"bad kind", map[string]string{"name": "X", "kind": "crypto"}},
		{"empty name", map[string]string{"name": " ", "kind": "cash"}},
		{"bad color", map[string]string{"name": "X", "kind": "cash", "color": "teal"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := do(t, h, http.MethodPost, "/wallets", tt.body); rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/wallets", strings.NewReader("{"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status = %d", rr.Code)
	}
}

func TestTransactionsAndDuplicateBudget(t *testing.T) {
	h := newTestRouter(t, uuid.New(), &stubExporter{})

	var wallet models.Wallet
	decodeBody(t, do(t, h, http.MethodPost, "/wallets", map[string]string{"name": "Efectivo", "kind": "cash"}), &wallet)
	var food models.Category
	decodeBody(t, do(t, h, http.MethodPost, "/categories", map[string]string{"name": "Comida", "kind": "expense"}), &food)

	rr := do(t, h, http.MethodPost, "/transactions", map[string]interface{}{
		"wallet_id":   wallet.ID,
		"category_id": food.ID,
		"amount":      "45.25",
		"kind":        "expense",
		"date":        "2025-06-03",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create transaction status = %d: %s", rr.Code, rr.Body)
	}

	rr = do(t, h, http.MethodGet, "/transactions?month=2025-06&q=comi", nil)
	var list models.TransactionList
	decodeBody(t, rr, &list)
	if len(list.Transactions) != 1 || list.Totals.Expense.String() != "45.25" {
		t.Fatalf("list = %+v", list)
	}
	if rr := do(t, h, http.MethodGet, "/transactions?month=june", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("bad month status = %d", rr.Code)
	}

	budget := map[string]interface{}{"category_id": food.ID, "month": 6, "year": 2025, "limit": "300"}
	if rr := do(t, h, http.MethodPost, "/budgets", budget); rr.Code != http.StatusCreated {
		t.Fatalf("create budget status = %d: %s", rr.Code, rr.Body)
	}
	if rr := do(t, h, http.MethodPost, "/budgets", budget); rr.Code != http.StatusConflict {
		t.Fatalf("duplicate budget status = %d, want 409", rr.Code)
	}
}

func TestProfileAutoCreate(t *testing.T) {
	h := newTestRouter(t, uuid.New(), &stubExporter{})
	rr := do(t, h, http.MethodGet, "/profile", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var p models.Profile
	decodeBody(t, rr, &p)
	if p.Name != "ana" || p.DefaultCurrency != "HNL" {
		t.Fatalf("profile = %+v", p)
	}
}

func TestExportMonth(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		err      error
		status   int
		filename string
	}{
		{"excel current month", "/export/excel", nil, http.StatusOK, "Caudal_2025-06.xlsx"},
		{"pdf given month", "/export/pdf?month=2025-02", nil, http.StatusOK, "Caudal_2025-02.pdf"},
		{"unknown format", "/export/csv", nil, http.StatusBadRequest, ""},
		{"no data", "/export/pdf", export.ErrNoData, http.StatusNotFound, ""},
		{"service down", "/export/pdf", export.ErrUnavailable, http.StatusBadGateway, ""},
		{"other failure", "/export/pdf", errors.New("boom"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t, uuid.New(), &stubExporter{err: tt.err})
			rr := do(t, h, http.MethodGet, tt.path, nil)
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d", rr.Code, tt.status)
			}
			if tt.filename != "" && !strings.Contains(rr.Header().Get("Content-Disposition"), tt.filename) {
				t.Errorf("Content-Disposition = %q", rr.Header().Get("Content-Disposition"))
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&services.ValidationError{Field: "x", Message: "bad"}, http.StatusBadRequest},
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrConflict, http.StatusConflict},
		{services.ErrCategoryHasChildren, http.StatusConflict},
		{services.ErrTransferLegReadOnly, http.StatusConflict},
		{fmt.Errorf("debt x: %w", finance.ErrPaymentExceedsPending), http.StatusBadRequest},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
