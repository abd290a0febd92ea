package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"caudal-server/src/config"
	"caudal-server/src/db/memory"
	"caudal-server/src/export"
	"caudal-server/src/models"
	"caudal-server/src/services"
	"caudal-server/src/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const secret = "router-secret"

type noExport struct{}

func (noExport) Fetch(context.Context, session.Session, export.Format, models.YearMonth) (*export.File, error) {
	return nil, export.ErrNoData
}

func newTestServer(t *testing.T, demo bool) (http.Handler, string) {
	t.Helper()
	cfg := &config.Config{JWTSecret: secret, AllowedOrigins: []string{"http://localhost:3000"}, DemoMode: demo}
	svc := services.New(memory.New(), nil, time.Now)
	r := NewRouter(cfg, Deps{Services: svc, Exporter: noExport{}, Now: time.Now})

	tokens, err := session.NewHMACTokenProvider(secret, time.Minute, "")
	if err != nil {
		t.Fatalf("NewHMACTokenProvider: %v", err)
	}
	token, err := tokens.Token(context.Background(), session.Session{UserID: uuid.New(), Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	return r, token
}

func request(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthIsPublic(t *testing.T) {
	h, _ := newTestServer(t, false)
	rr := request(h, http.MethodGet, "/health", "", "")
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("health = %d %q", rr.Code, rr.Body.String())
	}
}

func TestAPIRequiresToken(t *testing.T) {
	h, token := newTestServer(t, false)
	if rr := request(h, http.MethodGet, "/api/wallets", "", ""); rr.Code != http.StatusUnauthorized {
		t.Fatalf("without token = %d, want 401", rr.Code)
	}
	if rr := request(h, http.MethodGet, "/api/wallets", token, ""); rr.Code != http.StatusOK {
		t.Fatalf("with token = %d, want 200", rr.Code)
	}
}

func TestRoutes(t *testing.T) {
	h, token := newTestServer(t, false)
	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/categories", "", http.StatusOK},
		{http.MethodGet, "/api/transactions/form-data", "", http.StatusOK},
		{http.MethodGet, "/api/transactions", "", http.StatusOK},
		{http.MethodGet, "/api/budgets?month=6&year=2025", "", http.StatusOK},
		{http.MethodGet, "/api/debts?direction=owed_to_me", "", http.StatusOK},
		{http.MethodGet, "/api/debts?direction=sideways", "", http.StatusBadRequest},
		{http.MethodGet, "/api/reports?months=6", "", http.StatusOK},
		{http.MethodGet, "/api/reports/calendar?month=2025-02", "", http.StatusOK},
		{http.MethodGet, "/api/dashboard", "", http.StatusOK},
		{http.MethodGet, "/api/notifications", "", http.StatusOK},
		{http.MethodGet, "/api/profile", "", http.StatusOK},
		{http.MethodGet, "/api/profile/stats", "", http.StatusOK},
		{http.MethodPost, "/api/profile/onboarding", "", http.StatusOK},
		{http.MethodGet, "/api/export/pdf", "", http.StatusNotFound},
		{http.MethodGet, "/api/categories?kind=foo", "", http.StatusBadRequest},
		{http.MethodPost, "/api/admin/cache/clear/categories", "", http.StatusForbidden},
		{http.MethodDelete, "/api/debts/" + uuid.NewString(), "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := request(h, tt.method, tt.path, token, tt.body)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestCacheClearNeedsSuperAdmin(t *testing.T) {
	h, _ := newTestServer(t, false)
	claims := session.Claims{
		Email:      "admin@example.com",
		SuperAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	admin, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign admin token: %v", err)
	}
	if rr := request(h, http.MethodPost, "/api/admin/cache/clear/categories", admin, ""); rr.Code != http.StatusNoContent {
		t.Fatalf("admin clear = %d, want 204", rr.Code)
	}
	if rr := request(h, http.MethodPost, "/api/admin/cache/clear/everything", admin, ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("admin clear unknown = %d, want 400", rr.Code)
	}
}

func TestDemoModeIsReadOnly(t *testing.T) {
	h, token := newTestServer(t, true)
	if rr := request(h, http.MethodPost, "/api/wallets", token, `{"name":"X","kind":"cash"}`); rr.Code != http.StatusForbidden {
		t.Fatalf("POST in demo mode = %d, want 403", rr.Code)
	}
	if rr := request(h, http.MethodGet, "/api/wallets", token, ""); rr.Code != http.StatusOK {
		t.Fatalf("GET in demo mode = %d, want 200", rr.Code)
	}
}
