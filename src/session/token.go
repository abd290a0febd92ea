package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenProvider returns a bearer token authorizing a call made on behalf of
// the session's user.
type TokenProvider interface {
	Token(ctx context.Context, s Session) (string, error)
}

// Claims is the token body shared by inbound verification and outbound
// service tokens.
type Claims struct {
	Email      string `json:"email,omitempty"`
	SuperAdmin bool   `json:"super_admin,omitempty"`
	jwt.RegisteredClaims
}

// HMACTokenProvider signs HS256 tokens with a shared secret.
type HMACTokenProvider struct {
	secret   []byte
	ttl      time.Duration
	audience string
	now      func() time.Time
}

func NewHMACTokenProvider(secret string, ttl time.Duration, audience string) (*HMACTokenProvider, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &HMACTokenProvider{secret: []byte(secret), ttl: ttl, audience: audience, now: time.Now}, nil
}

func (p *HMACTokenProvider) Token(_ context.Context, s Session) (string, error) {
	now := p.now()
	claims := Claims{
		Email: s.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	if p.audience != "" {
		claims.Audience = jwt.ClaimStrings{p.audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign service token: %w", err)
	}
	return signed, nil
}
