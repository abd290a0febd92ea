// Package session carries the authenticated caller through a request and
// mints short-lived tokens for calls to sibling services.
package session

import (
	"context"
	"errors"
	"strings"

	"caudal-server/src/util"

	"github.com/google/uuid"
)

var ErrNoSession = errors.New("no authenticated session in context")

// Session is the verified identity every query is scoped by.
type Session struct {
	UserID     uuid.UUID
	Email      string
	SuperAdmin bool
}

// DisplayName guesses a name from the email local part. Missing or
// malformed emails yield "Usuario".
func (s Session) DisplayName() string {
	email := strings.TrimSpace(s.Email)
	if !util.ValidateEmail(email) {
		return "Usuario"
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

type ctxKey struct{}

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok || s.UserID == uuid.Nil {
		return Session{}, ErrNoSession
	}
	return s, nil
}
