package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"caudal-server/src/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ParseTokenFromRequest extracts and validates the bearer token, returning
// the verified session it describes.
func ParseTokenFromRequest(r *http.Request, secret []byte, audience string) (session.Session, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return session.Session{}, fmt.Errorf("missing token")
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	claims := &session.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return session.Session{}, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return session.Session{}, fmt.Errorf("invalid token subject")
	}

	return session.Session{UserID: userID, Email: claims.Email, SuperAdmin: claims.SuperAdmin}, nil
}

func JWTAuthMiddleware(secret, audience string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := ParseTokenFromRequest(r, key, audience)
			if err != nil {
				log.Printf("ERROR: Rejected request to %s: %v", r.URL.Path, err)
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			r = r.WithContext(session.NewContext(r.Context(), s))
			next.ServeHTTP(w, r)
		})
	}
}

// SuperAdminMiddleware lets through only sessions whose token carries the
// super_admin claim. It must run after JWTAuthMiddleware.
func SuperAdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := session.FromContext(r.Context())
		if err != nil || !s.SuperAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
