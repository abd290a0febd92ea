package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"caudal-server/src/finance"
	"caudal-server/src/models"
	"caudal-server/src/services"
	"caudal-server/src/session"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
	}
}

// statusFor maps service and store errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case services.IsValidation(err),
		errors.Is(err, finance.ErrInvalidPaymentAmount),
		errors.Is(err, finance.ErrPaymentExceedsPending),
		errors.Is(err, finance.ErrZeroLimit):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrInUse),
		errors.Is(err, services.ErrSystemCategory),
		errors.Is(err, services.ErrTransferLegReadOnly):
		return http.StatusConflict
	case errors.Is(err, finance.ErrNoAdjustment):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err and answers with its status. Internal errors are not
// echoed to the client.
func fail(w http.ResponseWriter, err error, action string, userID uuid.UUID) {
	status := statusFor(err)
	log.Printf("ERROR: Failed to %s for user %s: %v", action, userID, err)
	switch status {
	case http.StatusInternalServerError:
		http.Error(w, "failed to "+action, status)
	case http.StatusNotFound:
		http.Error(w, "not found", status)
	case http.StatusConflict:
		if errors.Is(err, models.ErrConflict) {
			http.Error(w, "already exists", status)
			return
		}
		if errors.Is(err, models.ErrInUse) && !errors.Is(err, services.ErrCategoryHasChildren) {
			http.Error(w, "still referenced by other records", status)
			return
		}
		http.Error(w, err.Error(), status)
	default:
		http.Error(w, err.Error(), status)
	}
}

// sessionFrom returns the caller or answers 401.
func sessionFrom(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		log.Printf("ERROR: No session on %s: %v", r.URL.Path, err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return session.Session{}, false
	}
	return s, true
}

// idParam parses a uuid URL parameter or answers 400.
func idParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		log.Printf("ERROR: Invalid %s param: %s", name, raw)
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// decode reads a JSON body into v or answers 400.
func decode(w http.ResponseWriter, r *http.Request, v interface{}, what string, userID uuid.UUID) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Printf("ERROR: Failed to decode %s request body for user %s: %v", what, userID, err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return false
	}
	return true
}

// optionalUUID parses a query parameter that may be absent.
func optionalUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
