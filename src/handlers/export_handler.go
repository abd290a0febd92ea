package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"caudal-server/src/export"
	"caudal-server/src/models"
	"caudal-server/src/session"

	"github.com/go-chi/chi/v5"
)

// Exporter fetches a rendered month from the export service.
type Exporter interface {
	Fetch(ctx context.Context, s session.Session, f export.Format, ym models.YearMonth) (*export.File, error)
}

func ExportMonth(exporter Exporter, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		format := export.Format(chi.URLParam(r, "format"))
		if !format.Valid() {
			http.Error(w, "format must be excel or pdf", http.StatusBadRequest)
			return
		}
		month, err := monthParam(r)
		if err != nil {
			http.Error(w, "invalid month, expected YYYY-MM", http.StatusBadRequest)
			return
		}
		if month.Year == 0 {
			month = models.YearMonthOf(now())
		}

		file, err := exporter.Fetch(r.Context(), sess, format, month)
		switch {
		case errors.Is(err, export.ErrNoData):
			log.Printf("INFO: Nothing to export for user %s in %s: %v", sess.UserID, month, err)
			http.Error(w, "no transactions to export", http.StatusNotFound)
			return
		case errors.Is(err, export.ErrUnavailable):
			log.Printf("ERROR: Export service unreachable for user %s: %v", sess.UserID, err)
			http.Error(w, "export service unavailable", http.StatusBadGateway)
			return
		case err != nil:
			log.Printf("ERROR: Failed to export %s for user %s: %v", format, sess.UserID, err)
			http.Error(w, "failed to export", http.StatusInternalServerError)
			return
		}
		defer file.Body.Close()

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		if _, err := io.Copy(w, file.Body); err != nil {
			log.Printf("ERROR: Failed to stream export to user %s: %v", sess.UserID, err)
		}
	}
}
