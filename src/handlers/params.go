package handlers

import (
	"net/http"

	"caudal-server/src/models"
)

// monthParam reads ?month=YYYY-MM. Absent means the zero month, which the
// services resolve to the current one.
func monthParam(r *http.Request) (models.YearMonth, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return models.YearMonth{}, nil
	}
	return models.ParseYearMonth(raw)
}
