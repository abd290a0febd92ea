package handlers

import (
	"log"
	"net/http"
	"strconv"

	"caudal-server/src/services"

	"github.com/shopspring/decimal"
)

func intQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func ListBudgets(svc *services.BudgetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		month, err := intQuery(r, "month")
		if err != nil {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}
		year, err := intQuery(r, "year")
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		list, err := svc.List(r.Context(), sess.UserID, month, year)
		if err != nil {
			fail(w, err, "list budgets", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func GetBudgetByID(svc *services.BudgetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "budget_id")
		if !ok {
			return
		}
		budget, err := svc.Get(r.Context(), sess.UserID, id)
		if err != nil {
			fail(w, err, "get budget", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, budget)
	}
}

func CreateBudget(svc *services.BudgetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		var req services.BudgetInput
		if !decode(w, r, &req, "create budget", sess.UserID) {
			return
		}
		created, err := svc.Create(r.Context(), sess.UserID, req)
		if err != nil {
			fail(w, err, "create budget", sess.UserID)
			return
		}
		log.Printf("INFO: Created budget %s for user %s, category %s %02d/%d", created.ID, sess.UserID, created.CategoryID, created.Month, created.Year)
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateBudget(svc *services.BudgetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "budget_id")
		if !ok {
			return
		}
		var req struct {
			Limit decimal.Decimal `json:"limit"`
		}
		if !decode(w, r, &req, "update budget", sess.UserID) {
			return
		}
		updated, err := svc.UpdateLimit(r.Context(), sess.UserID, id, req.Limit)
		if err != nil {
			fail(w, err, "update budget", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteBudget(svc *services.BudgetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "budget_id")
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), sess.UserID, id); err != nil {
			fail(w, err, "delete budget", sess.UserID)
			return
		}
		log.Printf("INFO: Deleted budget %s for user %s", id, sess.UserID)
		w.WriteHeader(http.StatusNoContent)
	}
}
