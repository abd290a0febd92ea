package handlers

import (
	"net/http"

	"caudal-server/src/models"
	"caudal-server/src/services"
)

func ListDebts(svc *services.DebtService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		list, err := svc.List(r.Context(), sess.UserID, models.DebtDirection(r.URL.Query().Get("direction")))
		if err != nil {
			fail(w, err, "list debts", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func GetDebt(svc *services.DebtService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "debt_id")
		if !ok {
			return
		}
		debt, err := svc.Get(r.Context(), sess.UserID, id)
		if err != nil {
			fail(w, err, "get debt", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, debt)
	}
}

func CreateDebt(svc *services.DebtService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		var req services.DebtInput
		if !decode(w, r, &req, "create debt", sess.UserID) {
			return
		}
		created, err := svc.Create(r.Context(), sess.UserID, req)
		if err != nil {
			fail(w, err, "create debt", sess.UserID)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateDebt(svc *services.DebtService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "debt_id")
		if !ok {
			return
		}
		var req services.DebtInput
		if !decode(w, r, &req, "update debt", sess.UserID) {
			return
		}
		updated, err := svc.Update(r.Context(), sess.UserID, id, req)
		if err != nil {
			fail(w, err, "update debt", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func ToggleDebtCompleted(svc *services.DebtService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "debt_id")
		if !ok {
			return
		}
		updated, err := svc.ToggleCompleted(r.Context(), sess.UserID, id)
		if err != nil {
			fail(w, err, "toggle debt", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteDebt(svc *services.DebtService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "debt_id")
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), sess.UserID, id); err != nil {
			fail(w, err, "delete debt", sess.UserID)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListDebtPayments(svc *services.DebtService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "debt_id")
		if !ok {
			return
		}
		payments, err := svc.Payments(r.Context(), sess.UserID, id)
		if err != nil {
			fail(w, err, "list debt payments", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, payments)
	}
}

func RecordDebtPayment(svc *services.DebtService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "debt_id")
		if !ok {
			return
		}
		var req services.PaymentInput
		if !decode(w, r, &req, "record debt payment", sess.UserID) {
			return
		}
		result, err := svc.RecordPayment(r.Context(), sess.UserID, id, req)
		if err != nil {
			fail(w, err, "record debt payment", sess.UserID)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}
