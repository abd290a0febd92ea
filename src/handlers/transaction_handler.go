package handlers

import (
	"log"
	"net/http"
	"strings"

	"caudal-server/src/models"
	"caudal-server/src/services"
)

func ListTransactions(svc *services.TransactionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		month, err := monthParam(r)
		if err != nil {
			http.Error(w, "invalid month, expected YYYY-MM", http.StatusBadRequest)
			return
		}
		categoryID, err := optionalUUID(r, "category_id")
		if err != nil {
			http.Error(w, "invalid category_id", http.StatusBadRequest)
			return
		}
		walletID, err := optionalUUID(r, "wallet_id")
		if err != nil {
			http.Error(w, "invalid wallet_id", http.StatusBadRequest)
			return
		}
		list, err := svc.List(r.Context(), sess.UserID, services.TransactionQuery{
			Month:      month,
			Kind:       models.Kind(r.URL.Query().Get("kind")),
			CategoryID: categoryID,
			WalletID:   walletID,
			Search:     strings.TrimSpace(r.URL.Query().Get("q")),
		})
		if err != nil {
			fail(w, err, "list transactions", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func GetTransaction(svc *services.TransactionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "transaction_id")
		if !ok {
			return
		}
		tx, err := svc.Get(r.Context(), sess.UserID, id)
		if err != nil {
			fail(w, err, "get transaction", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, tx)
	}
}

func CreateTransaction(svc *services.TransactionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		var req services.TransactionInput
		if !decode(w, r, &req, "create transaction", sess.UserID) {
			return
		}
		created, err := svc.Create(r.Context(), sess.UserID, req)
		if err != nil {
			fail(w, err, "create transaction", sess.UserID)
			return
		}
		log.Printf("INFO: Created %s transaction %s of %s for user %s", created.Kind, created.ID, created.Amount, sess.UserID)
		writeJSON(w, http.StatusCreated, created)
	}
}

func CreateTransfer(svc *services.TransactionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		var req services.TransferInput
		if !decode(w, r, &req, "create transfer", sess.UserID) {
			return
		}
		transfer, err := svc.CreateTransfer(r.Context(), sess.UserID, req)
		if err != nil {
			fail(w, err, "create transfer", sess.UserID)
			return
		}
		writeJSON(w, http.StatusCreated, transfer)
	}
}

func UpdateTransaction(svc *services.TransactionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "transaction_id")
		if !ok {
			return
		}
		var req services.TransactionInput
		if !decode(w, r, &req, "update transaction", sess.UserID) {
			return
		}
		updated, err := svc.Update(r.Context(), sess.UserID, id, req)
		if err != nil {
			fail(w, err, "update transaction", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteTransaction(svc *services.TransactionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "transaction_id")
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), sess.UserID, id); err != nil {
			fail(w, err, "delete transaction", sess.UserID)
			return
		}
		log.Printf("INFO: Deleted transaction %s for user %s", id, sess.UserID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetFormData returns what the entry form needs; it may create the default
// wallet, so it is routed as a GET that can write.
func GetFormData(svc *services.TransactionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		data, err := svc.FormData(r.Context(), sess.UserID)
		if err != nil {
			fail(w, err, "load form data", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, data)
	}
}
