package handlers

import (
	"log"
	"net/http"

	"caudal-server/src/services"

	"github.com/shopspring/decimal"
)

func ListWallets(svc *services.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		list, err := svc.List(r.Context(), sess.UserID)
		if err != nil {
			fail(w, err, "list wallets", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func GetWallet(svc *services.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "wallet_id")
		if !ok {
			return
		}
		wallet, err := svc.Get(r.Context(), sess.UserID, id)
		if err != nil {
			fail(w, err, "get wallet", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, wallet)
	}
}

func CreateWallet(svc *services.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		var req services.WalletInput
		if !decode(w, r, &req, "create wallet", sess.UserID) {
			return
		}
		created, err := svc.Create(r.Context(), sess.UserID, req)
		if err != nil {
			fail(w, err, "create wallet", sess.UserID)
			return
		}
		log.Printf("INFO: Created wallet %s (%s) for user %s", created.ID, created.Kind, sess.UserID)
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateWallet(svc *services.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "wallet_id")
		if !ok {
			return
		}
		var req services.WalletInput
		if !decode(w, r, &req, "update wallet", sess.UserID) {
			return
		}
		updated, err := svc.Update(r.Context(), sess.UserID, id, req)
		if err != nil {
			fail(w, err, "update wallet", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeactivateWallet(svc *services.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "wallet_id")
		if !ok {
			return
		}
		if err := svc.Deactivate(r.Context(), sess.UserID, id); err != nil {
			fail(w, err, "deactivate wallet", sess.UserID)
			return
		}
		log.Printf("INFO: Deactivated wallet %s for user %s", id, sess.UserID)
		w.WriteHeader(http.StatusNoContent)
	}
}

func AdjustWallet(svc *services.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "wallet_id")
		if !ok {
			return
		}
		var req struct {
			ActualBalance decimal.Decimal `json:"actual_balance"`
		}
		if !decode(w, r, &req, "adjust wallet", sess.UserID) {
			return
		}
		tx, err := svc.Adjust(r.Context(), sess.UserID, id, req.ActualBalance)
		if err != nil {
			fail(w, err, "adjust wallet", sess.UserID)
			return
		}
		log.Printf("INFO: Adjusted wallet %s for user %s with %s of %s", id, sess.UserID, tx.Kind, tx.Amount)
		writeJSON(w, http.StatusCreated, tx)
	}
}
