package handlers

import (
	"log"
	"net/http"

	"caudal-server/src/db"

	"github.com/go-chi/chi/v5"
)

// ClearCache drops one cache group, e.g. after editing rows by hand.
func ClearCache(cache *db.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "cache_name")
		switch name {
		case db.CategoryCacheGroup, db.ProfileCacheGroup:
		default:
			http.Error(w, "unknown cache", http.StatusBadRequest)
			return
		}
		cache.ClearGroup(name)
		log.Printf("INFO: Cleared cache %s", name)
		w.WriteHeader(http.StatusNoContent)
	}
}
