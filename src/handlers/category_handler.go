package handlers

import (
	"log"
	"net/http"

	"caudal-server/src/models"
	"caudal-server/src/services"
)

func ListCategories(svc *services.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		kind := models.Kind(r.URL.Query().Get("kind"))
		if kind != "" && !kind.Valid() {
			http.Error(w, "invalid kind", http.StatusBadRequest)
			return
		}
		categories, err := svc.List(r.Context(), sess.UserID, kind)
		if err != nil {
			fail(w, err, "list categories", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, categories)
	}
}

func GetCategory(svc *services.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "category_id")
		if !ok {
			return
		}
		category, err := svc.Get(r.Context(), sess.UserID, id)
		if err != nil {
			fail(w, err, "get category", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, category)
	}
}

func CreateCategory(svc *services.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		var req services.CategoryInput
		if !decode(w, r, &req, "create category", sess.UserID) {
			return
		}
		created, err := svc.Create(r.Context(), sess.UserID, req)
		if err != nil {
			fail(w, err, "create category", sess.UserID)
			return
		}
		log.Printf("INFO: Created category %s (%s) for user %s", created.ID, created.Name, sess.UserID)
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateCategory(svc *services.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "category_id")
		if !ok {
			return
		}
		var req services.CategoryInput
		if !decode(w, r, &req, "update category", sess.UserID) {
			return
		}
		updated, err := svc.Update(r.Context(), sess.UserID, id, req)
		if err != nil {
			fail(w, err, "update category", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteCategory(svc *services.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "category_id")
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), sess.UserID, id); err != nil {
			fail(w, err, "delete category", sess.UserID)
			return
		}
		log.Printf("INFO: Deleted category %s for user %s", id, sess.UserID)
		w.WriteHeader(http.StatusNoContent)
	}
}
