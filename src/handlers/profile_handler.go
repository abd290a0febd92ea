package handlers

import (
	"log"
	"net/http"

	"caudal-server/src/services"
)

func GetProfile(svc *services.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		profile, err := svc.Get(r.Context(), sess)
		if err != nil {
			fail(w, err, "get profile", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func UpdateProfile(svc *services.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		var req services.ProfileInput
		if !decode(w, r, &req, "update profile", sess.UserID) {
			return
		}
		profile, err := svc.Update(r.Context(), sess, req)
		if err != nil {
			fail(w, err, "update profile", sess.UserID)
			return
		}
		log.Printf("INFO: Updated profile for user %s", sess.UserID)
		writeJSON(w, http.StatusOK, profile)
	}
}

func CompleteOnboarding(svc *services.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		profile, err := svc.CompleteOnboarding(r.Context(), sess)
		if err != nil {
			fail(w, err, "complete onboarding", sess.UserID)
			return
		}
		log.Printf("INFO: User %s completed onboarding", sess.UserID)
		writeJSON(w, http.StatusOK, profile)
	}
}

func GetProfileStats(svc *services.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		stats, err := svc.Stats(r.Context(), sess.UserID)
		if err != nil {
			fail(w, err, "count profile stats", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
