package handlers

import (
	"net/http"

	"caudal-server/src/services"
)

func GetReport(svc *services.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		months, err := intQuery(r, "months")
		if err != nil {
			http.Error(w, "invalid months", http.StatusBadRequest)
			return
		}
		report, err := svc.Report(r.Context(), sess.UserID, months)
		if err != nil {
			fail(w, err, "build report", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func GetCalendar(svc *services.ReportService) http.HandlerFunc {
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
		cal, err := svc.Calendar(r.Context(), sess.UserID, month)
		if err != nil {
			fail(w, err, "build calendar", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, cal)
	}
}

func GetDashboard(svc *services.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		dashboard, err := svc.Dashboard(r.Context(), sess.UserID)
		if err != nil {
			fail(w, err, "build dashboard", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, dashboard)
	}
}

func GetNotifications(svc *services.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFrom(w, r)
		if !ok {
			return
		}
		alerts, err := svc.Alerts(r.Context(), sess.UserID)
		if err != nil {
			fail(w, err, "evaluate alerts", sess.UserID)
			return
		}
		writeJSON(w, http.StatusOK, alerts)
	}
}
