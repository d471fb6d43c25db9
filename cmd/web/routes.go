package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(next))))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.authenticate(shared(next)))))
		}
		mustSession = func(next http.Handler) http.Handler {
			return session(app.mustAuthenticate(next))
		}
		mustSubscribed = func(next http.Handler) http.Handler {
			return mustSession(app.requireSubscription(next))
		}
	)

	mux.Handle("POST /api/auth/login", session(http.HandlerFunc(app.loginPOST)))
	mux.Handle("POST /api/auth/logout", session(http.HandlerFunc(app.logoutPOST)))

	mux.Handle("GET /api/profile", mustSession(http.HandlerFunc(app.profileGET)))
	mux.Handle("POST /api/profile", mustSession(http.HandlerFunc(app.profilePUT)))
	mux.Handle("PUT /api/profile", mustSession(http.HandlerFunc(app.profilePUT)))

	mux.Handle("GET /api/dashboard", mustSubscribed(http.HandlerFunc(app.dashboardGET)))

	mux.Handle("GET /api/calendar/week", mustSubscribed(http.HandlerFunc(app.calendarWeekGET)))
	mux.Handle("GET /api/calendar/month", mustSubscribed(http.HandlerFunc(app.calendarMonthGET)))

	mux.Handle("GET /api/sessions", mustSubscribed(http.HandlerFunc(app.sessionListGET)))
	mux.Handle("GET /api/sessions/{id}", mustSubscribed(http.HandlerFunc(app.sessionGET)))
	mux.Handle("POST /api/sessions/{id}/complete", mustSubscribed(http.HandlerFunc(app.sessionCompletePOST)))
	mux.Handle("PUT /api/sessions/{id}/details", mustSubscribed(http.HandlerFunc(app.sessionDetailsPUT)))
	mux.Handle("POST /api/sessions/{id}/move", mustSubscribed(http.HandlerFunc(app.sessionMovePOST)))

	mux.Handle("POST /api/plan/generate", mustSubscribed(http.HandlerFunc(app.planGeneratePOST)))
	mux.Handle("GET /api/plan/status", mustSubscribed(http.HandlerFunc(app.planStatusGET)))
	mux.Handle("DELETE /api/plan", mustSubscribed(http.HandlerFunc(app.planDELETE)))

	mux.Handle("GET /api/export/csv", mustSubscribed(http.HandlerFunc(app.exportCSVGET)))
	mux.Handle("GET /api/export/ical", mustSubscribed(http.HandlerFunc(app.exportICalGET)))

	mux.Handle("GET /api/races", session(http.HandlerFunc(app.raceListGET)))
	mux.Handle("GET /api/races/{id}", session(http.HandlerFunc(app.raceGET)))

	mux.Handle("GET /api/healthy", session(http.HandlerFunc(app.healthy)))

	return mux
}
