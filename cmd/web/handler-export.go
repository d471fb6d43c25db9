package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dunr-app/dunr/internal/contexthelpers"
	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/export"
	"github.com/dunr-app/dunr/internal/plan"
)

func (app *application) exportCSVGET(w http.ResponseWriter, r *http.Request) {
	sessions, ok := app.exportSessions(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="training-plan.csv"`)
	if err := export.WriteCSV(w, sessions); err != nil {
		// Headers are already out, all we can do is log.
		app.logger.LogAttrs(r.Context(), slog.LevelError, "write csv export", slog.Any("error", err))
	}
}

func (app *application) exportICalGET(w http.ResponseWriter, r *http.Request) {
	sessions, ok := app.exportSessions(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="training-plan.ics"`)
	if err := export.WriteICal(w, sessions, time.Now().UTC()); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "write ical export", slog.Any("error", err))
	}
}

func (app *application) exportSessions(w http.ResponseWriter, r *http.Request) ([]plan.Session, bool) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	sessions, err := app.plans.ListSessions(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "list sessions"))
		return nil, false
	}
	if len(sessions) == 0 {
		app.notFound(w, r)
		return nil, false
	}

	return sessions, true
}
