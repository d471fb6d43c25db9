package main

import (
	"net/http"
	"time"

	"github.com/dunr-app/dunr/internal/calendar"
	"github.com/dunr-app/dunr/internal/contexthelpers"
	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/plan"
)

type calendarDay struct {
	Date       string         `json:"date"`
	OtherMonth bool           `json:"otherMonth,omitempty"`
	Sessions   []plan.Session `json:"sessions"`
}

func (app *application) calendarWeekGET(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateQuery(w, r)
	if !ok {
		return
	}

	buckets, ok := app.loadBuckets(w, r)
	if !ok {
		return
	}

	days := make([]calendarDay, 0, 7)
	for _, d := range calendar.WeekWindow(date) {
		days = append(days, calendarDay{
			Date:     d.Format(time.DateOnly),
			Sessions: sessionsOrEmpty(buckets.On(d)),
		})
	}

	app.writeJSON(w, r, http.StatusOK, map[string]any{"days": days})
}

func (app *application) calendarMonthGET(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateQuery(w, r)
	if !ok {
		return
	}

	buckets, ok := app.loadBuckets(w, r)
	if !ok {
		return
	}

	grid := calendar.MonthGrid(date)
	days := make([]calendarDay, 0, len(grid))
	for _, cell := range grid {
		days = append(days, calendarDay{
			Date:       cell.Date.Format(time.DateOnly),
			OtherMonth: cell.OtherMonth,
			Sessions:   sessionsOrEmpty(buckets.On(cell.Date)),
		})
	}

	app.writeJSON(w, r, http.StatusOK, map[string]any{"days": days})
}

func (app *application) loadBuckets(w http.ResponseWriter, r *http.Request) (*calendar.Buckets, bool) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	sessions, err := app.plans.ListSessions(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "list sessions"))
		return nil, false
	}

	return calendar.Bucket(sessions), true
}

// sessionsOrEmpty keeps empty days as [] instead of null in the JSON output.
func sessionsOrEmpty(sessions []plan.Session) []plan.Session {
	if sessions == nil {
		return []plan.Session{}
	}
	return sessions
}
