package main

import (
	"net/http"
	"time"

	"github.com/dunr-app/dunr/internal/contexthelpers"
	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/plan"
	"github.com/dunr-app/dunr/internal/races"
)

type dashboardResponse struct {
	Plan       plan.Plan  `json:"plan"`
	Stats      plan.Stats `json:"stats"`
	Race       races.Race `json:"race"`
	DaysToRace int        `json:"daysToRace"`
}

func (app *application) dashboardGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	active, err := app.plans.ActivePlan(r.Context(), userID)
	if errors.Is(err, plan.ErrNoActivePlan) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "load active plan"))
		return
	}

	sessions, err := app.plans.ListSessions(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "list sessions"))
		return
	}

	prof, err := app.profiles.Get(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "load profile"))
		return
	}

	today := plan.ToDate(time.Now().UTC())
	race := races.ByID(prof.RaceID)
	daysToRace := int(race.StartDate().Sub(today).Hours() / 24)
	if daysToRace < 0 {
		daysToRace = 0
	}

	app.writeJSON(w, r, http.StatusOK, dashboardResponse{
		Plan:       active,
		Stats:      plan.Summarize(sessions, today),
		Race:       race,
		DaysToRace: daysToRace,
	})
}
