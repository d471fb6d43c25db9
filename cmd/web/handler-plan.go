package main

import (
	"net/http"

	"github.com/dunr-app/dunr/internal/contexthelpers"
	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/plan"
	"github.com/dunr-app/dunr/internal/plangen"
	"github.com/dunr-app/dunr/internal/profile"
)

func (app *application) planGeneratePOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	err := app.planService.Trigger(r.Context(), userID)
	switch {
	case errors.Is(err, plangen.ErrGenerationInProgress):
		app.errorResponse(w, r, http.StatusConflict, "plan generation already in progress")
		return
	case errors.Is(err, profile.ErrNotFound):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, "complete your profile before generating a plan")
		return
	case err != nil:
		app.serverError(w, r, errors.Wrap(err, "trigger plan generation"))
		return
	}

	app.writeJSON(w, r, http.StatusAccepted, app.planService.Status(userID))
}

// planDELETE discards the active plan and its sessions so the rider can
// start over from the questionnaire.
func (app *application) planDELETE(w http.ResponseWriter, r *http.Request) {
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

	if err = app.plans.DeletePlan(r.Context(), userID, active.ID); err != nil {
		app.serverError(w, r, errors.Wrap(err, "delete plan"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// planStatusGET reports generation progress. Delivering a terminal state
// acknowledges the job so the next generation starts from idle.
func (app *application) planStatusGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	status := app.planService.Status(userID)
	if status.State == plangen.StateSucceeded || status.State == plangen.StateFailed {
		app.planService.Acknowledge(userID)
	}

	app.writeJSON(w, r, http.StatusOK, status)
}
