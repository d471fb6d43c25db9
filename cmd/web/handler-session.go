package main

import (
	"bytes"
	"net/http"
	"time"

	"github.com/dunr-app/dunr/internal/contexthelpers"
	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/plan"
	"github.com/dunr-app/dunr/internal/profile"
	"github.com/dunr-app/dunr/internal/races"
)

type sessionResponse struct {
	plan.Session
	DescriptionHTML string `json:"descriptionHTML,omitempty"`
}

func (app *application) sessionListGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	sessions, err := app.plans.ListSessions(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "list sessions"))
		return
	}

	app.writeJSON(w, r, http.StatusOK, map[string]any{"sessions": sessionsOrEmpty(sessions)})
}

func (app *application) sessionGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	s, err := app.plans.GetSession(r.Context(), userID, r.PathValue("id"))
	if errors.Is(err, plan.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "load session"))
		return
	}

	var buf bytes.Buffer
	if err = app.markdown.Convert([]byte(s.Description), &buf); err != nil {
		app.serverError(w, r, errors.Wrap(err, "render description"))
		return
	}

	app.writeJSON(w, r, http.StatusOK, sessionResponse{Session: s, DescriptionHTML: buf.String()})
}

// sessionCompletePOST toggles completion. Completing may carry the logged
// actuals in the request body; un-completing discards them.
func (app *application) sessionCompletePOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	var details plan.CompletionDetails
	if r.ContentLength != 0 {
		if !app.decodeJSON(w, r, &details) {
			return
		}
	}

	var detailsErr error
	s, err := app.plans.UpdateSession(r.Context(), userID, r.PathValue("id"), func(s *plan.Session) (bool, error) {
		plan.ToggleCompletion(s)
		if s.Completed {
			if detailsErr = plan.UpdateCompletedDetails(s, details); detailsErr != nil {
				return false, detailsErr
			}
		}
		return true, nil
	})
	app.respondUpdatedSession(w, r, s, err, detailsErr)
}

// sessionDetailsPUT corrects the logged actuals of an already completed
// session.
func (app *application) sessionDetailsPUT(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	var details plan.CompletionDetails
	if !app.decodeJSON(w, r, &details) {
		return
	}

	var detailsErr error
	s, err := app.plans.UpdateSession(r.Context(), userID, r.PathValue("id"), func(s *plan.Session) (bool, error) {
		if detailsErr = plan.UpdateCompletedDetails(s, details); detailsErr != nil {
			return false, detailsErr
		}
		return true, nil
	})
	app.respondUpdatedSession(w, r, s, err, detailsErr)
}

type moveRequest struct {
	Date string `json:"date"`
}

func (app *application) sessionMovePOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	var req moveRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}
	to, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		app.errorResponse(w, r, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	// Sessions never reach the race date, on generation or on reschedule.
	prof, err := app.profiles.Get(r.Context(), userID)
	if errors.Is(err, profile.ErrNotFound) {
		// No profile means no plan, so nothing to move.
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "load profile"))
		return
	}
	if !plan.ToDate(to).Before(races.ByID(prof.RaceID).StartDate()) {
		app.errorResponse(w, r, http.StatusUnprocessableEntity, "cannot move a session onto or past the race date")
		return
	}

	s, err := app.plans.UpdateSession(r.Context(), userID, r.PathValue("id"), func(s *plan.Session) (bool, error) {
		plan.MoveSession(s, to)
		return true, nil
	})
	app.respondUpdatedSession(w, r, s, err, nil)
}

// respondUpdatedSession maps an UpdateSession outcome to a response:
// rule violations from the mutation become 422, a missing row 404.
func (app *application) respondUpdatedSession(
	w http.ResponseWriter,
	r *http.Request,
	s plan.Session,
	err, ruleErr error,
) {
	switch {
	case ruleErr != nil:
		app.errorResponse(w, r, http.StatusUnprocessableEntity, ruleErr.Error())
	case errors.Is(err, plan.ErrNotFound):
		app.notFound(w, r)
	case err != nil:
		app.serverError(w, r, errors.Wrap(err, "update session"))
	default:
		app.writeJSON(w, r, http.StatusOK, s)
	}
}
