package main

import (
	"net/http"

	"github.com/dunr-app/dunr/internal/contexthelpers"
	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/profile"
)

func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	prof, err := app.profiles.Get(r.Context(), userID)
	if errors.Is(err, profile.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "load profile"))
		return
	}

	app.writeJSON(w, r, http.StatusOK, prof)
}

// profilePUT stores the questionnaire. The subscription status is managed by
// the payment flow, not the client, so whatever the request carries is
// replaced with the stored value.
func (app *application) profilePUT(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	var p profile.Profile
	if !app.decodeJSON(w, r, &p) {
		return
	}

	if fields := p.FieldErrors(); len(fields) > 0 {
		app.validationError(w, r, fields)
		return
	}

	p.Subscription = profile.SubscriptionTrialing
	existing, err := app.profiles.Get(r.Context(), userID)
	if err == nil {
		p.Subscription = existing.Subscription
	} else if !errors.Is(err, profile.ErrNotFound) {
		app.serverError(w, r, errors.Wrap(err, "load profile"))
		return
	}

	if err := app.profiles.Set(r.Context(), userID, p); err != nil {
		app.serverError(w, r, errors.Wrap(err, "store profile"))
		return
	}

	app.writeJSON(w, r, http.StatusOK, p)
}
