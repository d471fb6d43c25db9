package main

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dunr-app/dunr/internal/contexthelpers"
	"github.com/dunr-app/dunr/internal/demo"
	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/plan"
	"github.com/dunr-app/dunr/internal/profile"
)

type loginRequest struct {
	Email string `json:"email"`
}

type loginResponse struct {
	UserID    string `json:"userID"`
	Onboarded bool   `json:"onboarded"`
}

// loginPOST exchanges a verified email for a cookie session. Identity
// verification happens upstream; the demo address gets a pre-seeded rider.
func (app *application) loginPOST(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		app.validationError(w, r, map[string]string{"email": "a valid email is required"})
		return
	}

	var (
		userID string
		err    error
	)
	if email == demo.Email {
		userID = demo.UserID
		if err = app.seedDemoUser(r); err != nil {
			app.serverError(w, r, errors.Wrap(err, "seed demo user"))
			return
		}
	} else {
		if userID, err = app.profiles.FindOrCreateUser(r.Context(), email); err != nil {
			app.serverError(w, r, errors.Wrap(err, "find or create user"))
			return
		}
	}

	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "renew session token"))
		return
	}
	app.sessionManager.Put(r.Context(), sessionUserIDKey, userID)

	onboarded := true
	if _, err = app.profiles.Get(r.Context(), userID); err != nil {
		if !errors.Is(err, profile.ErrNotFound) {
			app.serverError(w, r, errors.Wrap(err, "load profile"))
			return
		}
		onboarded = false
	}

	app.logger.LogAttrs(r.Context(), slog.LevelInfo, "user logged in", slog.String("userID", userID))
	app.writeJSON(w, r, http.StatusOK, loginResponse{UserID: userID, Onboarded: onboarded})
}

func (app *application) logoutPOST(w http.ResponseWriter, r *http.Request) {
	if contexthelpers.IsAuthenticated(r.Context()) {
		app.logger.LogAttrs(r.Context(), slog.LevelInfo, "user logged out",
			slog.String("userID", contexthelpers.AuthenticatedUserID(r.Context())))
	}
	if err := app.sessionManager.Destroy(r.Context()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "destroy session"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// seedDemoUser provisions the demo rider on first login: user row, profile
// and a plan restored from the JSON state directory.
func (app *application) seedDemoUser(r *http.Request) error {
	ctx := r.Context()

	if err := app.profiles.EnsureUser(ctx, demo.UserID, demo.Email); err != nil {
		return errors.Wrap(err, "ensure user")
	}

	if _, err := app.profiles.Get(ctx, demo.UserID); errors.Is(err, profile.ErrNotFound) {
		if err = app.profiles.Set(ctx, demo.UserID, demo.Profile()); err != nil {
			return errors.Wrap(err, "set profile")
		}
	} else if err != nil {
		return errors.Wrap(err, "load profile")
	}

	// The demo never dead-ends on the paywall: each login restores an
	// active subscription.
	if err := app.profiles.SetSubscription(ctx, demo.UserID, profile.SubscriptionActive); err != nil {
		return errors.Wrap(err, "set subscription")
	}

	if _, err := app.plans.ActivePlan(ctx, demo.UserID); errors.Is(err, plan.ErrNoActivePlan) {
		p, sessions, err := app.demoStore.Load(ctx)
		if err != nil {
			return errors.Wrap(err, "load demo plan")
		}
		if err = app.plans.CreatePlan(ctx, demo.UserID, p, sessions); err != nil {
			return errors.Wrap(err, "store demo plan")
		}
	} else if err != nil {
		return errors.Wrap(err, "load active plan")
	}

	return nil
}
