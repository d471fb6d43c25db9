package contexthelpers

import (
	"context"
	"net/http"
)

// AuthenticateContext marks the request as belonging to the given user.
// Injected at the composition root instead of a module-level singleton so
// tests can authenticate a bare context directly.
func AuthenticateContext(r *http.Request, userID string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, IsAuthenticatedContextKey, true)
	ctx = context.WithValue(ctx, AuthenticatedUserIDContextKey, userID)
	return r.WithContext(ctx)
}

func SetSubscriptionStatus(r *http.Request, status string) *http.Request {
	ctx := context.WithValue(r.Context(), SubscriptionStatusContextKey, status)
	return r.WithContext(ctx)
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	ctx := context.WithValue(r.Context(), CurrentPathContextKey, currentPath)
	return r.WithContext(ctx)
}
