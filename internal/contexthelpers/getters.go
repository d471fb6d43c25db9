package contexthelpers

import (
	"context"
)

func IsAuthenticated(ctx context.Context) bool {
	isAuthenticated, ok := ctx.Value(IsAuthenticatedContextKey).(bool)
	if !ok {
		return false
	}

	return isAuthenticated
}

// AuthenticatedUserID returns the signed-in user's id or the empty string.
func AuthenticatedUserID(ctx context.Context) string {
	userID, ok := ctx.Value(AuthenticatedUserIDContextKey).(string)
	if !ok {
		return ""
	}

	return userID
}

// SubscriptionStatus returns the subscription status resolved for the
// request, e.g. "active" or "trialing". Empty when no profile exists yet.
func SubscriptionStatus(ctx context.Context) string {
	status, ok := ctx.Value(SubscriptionStatusContextKey).(string)
	if !ok {
		return ""
	}

	return status
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(CurrentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}
