package contexthelpers

type contextKey string

const IsAuthenticatedContextKey = contextKey("isAuthenticated")
const AuthenticatedUserIDContextKey = contextKey("authenticatedUserID")
const SubscriptionStatusContextKey = contextKey("subscriptionStatus")
const CurrentPathContextKey = contextKey("currentPath")
