package middleware

// identity.go defines the typed identity attached to the request context by
// JWTAuth and the accessor used by downstream middleware and handlers.
// Exposing a concrete struct instead of loose "user_id"/"role" context keys
// makes the ordering contract explicit: RequireRole and handlers ask for an
// Identity value, and its absence means no token check has run yet, which
// is answered with 401 rather than a panic on a missing claim.

import (
    "github.com/labstack/echo/v4"

    "github.com/himanshu1091/store-rating-api/internal/model"
)

// identityKey is the context key under which JWTAuth stores the Identity.
const identityKey = "identity"

// Identity carries the authenticated caller's id and role as decoded from
// a verified session token.
type Identity struct {
    UserID uint64     // token subject
    Role   model.Role // token role claim
}

// CurrentIdentity returns the Identity attached by JWTAuth. The second
// return value is false when the request has not passed token verification.
func CurrentIdentity(c echo.Context) (Identity, bool) {
    id, ok := c.Get(identityKey).(Identity)
    return id, ok
}

// SetIdentity stores a verified Identity on the request context.  JWTAuth
// is the only production caller; tests use it to stand in for a completed
// token check.
func SetIdentity(c echo.Context, id Identity) {
    c.Set(identityKey, id)
}
