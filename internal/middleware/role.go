package middleware // middleware provides shared request processing for handlers

import (
    "fmt"      // fmt builds the 403 message naming the allowed roles
    "net/http" // http package defines standard HTTP status codes
    "strings"  // strings joins role names for the error message

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/himanshu1091/store-rating-api/internal/model" // role enumeration
)

// RequireRole returns a middleware function that enforces that the
// authenticated caller holds one of the specified roles.  It reads the
// typed Identity attached by JWTAuth; when no identity is present (the
// token check has not run or did not succeed) the request is answered
// with 401 instead of panicking on missing context state.  When the
// caller's role is not in the allowed set, the request is rejected with
// 403 and a message naming the permitted roles.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
    // Build a set of allowed roles for constant-time lookups, plus the
    // rendered role list reused in every rejection message.
    allowed := make(map[model.Role]bool, len(roles))
    names := make([]string, 0, len(roles))
    for _, r := range roles {
        allowed[r] = true
        names = append(names, r.String())
    }
    denied := fmt.Sprintf("access denied: only [%s] allowed", strings.Join(names, ", "))

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            id, ok := CurrentIdentity(c)
            if !ok {
                // No verified token on this request: authentication, not
                // authorization, is what failed.
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
            }
            if !allowed[id.Role] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": denied})
            }
            // Otherwise call the next handler in the chain
            return next(c)
        }
    }
}
