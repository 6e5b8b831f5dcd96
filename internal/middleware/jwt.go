package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

    "github.com/himanshu1091/store-rating-api/internal/model" // role enumeration for the identity
)

// JWTAuth returns an Echo middleware that validates a Bearer session token
// and attaches the decoded Identity to the request context.  The provided
// secret must match the one used when issuing tokens.  This middleware
// wraps every protected route so that RequireRole and handlers can obtain
// the caller via CurrentIdentity(c).  It performs no I/O: verification is
// pure computation over the token string.
func JWTAuth(secret string) echo.MiddlewareFunc {
    // The outer function returns a middleware function.  Echo executes this
    // once when registering the middleware.
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        // The returned handler is invoked for each incoming HTTP request.
        return func(c echo.Context) error {
            // Read the Authorization header.  A valid header starts with
            // "Bearer " followed by the JWT.  Anything else is answered
            // with 401 Unauthorized.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            // Remove the "Bearer " prefix to obtain the raw token string.
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse the token, supplying the signing key through the
            // callback.  The signing method is pinned to HMAC so a token
            // signed with a different algorithm is rejected outright.
            // Expiry (exp) is enforced by the library during Parse, so an
            // expired token fails here regardless of signature validity.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            // If parsing failed or the token is invalid, respond with 401.
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
            }

            // Extract the claims into a map for easy access.  If the
            // assertion fails, the claims are not in the expected format.
            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            // Numeric claims decode as float64 from JSON; the subject must
            // be a positive user id.
            sub, ok := claims["sub"].(float64)
            if !ok || sub <= 0 {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }
            // The role claim must parse into the closed Role enumeration.
            // A token minted with an unknown role never reaches a handler.
            roleStr, _ := claims["role"].(string)
            role, ok := model.ParseRole(roleStr)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            // Attach the typed identity for RequireRole and handlers, then
            // call the next handler in the chain.
            SetIdentity(c, Identity{UserID: uint64(sub), Role: role})
            return next(c)
        }
    }
}
