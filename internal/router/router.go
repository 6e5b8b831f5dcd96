package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/himanshu1091/store-rating-api/internal/handler"    // import the handlers that implement business logic
	"github.com/himanshu1091/store-rating-api/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the registration and login endpoints.  Both are
// unauthenticated: registration creates the account and login exchanges
// credentials for a session token.  All protected endpoints elsewhere
// verify that token through middleware.JWTAuth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	// Registration and login live directly under /api, mirroring the
	// public API contract.
	g := e.Group("/api")
	// Register a POST endpoint to handle user registration at /api/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /api/login.
	g.POST("/login", a.Login)
}

// authenticated builds the middleware chain shared by protected routes:
// token verification first, then optional role enforcement.  Keeping the
// chain in one helper guarantees RequireRole never runs without a verified
// identity in front of it.
func authenticated(jwtSecret string) echo.MiddlewareFunc {
	return middleware.JWTAuth(jwtSecret)
}
