package router

import (
	"github.com/labstack/echo/v4"

	"github.com/himanshu1091/store-rating-api/internal/handler"
	"github.com/himanshu1091/store-rating-api/internal/middleware"
	"github.com/himanshu1091/store-rating-api/internal/model"
)

// RegisterStores wires the store directory endpoints under /api/stores.
// Browsing is public; "my stores" and creation require a token plus the
// owner or admin role.  The optional cache middleware (nil-safe) fronts the
// public listing.
func RegisterStores(e *echo.Echo, s *handler.StoreHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/stores")

	// Public directory endpoints.
	if cache != nil {
		g.GET("", s.List, cache)
	} else {
		g.GET("", s.List)
	}

	// Stores of the authenticated owner. Registered before the :id route
	// for clarity; echo resolves static segments ahead of parameters
	// either way.
	g.GET("/my", s.My,
		authenticated(jwtSecret),
		middleware.RequireRole(model.RoleOwner, model.RoleAdmin))

	g.GET("/:id", s.Get)

	// Store creation: owners create for themselves, admins for anyone.
	g.POST("/create", s.Create,
		authenticated(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleOwner))
}
