package router

import (
	"github.com/labstack/echo/v4"

	"github.com/himanshu1091/store-rating-api/internal/handler"
	"github.com/himanshu1091/store-rating-api/internal/middleware"
	"github.com/himanshu1091/store-rating-api/internal/model"
)

// RegisterUsers wires the user management endpoints under /api/users.
// Listing every account is admin-only; the password change is open to any
// authenticated caller.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, jwtSecret string) {
	g := e.Group("/api/users")

	g.GET("/all", u.ListAll,
		authenticated(jwtSecret),
		middleware.RequireRole(model.RoleAdmin))

	g.PUT("/:id/password", u.ChangePassword, authenticated(jwtSecret))
}
