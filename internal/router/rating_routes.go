package router

import (
	"github.com/labstack/echo/v4"

	"github.com/himanshu1091/store-rating-api/internal/handler"
	"github.com/himanshu1091/store-rating-api/internal/middleware"
	"github.com/himanshu1091/store-rating-api/internal/model"
)

// RegisterRatings wires the rating endpoints under /api/ratings.
// Submission requires any authenticated account; the per-store roster is
// restricted to owners and admins; raw lists and the average are public.
func RegisterRatings(e *echo.Echo, r *handler.RatingHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/ratings")

	// Submit or overwrite the caller's rating of a store.
	g.POST("/submit", r.Submit, authenticated(jwtSecret))

	// Public rating feeds.
	g.GET("/store/:id", r.ListByStore)
	g.GET("/user/:id", r.ListByUser)
	if cache != nil {
		g.GET("/average/:storeId", r.Average, cache)
	} else {
		g.GET("/average/:storeId", r.Average)
	}

	// The caller's own rating of one store.
	g.GET("/my/:storeId", r.MyRating, authenticated(jwtSecret))

	// Roster with rater identities, for store owners and admins.
	g.GET("/store/:id/details", r.Roster,
		authenticated(jwtSecret),
		middleware.RequireRole(model.RoleOwner, model.RoleAdmin))

	// Mean of per-store means across the caller's stores.
	g.GET("/owner/average", r.OwnerAverage,
		authenticated(jwtSecret),
		middleware.RequireRole(model.RoleOwner, model.RoleAdmin))
}
