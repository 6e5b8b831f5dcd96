package handler

import (
	"context"
	"database/sql"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/himanshu1091/store-rating-api/internal/middleware"
	"github.com/himanshu1091/store-rating-api/internal/queue"
	"github.com/himanshu1091/store-rating-api/internal/repository"
	queue_publisher "github.com/himanshu1091/store-rating-api/internal/service"
)

// RatingHandler bundles dependencies for rating submission and the
// aggregation endpoints.
type RatingHandler struct {
	Ratings *repository.RatingRepo
	// PublishEvent emits a rating.submitted event after a successful
	// upsert. Overridable in tests; defaults to the RabbitMQ publisher.
	PublishEvent func(ctx context.Context, ev queue.RatingSubmittedEvent) error
}

func NewRatingHandler(r *repository.RatingRepo) *RatingHandler {
	if r == nil {
		panic("nil repository passed to NewRatingHandler")
	}
	return &RatingHandler{Ratings: r, PublishEvent: queue_publisher.PublishRatingSubmitted}
}

type submitRatingReq struct {
	StoreID uint64 `json:"storeId" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

// Submit handles POST /api/ratings/submit. The repository upsert keeps one
// row per (user, store): a resubmission overwrites the previous score. The
// domain event is published best-effort after the write; a broker outage
// never fails the request.
func (h *RatingHandler) Submit(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req submitRatingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Ratings.Upsert(ctx, id.UserID, req.StoreID, uint8(req.Rating)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error submitting rating"})
	}

	ev := queue.RatingSubmittedEvent{
		UserID:      id.UserID,
		StoreID:     req.StoreID,
		Rating:      uint8(req.Rating),
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = h.PublishEvent(context.Background(), ev) }()

	return c.JSON(http.StatusOK, echo.Map{"message": "rating submitted successfully"})
}

// ListByStore handles GET /api/ratings/store/:id.
func (h *RatingHandler) ListByStore(c echo.Context) error {
	storeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ratings, err := h.Ratings.ListByStore(ctx, storeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching ratings"})
	}
	return c.JSON(http.StatusOK, ratings)
}

// ListByUser handles GET /api/ratings/user/:id.
func (h *RatingHandler) ListByUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ratings, err := h.Ratings.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching ratings"})
	}
	return c.JSON(http.StatusOK, ratings)
}

// MyRating handles GET /api/ratings/my/:storeId and returns the caller's
// own rating of the store, or an empty object when none exists.
func (h *RatingHandler) MyRating(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	storeID, err := strconv.ParseUint(c.Param("storeId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rating, err := h.Ratings.ForUserAndStore(ctx, id.UserID, storeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusOK, echo.Map{})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching your rating"})
	}
	return c.JSON(http.StatusOK, rating)
}

// Average handles GET /api/ratings/average/:storeId. The mean is rounded
// to two decimals for display; a store without ratings answers null, not 0.
func (h *RatingHandler) Average(c echo.Context) error {
	storeID, err := strconv.ParseUint(c.Param("storeId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	avg, err := h.Ratings.AverageForStore(ctx, storeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error calculating average rating"})
	}
	if avg == nil {
		return c.JSON(http.StatusOK, echo.Map{"averageRating": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{"averageRating": round2(*avg)})
}

// Roster handles GET /api/ratings/store/:id/details (owner/admin) and
// returns who rated the store with which score.
func (h *RatingHandler) Roster(c echo.Context) error {
	storeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	roster, err := h.Ratings.RosterForStore(ctx, storeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching rating details"})
	}
	return c.JSON(http.StatusOK, roster)
}

// OwnerAverage handles GET /api/ratings/owner/average. The aggregate is a
// mean of per-store means across the caller's stores; averageRating is null
// when none of them has a rating yet.
func (h *RatingHandler) OwnerAverage(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	avg, rated, err := h.Ratings.OwnerAverage(ctx, id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error calculating owner average"})
	}
	if avg == nil {
		return c.JSON(http.StatusOK, echo.Map{"averageRating": nil, "ratedStores": 0})
	}
	return c.JSON(http.StatusOK, echo.Map{"averageRating": round2(*avg), "ratedStores": rated})
}

// round2 rounds a mean to two decimal places for display. Raw values keep
// full precision inside the database.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
