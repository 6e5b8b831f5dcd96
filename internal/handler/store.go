package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/himanshu1091/store-rating-api/internal/middleware"
	"github.com/himanshu1091/store-rating-api/internal/model"
	"github.com/himanshu1091/store-rating-api/internal/repository"
)

// StoreHandler bundles dependencies for the store directory endpoints.
type StoreHandler struct {
	Stores *repository.StoreRepo
}

func NewStoreHandler(s *repository.StoreRepo) *StoreHandler {
	if s == nil {
		panic("nil repository passed to NewStoreHandler")
	}
	return &StoreHandler{Stores: s}
}

type createStoreReq struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	OwnerID uint64 `json:"owner_id"`
}

// List handles GET /api/stores and returns the public store directory.
func (h *StoreHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stores, err := h.Stores.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, stores)
}

// Get handles GET /api/stores/:id.
func (h *StoreHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Stores.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// My handles GET /api/stores/my and lists the stores owned by the
// authenticated owner or admin.
func (h *StoreHandler) My(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stores, err := h.Stores.ListByOwner(ctx, id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, stores)
}

// Create handles POST /api/stores/create. Admins must name the owner the
// store belongs to; owners always create stores for themselves, whatever
// owner_id the request claims.
func (h *StoreHandler) Create(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req createStoreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ownerID := id.UserID
	if id.Role == model.RoleAdmin {
		if req.OwnerID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "owner_id is required for admin"})
		}
		ownerID = req.OwnerID
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := &model.Store{Name: req.Name, Address: req.Address, OwnerID: ownerID}
	if err := h.Stores.Create(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create store"})
	}
	return c.JSON(http.StatusCreated, s)
}
