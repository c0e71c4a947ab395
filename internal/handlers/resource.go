package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LipezJ/eco-hogar/internal/middleware"
)

// crudService is the part of a domain service the generic handler needs.
type crudService[T any] interface {
	List(ctx context.Context, userID string) ([]T, error)
	Get(ctx context.Context, userID, id string) (*T, error)
	Create(ctx context.Context, userID string, item *T) error
	Update(ctx context.Context, userID, id string, item *T) error
	Delete(ctx context.Context, userID, id string) error
}

// ResourceHandler serves JSON CRUD for one user-scoped resource.
type ResourceHandler[T any] struct {
	svc crudService[T]
}

func NewResourceHandler[T any](svc crudService[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{svc: svc}
}

func (h *ResourceHandler[T]) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ResourceHandler[T]) Get(c echo.Context) error {
	item, err := h.svc.Get(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler[T]) Create(c echo.Context) error {
	item := new(T)
	if err := bindJSON(c, item); err != nil {
		return err
	}
	if err := h.svc.Create(c.Request().Context(), middleware.UserID(c), item); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *ResourceHandler[T]) Update(c echo.Context) error {
	item := new(T)
	if err := bindJSON(c, item); err != nil {
		return err
	}
	if err := h.svc.Update(c.Request().Context(), middleware.UserID(c), c.Param("id"), item); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler[T]) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Register mounts the CRUD routes on g. Extra routes for the resource must
// be added by the caller.
func (h *ResourceHandler[T]) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
