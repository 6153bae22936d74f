package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/safe-rescue/api-notificaciones/internal/domain"
)

// NotificacionService defines the business operations consumed by
// NotificacionHandler.
type NotificacionService interface {
	Create(ctx context.Context, n *domain.Notificacion) (*domain.Notificacion, error)
	GetAll(ctx context.Context) ([]domain.Notificacion, error)
	GetByID(ctx context.Context, id int) (*domain.Notificacion, error)
	Update(ctx context.Context, id int, patch domain.NotificacionPatch) (*domain.Notificacion, error)
	Delete(ctx context.Context, id int) error
}

// NotificacionHandler handles the notification endpoints.
type NotificacionHandler struct {
	svc NotificacionService
}

// NewNotificacionHandler creates a new NotificacionHandler.
func NewNotificacionHandler(svc NotificacionService) *NotificacionHandler {
	return &NotificacionHandler{svc: svc}
}

// Register mounts the notification routes on g. PATCH is the canonical
// partial-update verb; PUT is kept as an alias with identical semantics.
func (h *NotificacionHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PATCH("/:id", h.Update)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type createNotificacionRequest struct {
	EmitterID *int   `json:"emitterId" validate:"required"`
	Title     string `json:"title" validate:"required,notblank,max=50"`
	Body      string `json:"body" validate:"required,notblank,max=500"`
	Receivers []int  `json:"receivers" validate:"required,min=1"`
}

// Create handles POST /. The id, creation timestamp and active flag in the
// request body, if any, are discarded.
func (h *NotificacionHandler) Create(c echo.Context) error {
	var req createNotificacionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.svc.Create(c.Request().Context(), &domain.Notificacion{
		EmitterID: *req.EmitterID,
		Title:     req.Title,
		Body:      req.Body,
		Receivers: req.Receivers,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// List handles GET /.
func (h *NotificacionHandler) List(c echo.Context) error {
	notifications, err := h.svc.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

// GetByID handles GET /:id. An unknown id answers 404 with an empty body.
func (h *NotificacionHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	n, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return c.JSON(http.StatusOK, n)
}

// Update handles PATCH /:id and PUT /:id as partial updates. Structural
// validation happens in the service because any subset of fields may be
// omitted from the patch.
func (h *NotificacionHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var patch domain.NotificacionPatch
	if err := c.Bind(&patch); err != nil {
		return err
	}

	updated, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /:id.
func (h *NotificacionHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, &domain.InvalidArgumentError{Message: "El ID de la notificación debe ser un número entero"}
	}
	return id, nil
}
