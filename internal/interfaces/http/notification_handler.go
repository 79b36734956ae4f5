package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/backend/internal/application/dto"
	"github.com/farmastock/backend/internal/application/usecase"
)

// NotificationHandler maneja las peticiones HTTP de avisos a sucursales.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Listar avisos
// @Tags         notifications
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal"
// @Param        limit      query  int     false  "Límite"   default(50)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	notifications, err := h.uc.List(c.Context(), c.Query("branch_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			BranchID:  n.BranchID,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar aviso como leído
// @Tags         notifications
// @Produce      json
// @Param        id  path  string  true  "ID del aviso"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "aviso marcado como leído"})
}
