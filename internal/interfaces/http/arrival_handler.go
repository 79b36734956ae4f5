package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/backend/internal/application/dto"
	"github.com/farmastock/backend/internal/application/inventory"
	"github.com/farmastock/backend/internal/domain/entity"
)

// ArrivalHandler maneja las peticiones HTTP de recepciones de proveedor.
type ArrivalHandler struct {
	uc *inventory.ArrivalUseCase
}

// NewArrivalHandler construye el handler.
func NewArrivalHandler(uc *inventory.ArrivalUseCase) *ArrivalHandler {
	return &ArrivalHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar lote de recepciones en bodega central
// @Tags         arrivals
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchArrivalRequest  true  "Líneas de recepción"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/arrivals [post]
func (h *ArrivalHandler) Create(c *fiber.Ctx) error {
	var in dto.BatchArrivalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]inventory.ArrivalLineInput, 0, len(in.Arrivals))
	for _, a := range in.Arrivals {
		lines = append(lines, inventory.ArrivalLineInput{
			Kind:          a.Kind,
			ItemID:        a.ItemID,
			ItemName:      a.ItemName,
			Quantity:      a.Quantity,
			PurchasePrice: a.PurchasePrice,
			SellPrice:     a.SellPrice,
		})
	}
	if err := h.uc.Execute(c.Context(), lines); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "recepciones registradas"})
}

// List godoc
// @Summary      Listar recepciones
// @Tags         arrivals
// @Produce      json
// @Param        kind    query  string  false  "medicine o medical_device"
// @Param        limit   query  int     false  "Límite"   default(50)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.ArrivalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/arrivals [get]
func (h *ArrivalHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	movements, err := h.uc.List(c.Context(), c.Query("kind"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ArrivalResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toArrivalResponse(m))
	}
	return c.JSON(out)
}

func toArrivalResponse(m *entity.Movement) dto.ArrivalResponse {
	return dto.ArrivalResponse{
		ID:            m.ID,
		Kind:          m.ItemKind,
		ItemID:        m.ItemID,
		ItemName:      m.ItemName,
		Quantity:      m.Quantity,
		PurchasePrice: m.PurchasePrice,
		SellPrice:     m.SellPrice,
		Date:          m.CreatedAt,
	}
}
