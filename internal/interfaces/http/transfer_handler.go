package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/backend/internal/application/dto"
	"github.com/farmastock/backend/internal/application/inventory"
	"github.com/farmastock/backend/internal/domain/entity"
)

// TransferHandler maneja las peticiones HTTP de traslados bodega central -> sucursal.
type TransferHandler struct {
	uc *inventory.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *inventory.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar lote de traslados a sucursales
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchTransferRequest  true  "Líneas de traslado"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.BatchTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]inventory.TransferLineInput, 0, len(in.Transfers))
	for _, t := range in.Transfers {
		lines = append(lines, inventory.TransferLineInput{
			ItemID:       t.ItemID,
			ItemName:     t.ItemName,
			Quantity:     t.Quantity,
			FromBranchID: t.FromBranchID,
			ToBranchID:   t.ToBranchID,
		})
	}
	if err := h.uc.Execute(c.Context(), lines); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "traslados registrados"})
}

// List godoc
// @Summary      Listar traslados
// @Tags         transfers
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal destino"
// @Param        limit      query  int     false  "Límite"   default(50)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	movements, err := h.uc.List(c.Context(), c.Query("branch_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toTransferResponse(m))
	}
	return c.JSON(out)
}

func toTransferResponse(m *entity.Movement) dto.TransferResponse {
	return dto.TransferResponse{
		ID:           m.ID,
		ItemID:       m.ItemID,
		ItemName:     m.ItemName,
		Quantity:     m.Quantity,
		FromBranchID: m.FromBranchID,
		ToBranchID:   m.ToBranchID,
		Date:         m.CreatedAt,
	}
}
