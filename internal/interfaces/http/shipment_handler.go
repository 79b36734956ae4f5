package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/backend/internal/application/dto"
	"github.com/farmastock/backend/internal/application/inventory"
	"github.com/farmastock/backend/internal/domain/entity"
)

// ShipmentHandler maneja las peticiones HTTP del ciclo de vida de envíos.
type ShipmentHandler struct {
	uc *inventory.ShipmentUseCase
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(uc *inventory.ShipmentUseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear envío hacia una sucursal
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "Sucursal destino y líneas"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := inventory.CreateShipmentInput{ToBranchID: in.ToBranchID}
	for _, item := range in.Items {
		input.Items = append(input.Items, inventory.ShipmentLineInput{
			Kind:     item.Kind,
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
		})
	}
	shipment, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toShipmentResponse(shipment))
}

// Accept godoc
// @Summary      Aceptar envío (aplica efectos de inventario)
// @Tags         shipments
// @Produce      json
// @Param        id  path  string  true  "ID del envío"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/accept [post]
func (h *ShipmentHandler) Accept(c *fiber.Ctx) error {
	shipment, err := h.uc.Accept(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toShipmentResponse(shipment))
}

// Reject godoc
// @Summary      Rechazar envío
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del envío"
// @Param        body  body  dto.RejectShipmentRequest  true  "Motivo del rechazo"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/reject [post]
func (h *ShipmentHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Reject(c.Context(), c.Params("id"), in.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "envío rechazado"})
}

// OverrideStatus godoc
// @Summary      Sobrescribir estado de un envío (vía administrativa)
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del envío"
// @Param        body  body  dto.OverrideStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/status [put]
func (h *ShipmentHandler) OverrideStatus(c *fiber.Ctx) error {
	var in dto.OverrideStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !entity.ValidShipmentStatus(in.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado inválido"})
	}
	if err := h.uc.OverrideStatus(c.Context(), c.Params("id"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "estado actualizado"})
}

// List godoc
// @Summary      Listar envíos
// @Tags         shipments
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal destino"
// @Param        limit      query  int     false  "Límite"   default(50)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.ShipmentResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	shipments, err := h.uc.List(c.Context(), c.Query("branch_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, toShipmentResponse(s))
	}
	return c.JSON(out)
}

// LastReceipt godoc
// @Summary      Última recepción aceptada de un artículo en una sucursal
// @Tags         shipments
// @Produce      json
// @Param        branch_id  query  string  true  "Sucursal"
// @Param        item_id    query  string  true  "Artículo de catálogo"
// @Success      200  {object}  dto.LastReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/last-receipt [get]
func (h *ShipmentHandler) LastReceipt(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	itemID := c.Query("item_id")
	if branchID == "" || itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id e item_id son requeridos"})
	}
	receipt, err := h.uc.LastReceipt(c.Context(), branchID, itemID)
	if err != nil {
		return respondError(c, err)
	}
	if receipt == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la sucursal no ha recibido el artículo"})
	}
	return c.JSON(dto.LastReceiptResponse{Quantity: receipt.Quantity, Time: receipt.Time})
}

func toShipmentResponse(s *entity.Shipment) dto.ShipmentResponse {
	out := dto.ShipmentResponse{
		ID:              s.ID,
		ToBranchID:      s.ToBranchID,
		Status:          s.Status,
		RejectionReason: s.RejectionReason,
		CreatedAt:       s.CreatedAt,
		AcceptedAt:      s.AcceptedAt,
		Items:           make([]dto.ShipmentItemResponse, 0, len(s.Items)),
	}
	for _, item := range s.Items {
		out.Items = append(out.Items, dto.ShipmentItemResponse{
			Kind:     item.ItemKind,
			ItemID:   item.ItemID,
			ItemName: item.ItemName,
			Quantity: item.Quantity,
		})
	}
	return out
}
