package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/backend/internal/application/dto"
	"github.com/farmastock/backend/internal/application/inventory"
	"github.com/farmastock/backend/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP de catálogo y consulta de stock.
type StockHandler struct {
	uc *inventory.CatalogUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.CatalogUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create godoc
// @Summary      Crear artículo de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(c.Context(), inventory.CreateItemInput{
		Name:          in.Name,
		Kind:          in.Kind,
		CategoryID:    in.CategoryID,
		PurchasePrice: in.PurchasePrice,
		SellPrice:     in.SellPrice,
		Quantity:      in.Quantity,
		BranchID:      in.BranchID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockItemResponse(item))
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockItemResponse(item))
}

// List godoc
// @Summary      Listar stock de una ubicación
// @Tags         stock
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal (vacío = bodega central)"
// @Param        kind       query  string  false  "medicine o medical_device"
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListStock(c.Context(), c.Query("branch_id"), c.Query("kind"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toStockItemResponse(item))
	}
	return c.JSON(out)
}

func toStockItemResponse(item *entity.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Kind:          item.Kind,
		CategoryID:    item.CategoryID,
		PurchasePrice: item.PurchasePrice,
		SellPrice:     item.SellPrice,
		Quantity:      item.Quantity,
		BranchID:      item.BranchID,
		UpdatedAt:     item.UpdatedAt,
	}
}
