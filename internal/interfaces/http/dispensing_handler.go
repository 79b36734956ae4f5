package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/backend/internal/application/dto"
	"github.com/farmastock/backend/internal/application/inventory"
	"github.com/farmastock/backend/internal/domain/entity"
)

// DispensingHandler maneja las peticiones HTTP de entregas a pacientes.
type DispensingHandler struct {
	uc *inventory.DispensingUseCase
}

// NewDispensingHandler construye el handler.
func NewDispensingHandler(uc *inventory.DispensingUseCase) *DispensingHandler {
	return &DispensingHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar entrega a paciente
// @Tags         dispensing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDispensingRequest  true  "Paciente, empleado, sucursal y líneas"
// @Success      201   {object}  dto.DispensingRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dispensing [post]
func (h *DispensingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDispensingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := inventory.DispensingInput{
		PatientID:  in.PatientID,
		EmployeeID: in.EmployeeID,
		BranchID:   in.BranchID,
	}
	for _, item := range in.Items {
		input.Items = append(input.Items, inventory.DispensingLineInput{
			Kind:     item.Kind,
			ItemID:   item.ItemID,
			ItemName: item.ItemName,
			Quantity: item.Quantity,
		})
	}
	record, err := h.uc.Execute(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	out := toDispensingResponse(record, nil)
	for _, item := range in.Items {
		out.Items = append(out.Items, dto.DispensingItemResponse{
			Kind:     item.Kind,
			ItemName: item.ItemName,
			Quantity: item.Quantity,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar entregas con sus líneas
// @Tags         dispensing
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal"
// @Param        limit      query  int     false  "Límite"   default(50)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.DispensingRecordResponse
// @Router       /api/dispensing [get]
func (h *DispensingHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	records, lines, err := h.uc.List(c.Context(), c.Query("branch_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DispensingRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toDispensingResponse(rec, lines[rec.ID]))
	}
	return c.JSON(out)
}

func toDispensingResponse(rec *entity.DispensingRecord, lines []*entity.Movement) dto.DispensingRecordResponse {
	out := dto.DispensingRecordResponse{
		ID:           rec.ID,
		PatientID:    rec.PatientID,
		PatientName:  rec.PatientName,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		BranchID:     rec.BranchID,
		Date:         rec.Date,
	}
	for _, m := range lines {
		out.Items = append(out.Items, dto.DispensingItemResponse{
			Kind:     m.ItemKind,
			ItemName: m.ItemName,
			Quantity: m.Quantity,
		})
	}
	return out
}
