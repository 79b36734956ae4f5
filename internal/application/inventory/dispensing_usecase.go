package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/farmastock/backend/internal/domain"
	"github.com/farmastock/backend/internal/domain/entity"
	"github.com/farmastock/backend/internal/domain/repository"
)

// DispensingUseCase registra la entrega de medicamentos e insumos a un paciente,
// descontando del stock de la sucursal. El lote completo se aplica o se revierte.
type DispensingUseCase struct {
	txRunner     TxRunner
	patientRepo  repository.PatientRepository
	employeeRepo repository.EmployeeRepository
	dispRepo     repository.DispensingRepository // listados fuera de transacción
	movRepo      repository.MovementRepository
}

// NewDispensingUseCase construye el caso de uso.
func NewDispensingUseCase(
	txRunner TxRunner,
	patientRepo repository.PatientRepository,
	employeeRepo repository.EmployeeRepository,
	dispRepo repository.DispensingRepository,
	movRepo repository.MovementRepository,
) *DispensingUseCase {
	return &DispensingUseCase{
		txRunner:     txRunner,
		patientRepo:  patientRepo,
		employeeRepo: employeeRepo,
		dispRepo:     dispRepo,
		movRepo:      movRepo,
	}
}

// DispensingLineInput una línea entregada.
type DispensingLineInput struct {
	Kind     string // medicine, medical_device
	ItemID   string
	ItemName string
	Quantity int64
}

// DispensingInput entrega completa a un paciente en una sucursal.
type DispensingInput struct {
	PatientID  string
	EmployeeID string
	BranchID   string
	Items      []DispensingLineInput
}

// Execute resuelve paciente y empleado (para las instantáneas de nombre), crea el
// registro de entrega y descuenta cada línea del stock de la sucursal dentro de una
// sola transacción. Una línea sin stock suficiente (o inexistente en la sucursal)
// revierte la entrega completa.
func (uc *DispensingUseCase) Execute(ctx context.Context, input DispensingInput) (*entity.DispensingRecord, error) {
	if input.PatientID == "" || input.EmployeeID == "" || input.BranchID == "" {
		return nil, fmt.Errorf("%w: patient_id, employee_id y branch_id son obligatorios", domain.ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: entrega sin líneas", domain.ErrInvalidInput)
	}
	for _, line := range input.Items {
		if line.ItemID == "" || line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea de entrega inválida (%s)", domain.ErrInvalidInput, line.ItemName)
		}
	}

	patient, err := uc.patientRepo.GetByID(input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, fmt.Errorf("%w: paciente %s", domain.ErrNotFound, input.PatientID)
	}
	employee, err := uc.employeeRepo.GetByID(input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: empleado %s", domain.ErrNotFound, input.EmployeeID)
	}

	now := time.Now()
	record := &entity.DispensingRecord{
		ID:           uuid.New().String(),
		PatientID:    patient.ID,
		PatientName:  patient.FullName(),
		EmployeeID:   employee.ID,
		EmployeeName: employee.FullName(),
		BranchID:     input.BranchID,
		Date:         now,
	}

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		movRepo repository.MovementRepository,
		_ repository.ShipmentRepository,
		dispRepo repository.DispensingRepository,
	) error {
		if err := dispRepo.Create(record); err != nil {
			return err
		}
		for _, line := range input.Items {
			item, err := stockRepo.GetAtBranchForUpdate(line.ItemID, input.BranchID)
			if err != nil {
				return err
			}
			if item == nil || item.Quantity < line.Quantity {
				return fmt.Errorf("%w: %s en la sucursal", domain.ErrInsufficientStock, line.ItemName)
			}
			if _, err := stockRepo.AdjustQuantity(item.ID, -line.Quantity); err != nil {
				return fmt.Errorf("%s: %w", item.Name, err)
			}
			mov := &entity.Movement{
				ID:        uuid.New().String(),
				Kind:      entity.MovementKindDispensing,
				ItemKind:  item.Kind,
				ItemID:    item.ID,
				ItemName:  item.Name,
				Quantity:  line.Quantity,
				RecordID:  record.ID,
				CreatedAt: now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// List devuelve los registros de entrega con sus líneas, opcionalmente por sucursal.
func (uc *DispensingUseCase) List(ctx context.Context, branchID string, limit, offset int) ([]*entity.DispensingRecord, map[string][]*entity.Movement, error) {
	records, err := uc.dispRepo.ListByBranch(branchID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	items := make(map[string][]*entity.Movement, len(records))
	for _, r := range records {
		lines, err := uc.movRepo.ListByRecord(r.ID)
		if err != nil {
			return nil, nil, err
		}
		items[r.ID] = lines
	}
	return records, items, nil
}
