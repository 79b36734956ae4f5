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

// TransferUseCase traslada stock de la bodega central a una sucursal de forma
// transaccional: el lote completo se aplica o se revierte.
type TransferUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository // listados fuera de transacción
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, movRepo repository.MovementRepository) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, movRepo: movRepo}
}

// TransferLineInput una línea del lote. FromBranchID es informativo: si viene vacío
// se registra la etiqueta de la bodega central.
type TransferLineInput struct {
	ItemID       string
	ItemName     string
	Quantity     int64
	FromBranchID string
	ToBranchID   string
}

// Execute aplica un lote de traslados dentro de una sola transacción. Por cada línea:
// bloquea el artículo de catálogo, descuenta de la bodega central (fallando con
// ErrInsufficientStock si la cantidad quedaría negativa), suma o crea la copia en la
// sucursal y escribe el movimiento de historial.
func (uc *TransferUseCase) Execute(ctx context.Context, lines []TransferLineInput) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: lote de traslados vacío", domain.ErrInvalidInput)
	}
	for _, line := range lines {
		if line.ItemID == "" || line.ToBranchID == "" {
			return fmt.Errorf("%w: item_id y to_branch_id son obligatorios", domain.ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: la cantidad debe ser positiva (%s)", domain.ErrInvalidInput, line.ItemName)
		}
	}

	now := time.Now()

	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		movRepo repository.MovementRepository,
		_ repository.ShipmentRepository,
		_ repository.DispensingRepository,
	) error {
		for _, line := range lines {
			catalog, err := stockRepo.GetWarehouseForUpdate(line.ItemID)
			if err != nil {
				return err
			}
			if catalog == nil {
				return fmt.Errorf("%w: artículo %s en bodega central", domain.ErrNotFound, line.ItemName)
			}
			if catalog.Quantity < line.Quantity {
				return fmt.Errorf("%w: %s en bodega central", domain.ErrInsufficientStock, catalog.Name)
			}
			if _, err := stockRepo.AdjustQuantity(catalog.ID, -line.Quantity); err != nil {
				return fmt.Errorf("%s: %w", catalog.Name, err)
			}
			if _, err := stockRepo.UpsertBranchCopy(catalog, line.ToBranchID, line.Quantity); err != nil {
				return err
			}

			from := line.FromBranchID
			if from == "" {
				from = entity.FromWarehouseLabel
			}
			mov := &entity.Movement{
				ID:           uuid.New().String(),
				Kind:         entity.MovementKindTransfer,
				ItemKind:     catalog.Kind,
				ItemID:       catalog.ID,
				ItemName:     catalog.Name,
				Quantity:     line.Quantity,
				FromBranchID: from,
				ToBranchID:   line.ToBranchID,
				CreatedAt:    now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		return nil
	})
}

// List devuelve el historial de traslados, opcionalmente filtrado por sucursal destino.
func (uc *TransferUseCase) List(ctx context.Context, branchID string, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.ListByKind([]string{entity.MovementKindTransfer}, branchID, limit, offset)
}
