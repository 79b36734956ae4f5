package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/farmastock/backend/internal/domain"
	"github.com/farmastock/backend/internal/domain/entity"
	"github.com/farmastock/backend/internal/domain/repository"
	"github.com/farmastock/backend/pkg/logger"
)

// Títulos del aviso que se emite a la sucursal al crear un envío.
const (
	notificationTitle   = "Nuevo envío"
	notificationMessage = "Reabastecimiento en camino desde la bodega central"
)

// ShipmentUseCase maneja el ciclo de vida de un envío: pending -> accepted | rejected.
// La validación de stock al crear es solo informativa; la de la aceptación es la
// autoritativa y descuenta de la bodega central en la misma transacción que el cambio
// de estado, de modo que los efectos de inventario se aplican exactamente una vez.
type ShipmentUseCase struct {
	txRunner     TxRunner
	branchRepo   repository.BranchRepository
	shipmentRepo repository.ShipmentRepository // lecturas fuera de transacción
	notifRepo    repository.NotificationRepository
	log          *logger.Logger
}

// NewShipmentUseCase construye el caso de uso.
func NewShipmentUseCase(
	txRunner TxRunner,
	branchRepo repository.BranchRepository,
	shipmentRepo repository.ShipmentRepository,
	notifRepo repository.NotificationRepository,
	log *logger.Logger,
) *ShipmentUseCase {
	return &ShipmentUseCase{
		txRunner:     txRunner,
		branchRepo:   branchRepo,
		shipmentRepo: shipmentRepo,
		notifRepo:    notifRepo,
		log:          log,
	}
}

// ShipmentLineInput línea solicitada en un envío.
type ShipmentLineInput struct {
	Kind     string // medicine, medical_device
	ItemID   string
	Quantity int64
}

// CreateShipmentInput solicitud de envío hacia una sucursal.
type CreateShipmentInput struct {
	ToBranchID string
	Items      []ShipmentLineInput
}

// Create valida que la bodega central tenga stock suficiente para cada línea (sin
// descontar nada: nada queda apartado hasta aceptar) y persiste el envío en estado
// pending con las instantáneas de nombre del catálogo. El aviso a la sucursal se
// emite después del commit: si falla, el envío ya quedó creado y solo se deja log.
func (uc *ShipmentUseCase) Create(ctx context.Context, input CreateShipmentInput) (*entity.Shipment, error) {
	if input.ToBranchID == "" {
		return nil, fmt.Errorf("%w: to_branch_id es obligatorio", domain.ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: envío sin líneas", domain.ErrInvalidInput)
	}
	for _, line := range input.Items {
		if !entity.ValidItemKind(line.Kind) {
			return nil, fmt.Errorf("%w: tipo de artículo %q", domain.ErrInvalidInput, line.Kind)
		}
		if line.ItemID == "" || line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea de envío inválida", domain.ErrInvalidInput)
		}
	}

	branch, err := uc.branchRepo.GetByID(input.ToBranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, input.ToBranchID)
	}

	shipment := &entity.Shipment{
		ID:         uuid.New().String(),
		ToBranchID: input.ToBranchID,
		Status:     entity.ShipmentStatusPending,
		CreatedAt:  time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		_ repository.MovementRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.DispensingRepository,
	) error {
		for i, line := range input.Items {
			catalog, err := stockRepo.GetByID(line.ItemID)
			if err != nil {
				return err
			}
			if catalog == nil || !catalog.IsWarehouse() {
				return fmt.Errorf("%w: artículo %s en bodega central", domain.ErrNotFound, line.ItemID)
			}
			if catalog.Kind != line.Kind {
				return fmt.Errorf("%w: %s no es de tipo %s", domain.ErrInvalidInput, catalog.Name, line.Kind)
			}
			// Chequeo informativo: el stock puede moverse antes de la aceptación.
			if catalog.Quantity < line.Quantity {
				return fmt.Errorf("%w: %s en bodega central", domain.ErrInsufficientStock, catalog.Name)
			}
			shipment.Items = append(shipment.Items, entity.ShipmentItem{
				ID:         uuid.New().String(),
				ShipmentID: shipment.ID,
				Position:   i + 1,
				ItemKind:   line.Kind,
				ItemID:     catalog.ID,
				ItemName:   catalog.Name,
				Quantity:   line.Quantity,
			})
		}
		return shipmentRepo.Create(shipment)
	})
	if err != nil {
		return nil, err
	}

	// Aviso fuera de la transacción: un fallo aquí no revierte el envío.
	notif := &entity.Notification{
		ID:        uuid.New().String(),
		BranchID:  shipment.ToBranchID,
		Title:     notificationTitle,
		Message:   notificationMessage,
		CreatedAt: time.Now(),
	}
	if err := uc.notifRepo.Create(notif); err != nil {
		uc.log.Warn().Err(err).
			Str("shipment_id", shipment.ID).
			Str("branch_id", shipment.ToBranchID).
			Msg("no se pudo emitir el aviso del envío")
	}

	return shipment, nil
}

// Accept aplica los efectos de inventario del envío exactamente una vez: bloquea el
// encabezado, exige estado pending (ErrConflict en caso contrario) y, por cada línea,
// revalida y descuenta la bodega central (la verificación autoritativa: el stock pudo
// moverse desde la creación) y suma la copia en la sucursal destino.
// status=accepted y accepted_at se fijan en la misma transacción: un fallo en
// cualquier línea deja el envío en pending sin efecto alguno.
func (uc *ShipmentUseCase) Accept(ctx context.Context, id string) (*entity.Shipment, error) {
	var accepted *entity.Shipment

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		_ repository.MovementRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.DispensingRepository,
	) error {
		shipment, err := shipmentRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if shipment == nil {
			return fmt.Errorf("%w: envío %s", domain.ErrNotFound, id)
		}
		if !shipment.IsPending() {
			return fmt.Errorf("%w: el envío ya fue procesado (%s)", domain.ErrConflict, shipment.Status)
		}

		for _, item := range shipment.Items {
			catalog, err := stockRepo.GetWarehouseForUpdate(item.ItemID)
			if err != nil {
				return err
			}
			if catalog == nil {
				return fmt.Errorf("%w: artículo %s en bodega central", domain.ErrNotFound, item.ItemName)
			}
			if catalog.Quantity < item.Quantity {
				return fmt.Errorf("%w: %s en bodega central", domain.ErrInsufficientStock, item.ItemName)
			}
			if _, err := stockRepo.AdjustQuantity(catalog.ID, -item.Quantity); err != nil {
				return fmt.Errorf("%s: %w", item.ItemName, err)
			}
			if _, err := stockRepo.UpsertBranchCopy(catalog, shipment.ToBranchID, item.Quantity); err != nil {
				return err
			}
		}

		now := time.Now()
		if err := shipmentRepo.MarkAccepted(shipment.ID, now); err != nil {
			return err
		}
		shipment.Status = entity.ShipmentStatusAccepted
		shipment.AcceptedAt = &now
		accepted = shipment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// Reject marca el envío como rechazado con su motivo. No toca el stock: la reserva
// de la creación nunca se materializó, no hay nada que deshacer. Los estados
// terminales no se reabren (ErrConflict).
func (uc *ShipmentUseCase) Reject(ctx context.Context, id, reason string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.StockItemRepository,
		_ repository.MovementRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.DispensingRepository,
	) error {
		shipment, err := shipmentRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if shipment == nil {
			return fmt.Errorf("%w: envío %s", domain.ErrNotFound, id)
		}
		if !shipment.IsPending() {
			return fmt.Errorf("%w: el envío ya fue procesado (%s)", domain.ErrConflict, shipment.Status)
		}
		return shipmentRepo.MarkRejected(id, reason)
	})
}

// OverrideStatus asigna un estado arbitrario sin validar la máquina de estados ni
// tocar el stock. Es una vía de corrección administrativa para envíos atascados;
// cada uso queda en el log.
func (uc *ShipmentUseCase) OverrideStatus(ctx context.Context, id, status string) error {
	shipment, err := uc.shipmentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if shipment == nil {
		return fmt.Errorf("%w: envío %s", domain.ErrNotFound, id)
	}
	if err := uc.shipmentRepo.SetStatus(id, status); err != nil {
		return err
	}
	uc.log.Warn().
		Str("shipment_id", id).
		Str("old_status", shipment.Status).
		Str("new_status", status).
		Msg("estado de envío sobrescrito por vía administrativa")
	return nil
}

// List devuelve envíos con sus líneas, opcionalmente por sucursal destino.
func (uc *ShipmentUseCase) List(ctx context.Context, branchID string, limit, offset int) ([]*entity.Shipment, error) {
	return uc.shipmentRepo.ListByBranch(branchID, limit, offset)
}

// LastReceipt devuelve la última recepción aceptada de un artículo en una sucursal,
// o nil si nunca lo recibió por envío.
func (uc *ShipmentUseCase) LastReceipt(ctx context.Context, branchID, itemID string) (*repository.LastReceipt, error) {
	return uc.shipmentRepo.GetLastReceipt(branchID, itemID)
}
