package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmastock/backend/internal/domain"
	"github.com/farmastock/backend/internal/domain/entity"
	"github.com/farmastock/backend/internal/domain/repository"
)

// ArrivalUseCase registra recepciones de proveedor en la bodega central: suma la
// cantidad al catálogo, sobreescribe el precio de compra (y el de venta solo si
// viene en la línea) y escribe el movimiento de historial, todo en una transacción.
// Una línea cuyo artículo no existe en el catálogo aborta el lote con ErrNotFound:
// no se escriben recepciones huérfanas sin mutación de stock.
type ArrivalUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
}

// NewArrivalUseCase construye el caso de uso.
func NewArrivalUseCase(txRunner TxRunner, movRepo repository.MovementRepository) *ArrivalUseCase {
	return &ArrivalUseCase{txRunner: txRunner, movRepo: movRepo}
}

// ArrivalLineInput una línea del lote de recepción. SellPrice nil deja intacto el
// precio de venta del catálogo.
type ArrivalLineInput struct {
	Kind          string // medicine, medical_device
	ItemID        string
	ItemName      string
	Quantity      int64
	PurchasePrice decimal.Decimal
	SellPrice     *decimal.Decimal
}

// Execute aplica un lote de recepciones dentro de una sola transacción.
func (uc *ArrivalUseCase) Execute(ctx context.Context, lines []ArrivalLineInput) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: lote de recepciones vacío", domain.ErrInvalidInput)
	}
	for _, line := range lines {
		if !entity.ValidItemKind(line.Kind) {
			return fmt.Errorf("%w: tipo de artículo %q", domain.ErrInvalidInput, line.Kind)
		}
		if line.ItemID == "" {
			return fmt.Errorf("%w: item_id es obligatorio", domain.ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: la cantidad debe ser positiva (%s)", domain.ErrInvalidInput, line.ItemName)
		}
		if line.PurchasePrice.IsNegative() || (line.SellPrice != nil && line.SellPrice.IsNegative()) {
			return fmt.Errorf("%w: los precios no pueden ser negativos (%s)", domain.ErrInvalidInput, line.ItemName)
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
				return fmt.Errorf("%w: artículo %s en catálogo de bodega central", domain.ErrNotFound, line.ItemName)
			}
			if catalog.Kind != line.Kind {
				return fmt.Errorf("%w: %s no es de tipo %s", domain.ErrInvalidInput, catalog.Name, line.Kind)
			}
			if _, err := stockRepo.AdjustQuantity(catalog.ID, line.Quantity); err != nil {
				return fmt.Errorf("%s: %w", catalog.Name, err)
			}
			if err := stockRepo.UpdateArrivalPrices(catalog.ID, line.PurchasePrice, line.SellPrice); err != nil {
				return err
			}

			sellPrice := decimal.Zero
			if line.SellPrice != nil {
				sellPrice = *line.SellPrice
			}
			kind := entity.MovementKindArrival
			if line.Kind == entity.ItemKindDevice {
				kind = entity.MovementKindDeviceArrival
			}
			mov := &entity.Movement{
				ID:            uuid.New().String(),
				Kind:          kind,
				ItemKind:      catalog.Kind,
				ItemID:        catalog.ID,
				ItemName:      catalog.Name,
				Quantity:      line.Quantity,
				PurchasePrice: line.PurchasePrice,
				SellPrice:     sellPrice,
				CreatedAt:     now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		return nil
	})
}

// List devuelve el historial de recepciones. kind vacío incluye medicamentos e insumos.
func (uc *ArrivalUseCase) List(ctx context.Context, kind string, limit, offset int) ([]*entity.Movement, error) {
	kinds := []string{entity.MovementKindArrival, entity.MovementKindDeviceArrival}
	switch kind {
	case entity.ItemKindMedicine:
		kinds = []string{entity.MovementKindArrival}
	case entity.ItemKindDevice:
		kinds = []string{entity.MovementKindDeviceArrival}
	}
	return uc.movRepo.ListByKind(kinds, "", limit, offset)
}
