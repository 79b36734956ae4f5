package inventory

import (
	"context"

	"github.com/farmastock/backend/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que cada lote (traslado, aceptación de envío, entrega,
// recepción) se aplique completo o no se aplique: cualquier error revierte todas las
// mutaciones de stock y de historial del lote.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockItemRepository,
		movRepo repository.MovementRepository,
		shipmentRepo repository.ShipmentRepository,
		dispensingRepo repository.DispensingRepository,
	) error) error
}
