package repository

import (
	"time"

	"github.com/farmastock/backend/internal/domain/entity"
)

// LastReceipt última recepción aceptada de un artículo en una sucursal.
type LastReceipt struct {
	Quantity int64
	Time     time.Time
}

// ShipmentRepository define el puerto de persistencia de envíos y sus líneas.
type ShipmentRepository interface {
	Create(shipment *entity.Shipment) error
	GetByID(id string) (*entity.Shipment, error)

	// GetForUpdate obtiene el envío con sus líneas bloqueando la fila del encabezado
	// (SELECT FOR UPDATE) para serializar aceptaciones concurrentes.
	GetForUpdate(id string) (*entity.Shipment, error)

	ListByBranch(branchID string, limit, offset int) ([]*entity.Shipment, error)

	// MarkAccepted fija status=accepted y accepted_at en la transacción en curso.
	MarkAccepted(id string, acceptedAt time.Time) error

	// MarkRejected fija status=rejected con el motivo.
	MarkRejected(id, reason string) error

	// SetStatus asigna un estado arbitrario sin validar la máquina de estados
	// (corrección administrativa).
	SetStatus(id, status string) error

	// GetLastReceipt devuelve la línea más reciente de un envío aceptado hacia la
	// sucursal para el artículo dado, o nil si nunca lo recibió.
	GetLastReceipt(branchID, itemID string) (*LastReceipt, error)
}
