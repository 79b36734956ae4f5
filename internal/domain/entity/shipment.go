package entity

import "time"

// Estados de un envío. pending es el único estado desde el que se puede transicionar;
// accepted y rejected son terminales.
const (
	ShipmentStatusPending  = "pending"
	ShipmentStatusAccepted = "accepted"
	ShipmentStatusRejected = "rejected"
)

// Shipment es una solicitud de reabastecimiento de la bodega central hacia una sucursal.
// La validación de stock al crearlo es solo informativa: nada queda apartado hasta aceptar.
type Shipment struct {
	ID              string
	ToBranchID      string
	Status          string
	RejectionReason string
	CreatedAt       time.Time
	AcceptedAt      *time.Time // se asigna una sola vez, en pending -> accepted
	Items           []ShipmentItem
}

// IsPending indica si el envío todavía admite aceptar o rechazar.
func (s *Shipment) IsPending() bool {
	return s.Status == ShipmentStatusPending
}

// ValidShipmentStatus indica si el estado es uno de los conocidos.
func ValidShipmentStatus(status string) bool {
	return status == ShipmentStatusPending || status == ShipmentStatusAccepted || status == ShipmentStatusRejected
}

// ShipmentItem línea de un envío, fijada al crearlo y nunca mutada.
// ItemName es la instantánea del nombre del artículo de catálogo en ese momento.
// Position es el orden de la línea dentro del envío (1..n, orden de la solicitud);
// las lecturas devuelven las líneas ordenadas por Position.
type ShipmentItem struct {
	ID         string
	ShipmentID string
	Position   int
	ItemKind   string // medicine, medical_device
	ItemID     string
	ItemName   string
	Quantity   int64
}
