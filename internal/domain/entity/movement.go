package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementKindTransfer      = "transfer"       // bodega central -> sucursal
	MovementKindArrival       = "arrival"        // recepción de proveedor (medicamentos)
	MovementKindDeviceArrival = "device_arrival" // recepción de proveedor (insumos)
	MovementKindDispensing    = "dispensing"     // entrega a paciente en sucursal
)

// FromWarehouseLabel etiqueta de origen cuando el traslado sale de la bodega central.
const FromWarehouseLabel = "main"

// Movement es un registro inmutable de historial. ItemName es una instantánea
// desnormalizada tomada al crear el movimiento: no se actualiza si el artículo
// de catálogo cambia de nombre después.
type Movement struct {
	ID            string
	Kind          string
	ItemKind      string // medicine, medical_device
	ItemID        string
	ItemName      string
	Quantity      int64
	FromBranchID  string          // transfer: origen ("main" si es la bodega central)
	ToBranchID    string          // transfer: sucursal destino
	PurchasePrice decimal.Decimal // arrival, device_arrival
	SellPrice     decimal.Decimal // arrival, device_arrival
	RecordID      string          // dispensing: DispensingRecord al que pertenece la línea
	CreatedAt     time.Time
}
