package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de artículo en inventario.
const (
	ItemKindMedicine = "medicine"
	ItemKindDevice   = "medical_device"
)

// ValidItemKind indica si el tipo de artículo es uno de los soportados.
func ValidItemKind(kind string) bool {
	return kind == ItemKindMedicine || kind == ItemKindDevice
}

// StockItem representa una línea de stock de un medicamento o insumo médico en una
// ubicación. BranchID nil significa la bodega central. CatalogItemID enlaza la copia
// de sucursal con su fila de catálogo en la bodega central (identidad estable entre
// ubicaciones; nil en filas de bodega central).
type StockItem struct {
	ID            string
	Name          string
	Kind          string // medicine, medical_device
	CategoryID    string
	PurchasePrice decimal.Decimal
	SellPrice     decimal.Decimal
	Quantity      int64 // nunca negativa tras confirmar una operación
	BranchID      *string
	CatalogItemID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsWarehouse indica si la fila pertenece a la bodega central.
func (s *StockItem) IsWarehouse() bool {
	return s.BranchID == nil
}
