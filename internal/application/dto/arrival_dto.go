package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArrivalLineRequest una línea de un lote de recepciones de proveedor hacia la
// bodega central. SellPrice es opcional: si no viene, el precio de venta del
// catálogo no se toca.
type ArrivalLineRequest struct {
	Kind          string           `json:"kind"` // medicine, medical_device
	ItemID        string           `json:"item_id"`
	ItemName      string           `json:"item_name"`
	Quantity      int64            `json:"quantity"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	SellPrice     *decimal.Decimal `json:"sell_price,omitempty"`
}

// BatchArrivalRequest body para POST /api/arrivals.
type BatchArrivalRequest struct {
	Arrivals []ArrivalLineRequest `json:"arrivals"`
}

// ArrivalResponse movimiento de recepción en listados.
type ArrivalResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	ItemID        string          `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Quantity      int64           `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	Date          time.Time       `json:"date"`
}
