package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockItemRequest body para POST /api/stock (alta de catálogo).
// BranchID vacío crea el artículo en la bodega central.
type CreateStockItemRequest struct {
	Name          string          `json:"name"`
	Kind          string          `json:"kind"` // medicine, medical_device
	CategoryID    string          `json:"category_id"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	Quantity      int64           `json:"quantity"`
	BranchID      *string         `json:"branch_id,omitempty"`
}

// StockItemResponse fila de stock en respuestas.
type StockItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Kind          string          `json:"kind"`
	CategoryID    string          `json:"category_id"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	Quantity      int64           `json:"quantity"`
	BranchID      *string         `json:"branch_id,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NotificationResponse aviso de sucursal en listados.
type NotificationResponse struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
