package dto

import "time"

// TransferLineRequest una línea de un lote de traslados bodega central -> sucursal.
// FromBranchID es informativo; vacío significa la bodega central.
type TransferLineRequest struct {
	ItemID       string `json:"item_id"`
	ItemName     string `json:"item_name"`
	Quantity     int64  `json:"quantity"`
	FromBranchID string `json:"from_branch_id,omitempty"`
	ToBranchID   string `json:"to_branch_id"`
}

// BatchTransferRequest body para POST /api/transfers.
type BatchTransferRequest struct {
	Transfers []TransferLineRequest `json:"transfers"`
}

// TransferResponse movimiento de traslado en listados.
type TransferResponse struct {
	ID           string    `json:"id"`
	ItemID       string    `json:"item_id"`
	ItemName     string    `json:"item_name"`
	Quantity     int64     `json:"quantity"`
	FromBranchID string    `json:"from_branch_id"`
	ToBranchID   string    `json:"to_branch_id"`
	Date         time.Time `json:"date"`
}
