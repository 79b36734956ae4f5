package dto

import "time"

// ShipmentLineRequest línea solicitada en un envío.
type ShipmentLineRequest struct {
	Kind     string `json:"kind"` // medicine, medical_device
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// CreateShipmentRequest body para POST /api/shipments.
type CreateShipmentRequest struct {
	ToBranchID string                `json:"to_branch_id"`
	Items      []ShipmentLineRequest `json:"items"`
}

// RejectShipmentRequest body para POST /api/shipments/:id/reject.
type RejectShipmentRequest struct {
	Reason string `json:"reason"`
}

// OverrideStatusRequest body para PUT /api/shipments/:id/status.
type OverrideStatusRequest struct {
	Status string `json:"status"`
}

// ShipmentItemResponse línea de un envío en respuestas.
type ShipmentItemResponse struct {
	Kind     string `json:"type"`
	ItemID   string `json:"id"`
	ItemName string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// ShipmentResponse envío con sus líneas.
type ShipmentResponse struct {
	ID              string                 `json:"id"`
	ToBranchID      string                 `json:"to_branch_id"`
	Status          string                 `json:"status"`
	RejectionReason string                 `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	AcceptedAt      *time.Time             `json:"accepted_at,omitempty"`
	Items           []ShipmentItemResponse `json:"items"`
}

// LastReceiptResponse última recepción aceptada de un artículo en una sucursal.
type LastReceiptResponse struct {
	Quantity int64     `json:"quantity"`
	Time     time.Time `json:"time"`
}
