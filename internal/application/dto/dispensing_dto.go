package dto

import "time"

// DispensingItemRequest línea de una entrega a paciente.
type DispensingItemRequest struct {
	Kind     string `json:"type"` // medicine, medical_device
	ItemID   string `json:"id"`
	ItemName string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// CreateDispensingRequest body para POST /api/dispensing.
type CreateDispensingRequest struct {
	PatientID  string                  `json:"patient_id"`
	EmployeeID string                  `json:"employee_id"`
	BranchID   string                  `json:"branch_id"`
	Items      []DispensingItemRequest `json:"items"`
}

// DispensingItemResponse línea entregada, con la instantánea del nombre.
type DispensingItemResponse struct {
	Kind     string `json:"type"`
	ItemName string `json:"item_name"`
	Quantity int64  `json:"quantity"`
}

// DispensingRecordResponse registro de entrega con sus líneas.
type DispensingRecordResponse struct {
	ID           string                   `json:"id"`
	PatientID    string                   `json:"patient_id"`
	PatientName  string                   `json:"patient_name"`
	EmployeeID   string                   `json:"employee_id"`
	EmployeeName string                   `json:"employee_name"`
	BranchID     string                   `json:"branch_id"`
	Date         time.Time                `json:"date"`
	Items        []DispensingItemResponse `json:"items"`
}
