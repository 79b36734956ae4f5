package entity

import "time"

// DispensingRecord encabezado de una entrega a paciente en una sucursal.
// PatientName y EmployeeName son instantáneas tomadas al momento de la entrega.
type DispensingRecord struct {
	ID           string
	PatientID    string
	PatientName  string
	EmployeeID   string
	EmployeeName string
	BranchID     string
	Date         time.Time
}
