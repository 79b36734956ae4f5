package entity

import "time"

// Entidades de referencia administradas por el CRUD externo. El motor de inventario
// solo las consulta por id.

// Branch sucursal que recibe stock por traslado o envío aceptado.
type Branch struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Patient paciente al que se entregan medicamentos e insumos.
type Patient struct {
	ID        string
	FirstName string
	LastName  string
	Illness   string
	Phone     string
	Address   string
	BranchID  *string
}

// FullName nombre para instantáneas en registros de entrega.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Employee empleado que realiza la entrega.
type Employee struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Address   string
	BranchID  *string
}

// FullName nombre para instantáneas en registros de entrega.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Category categoría de artículos; Type debe coincidir con el Kind del artículo.
type Category struct {
	ID          string
	Name        string
	Description string
	Type        string // medicine, medical_device
}
