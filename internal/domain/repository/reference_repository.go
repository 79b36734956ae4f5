package repository

import "github.com/farmastock/backend/internal/domain/entity"

// Puertos de solo lectura hacia las entidades de referencia del CRUD externo.

// BranchRepository consulta sucursales por id.
type BranchRepository interface {
	GetByID(id string) (*entity.Branch, error)
}

// PatientRepository consulta pacientes por id.
type PatientRepository interface {
	GetByID(id string) (*entity.Patient, error)
}

// EmployeeRepository consulta empleados por id.
type EmployeeRepository interface {
	GetByID(id string) (*entity.Employee, error)
}

// CategoryRepository consulta categorías por id.
type CategoryRepository interface {
	GetByID(id string) (*entity.Category, error)
}
