package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmastock/backend/internal/domain/entity"
	"github.com/farmastock/backend/internal/domain/repository"
)

// Adaptadores de solo lectura sobre las tablas de referencia que administra el
// CRUD externo. Devuelven nil cuando el id no existe.

var (
	_ repository.BranchRepository   = (*BranchRepo)(nil)
	_ repository.PatientRepository  = (*PatientRepo)(nil)
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
)

// BranchRepo consulta sucursales.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// GetByID obtiene una sucursal por id, nil si no existe.
func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	var b entity.Branch
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, created_at FROM branches WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

// PatientRepo consulta pacientes.
type PatientRepo struct {
	q Querier
}

// NewPatientRepository construye el adaptador.
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

// GetByID obtiene un paciente por id, nil si no existe.
func (r *PatientRepo) GetByID(id string) (*entity.Patient, error) {
	var p entity.Patient
	err := r.q.QueryRow(context.Background(),
		`SELECT id, first_name, last_name, illness, phone, address, branch_id FROM patients WHERE id = $1`, id,
	).Scan(&p.ID, &p.FirstName, &p.LastName, &p.Illness, &p.Phone, &p.Address, &p.BranchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return &p, nil
}

// EmployeeRepo consulta empleados.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// GetByID obtiene un empleado por id, nil si no existe.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	var e entity.Employee
	err := r.q.QueryRow(context.Background(),
		`SELECT id, first_name, last_name, phone, address, branch_id FROM employees WHERE id = $1`, id,
	).Scan(&e.ID, &e.FirstName, &e.LastName, &e.Phone, &e.Address, &e.BranchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// CategoryRepo consulta categorías.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// GetByID obtiene una categoría por id, nil si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, description, type FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}
