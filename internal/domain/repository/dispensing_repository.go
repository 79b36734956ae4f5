package repository

import "github.com/farmastock/backend/internal/domain/entity"

// DispensingRepository define el puerto de persistencia de entregas a pacientes.
type DispensingRepository interface {
	Create(record *entity.DispensingRecord) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.DispensingRecord, error)
}
