package repository

import "github.com/farmastock/backend/internal/domain/entity"

// MovementRepository define el puerto de persistencia del historial de movimientos.
// Solo inserta: los movimientos son inmutables una vez creados y siempre se escriben
// en la misma transacción que la mutación de stock que documentan.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListByKind(kinds []string, branchID string, limit, offset int) ([]*entity.Movement, error)
	ListByRecord(recordID string) ([]*entity.Movement, error)
}
