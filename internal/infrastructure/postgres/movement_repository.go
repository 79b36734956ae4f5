package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/farmastock/backend/internal/domain/entity"
	"github.com/farmastock/backend/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, kind, item_kind, item_id, item_name, quantity, from_branch_id, to_branch_id, purchase_price, sell_price, record_id, created_at`

// MovementRepo implementación del historial de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta: las filas son inmutables.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Kind, movement.ItemKind, movement.ItemID, movement.ItemName,
		movement.Quantity, movement.FromBranchID, movement.ToBranchID,
		movement.PurchasePrice, movement.SellPrice, movement.RecordID, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) list(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Kind, &m.ItemKind, &m.ItemID, &m.ItemName,
			&m.Quantity, &m.FromBranchID, &m.ToBranchID,
			&m.PurchasePrice, &m.SellPrice, &m.RecordID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByKind lista movimientos por tipo, opcionalmente filtrados por sucursal destino.
func (r *MovementRepo) ListByKind(kinds []string, branchID string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE kind = ANY($1)`
	args := []any{kinds}
	pos := 2
	if branchID != "" {
		query += fmt.Sprintf(" AND to_branch_id = $%d", pos)
		args = append(args, branchID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

// ListByRecord lista las líneas de movimiento de un registro de entrega, en orden
// de inserción.
func (r *MovementRepo) ListByRecord(recordID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE record_id = $1 ORDER BY created_at`
	return r.list(query, recordID)
}
