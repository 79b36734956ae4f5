package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/farmastock/backend/internal/domain"
	"github.com/farmastock/backend/internal/domain/entity"
	"github.com/farmastock/backend/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

const shipmentColumns = `id, to_branch_id, status, rejection_reason, created_at, accepted_at`

// ShipmentRepo implementación de envíos sobre PostgreSQL (usable con pool o tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create persiste el encabezado y las líneas del envío.
func (r *ShipmentRepo) Create(shipment *entity.Shipment) error {
	if shipment.ID == "" {
		shipment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO shipments (id, to_branch_id, status, rejection_reason, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		shipment.ID, shipment.ToBranchID, shipment.Status, nullable(shipment.RejectionReason), shipment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create shipment: %w", err)
	}
	for i := range shipment.Items {
		item := &shipment.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.ShipmentID = shipment.ID
		itemQuery := `
			INSERT INTO shipment_items (id, shipment_id, position, item_kind, item_id, item_name, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.ShipmentID, item.Position, item.ItemKind, item.ItemID, item.ItemName, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("create shipment item: %w", err)
		}
	}
	return nil
}

func (r *ShipmentRepo) get(query, id string) (*entity.Shipment, error) {
	var s entity.Shipment
	var reason *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ToBranchID, &s.Status, &reason, &s.CreatedAt, &s.AcceptedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	if reason != nil {
		s.RejectionReason = *reason
	}
	items, err := r.listItems(s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// GetByID obtiene el envío con sus líneas.
func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	return r.get(`SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id)
}

// GetForUpdate obtiene el envío bloqueando el encabezado (SELECT FOR UPDATE): dos
// aceptaciones concurrentes del mismo envío se serializan y la segunda ve el estado
// terminal.
func (r *ShipmentRepo) GetForUpdate(id string) (*entity.Shipment, error) {
	return r.get(`SELECT `+shipmentColumns+` FROM shipments WHERE id = $1 FOR UPDATE`, id)
}

// listItems devuelve las líneas en el orden de la solicitud original (position).
func (r *ShipmentRepo) listItems(shipmentID string) ([]entity.ShipmentItem, error) {
	query := `
		SELECT id, shipment_id, position, item_kind, item_id, item_name, quantity
		FROM shipment_items WHERE shipment_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list shipment items: %w", err)
	}
	defer rows.Close()

	var items []entity.ShipmentItem
	for rows.Next() {
		var it entity.ShipmentItem
		if err := rows.Scan(&it.ID, &it.ShipmentID, &it.Position, &it.ItemKind, &it.ItemID, &it.ItemName, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan shipment item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListByBranch lista envíos (con líneas), opcionalmente por sucursal destino,
// más recientes primero.
func (r *ShipmentRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments`
	args := []any{}
	pos := 1
	if branchID != "" {
		query += " WHERE to_branch_id = $1"
		args = append(args, branchID)
		pos = 2
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Shipment
	for rows.Next() {
		var s entity.Shipment
		var reason *string
		if err := rows.Scan(&s.ID, &s.ToBranchID, &s.Status, &reason, &s.CreatedAt, &s.AcceptedAt); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		if reason != nil {
			s.RejectionReason = *reason
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		items, err := r.listItems(s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return list, nil
}

// MarkAccepted fija status=accepted y accepted_at. Solo transiciona desde pending.
func (r *ShipmentRepo) MarkAccepted(id string, acceptedAt time.Time) error {
	query := `
		UPDATE shipments SET status = $2, accepted_at = $3
		WHERE id = $1 AND status = $4`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.ShipmentStatusAccepted, acceptedAt, entity.ShipmentStatusPending,
	)
	if err != nil {
		return fmt.Errorf("mark accepted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// MarkRejected fija status=rejected con el motivo. Solo transiciona desde pending.
func (r *ShipmentRepo) MarkRejected(id, reason string) error {
	query := `
		UPDATE shipments SET status = $2, rejection_reason = $3
		WHERE id = $1 AND status = $4`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.ShipmentStatusRejected, reason, entity.ShipmentStatusPending,
	)
	if err != nil {
		return fmt.Errorf("mark rejected: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// SetStatus asigna un estado arbitrario sin validar transiciones (vía administrativa).
func (r *ShipmentRepo) SetStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE shipments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: envío %s", domain.ErrNotFound, id)
	}
	return nil
}

// GetLastReceipt devuelve la línea más reciente de un envío aceptado hacia la
// sucursal para el artículo dado, o nil si nunca lo recibió.
func (r *ShipmentRepo) GetLastReceipt(branchID, itemID string) (*repository.LastReceipt, error) {
	query := `
		SELECT si.quantity, s.created_at
		FROM shipment_items si
		JOIN shipments s ON s.id = si.shipment_id
		WHERE s.to_branch_id = $1 AND s.status = $2 AND si.item_id = $3
		ORDER BY s.created_at DESC
		LIMIT 1`
	var lr repository.LastReceipt
	err := r.q.QueryRow(context.Background(), query, branchID, entity.ShipmentStatusAccepted, itemID).
		Scan(&lr.Quantity, &lr.Time)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last receipt: %w", err)
	}
	return &lr, nil
}
