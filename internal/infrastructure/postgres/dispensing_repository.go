package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/farmastock/backend/internal/domain/entity"
	"github.com/farmastock/backend/internal/domain/repository"
)

var _ repository.DispensingRepository = (*DispensingRepo)(nil)

const dispensingColumns = `id, patient_id, patient_name, employee_id, employee_name, branch_id, date`

// DispensingRepo implementación de registros de entrega sobre PostgreSQL
// (usable con pool o tx).
type DispensingRepo struct {
	q Querier
}

// NewDispensingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDispensingRepository(q Querier) *DispensingRepo {
	return &DispensingRepo{q: q}
}

// Create persiste el encabezado del registro de entrega.
func (r *DispensingRepo) Create(record *entity.DispensingRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `
		INSERT INTO dispensing_records (` + dispensingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.PatientID, record.PatientName,
		record.EmployeeID, record.EmployeeName, record.BranchID, record.Date,
	)
	if err != nil {
		return fmt.Errorf("create dispensing record: %w", err)
	}
	return nil
}

// ListByBranch lista registros de entrega, opcionalmente por sucursal,
// más recientes primero.
func (r *DispensingRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.DispensingRecord, error) {
	query := `SELECT ` + dispensingColumns + ` FROM dispensing_records`
	args := []any{}
	pos := 1
	if branchID != "" {
		query += " WHERE branch_id = $1"
		args = append(args, branchID)
		pos = 2
	}
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dispensing records: %w", err)
	}
	defer rows.Close()

	var list []*entity.DispensingRecord
	for rows.Next() {
		var rec entity.DispensingRecord
		if err := rows.Scan(&rec.ID, &rec.PatientID, &rec.PatientName,
			&rec.EmployeeID, &rec.EmployeeName, &rec.BranchID, &rec.Date); err != nil {
			return nil, fmt.Errorf("scan dispensing record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
