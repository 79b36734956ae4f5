package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/farmastock/backend/internal/domain"
	"github.com/farmastock/backend/internal/domain/entity"
	"github.com/farmastock/backend/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

const stockItemColumns = `id, name, kind, category_id, purchase_price, sell_price, quantity, branch_id, catalog_item_id, created_at, updated_at`

// StockItemRepo implementación del libro de stock sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	err := row.Scan(
		&s.ID, &s.Name, &s.Kind, &s.CategoryID, &s.PurchasePrice, &s.SellPrice,
		&s.Quantity, &s.BranchID, &s.CatalogItemID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan stock item: %w", err)
	}
	return &s, nil
}

// Create inserta un artículo de stock.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Kind, item.CategoryID, item.PurchasePrice, item.SellPrice,
		item.Quantity, item.BranchID, item.CatalogItemID, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por id, en cualquier ubicación.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	return scanStockItem(r.q.QueryRow(context.Background(), query, id))
}

// GetQuantity devuelve la cantidad disponible de un artículo de catálogo en una
// ubicación (branchID nil = bodega central); 0 si la ubicación no tiene el artículo.
func (r *StockItemRepo) GetQuantity(itemID string, branchID *string) (int64, error) {
	var query string
	var args []any
	if branchID == nil {
		query = `SELECT quantity FROM stock_items WHERE id = $1 AND branch_id IS NULL`
		args = []any{itemID}
	} else {
		query = `SELECT quantity FROM stock_items WHERE (id = $1 OR catalog_item_id = $1) AND branch_id = $2`
		args = []any{itemID, *branchID}
	}
	var qty int64
	err := r.q.QueryRow(context.Background(), query, args...).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get quantity: %w", err)
	}
	return qty, nil
}

// ListByLocation lista las filas de stock de una ubicación, opcionalmente por tipo.
func (r *StockItemRepo) ListByLocation(branchID *string, kind string) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE branch_id IS NULL`
	args := []any{}
	pos := 1
	if branchID != nil {
		query = `SELECT ` + stockItemColumns + ` FROM stock_items WHERE branch_id = $1`
		args = append(args, *branchID)
		pos = 2
	}
	if kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, kind)
	}
	query += " ORDER BY name"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockItem
	for rows.Next() {
		var s entity.StockItem
		if err := rows.Scan(&s.ID, &s.Name, &s.Kind, &s.CategoryID, &s.PurchasePrice, &s.SellPrice,
			&s.Quantity, &s.BranchID, &s.CatalogItemID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// GetWarehouseForUpdate obtiene el artículo de catálogo de la bodega central
// bloqueando la fila (SELECT FOR UPDATE) para serializar lecturas-modificaciones
// concurrentes sobre la misma fila.
func (r *StockItemRepo) GetWarehouseForUpdate(itemID string) (*entity.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + ` FROM stock_items
		WHERE id = $1 AND branch_id IS NULL
		FOR UPDATE`
	return scanStockItem(r.q.QueryRow(context.Background(), query, itemID))
}

// GetAtBranchForUpdate obtiene la fila de una sucursal por id, bloqueándola.
func (r *StockItemRepo) GetAtBranchForUpdate(itemID, branchID string) (*entity.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + ` FROM stock_items
		WHERE id = $1 AND branch_id = $2
		FOR UPDATE`
	return scanStockItem(r.q.QueryRow(context.Background(), query, itemID, branchID))
}

// AdjustQuantity aplica un delta condicionado: el UPDATE solo procede si la cantidad
// resultante no es negativa, así dos decrementos concurrentes jamás dejan stock
// negativo aunque ambos hayan leído la misma cantidad.
func (r *StockItemRepo) AdjustQuantity(itemID string, delta int64) (int64, error) {
	query := `
		UPDATE stock_items
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1 AND quantity + $2 >= 0
		RETURNING quantity`
	var qty int64
	err := r.q.QueryRow(context.Background(), query, itemID, delta).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientStock
		}
		return 0, fmt.Errorf("adjust quantity: %w", err)
	}
	return qty, nil
}

// UpsertBranchCopy suma quantity a la copia del artículo en la sucursal o la crea con
// los valores de catálogo si no existe. La copia se identifica por
// (catalog_item_id, branch_id): los cambios posteriores de catálogo no se propagan.
func (r *StockItemRepo) UpsertBranchCopy(catalog *entity.StockItem, branchID string, quantity int64) (*entity.StockItem, error) {
	update := `
		UPDATE stock_items
		SET quantity = quantity + $3, updated_at = now()
		WHERE catalog_item_id = $1 AND branch_id = $2
		RETURNING ` + stockItemColumns
	item, err := scanStockItem(r.q.QueryRow(context.Background(), update, catalog.ID, branchID, quantity))
	if err != nil {
		return nil, fmt.Errorf("upsert branch copy: %w", err)
	}
	if item != nil {
		return item, nil
	}

	branchCopy := &entity.StockItem{
		ID:            uuid.New().String(),
		Name:          catalog.Name,
		Kind:          catalog.Kind,
		CategoryID:    catalog.CategoryID,
		PurchasePrice: catalog.PurchasePrice,
		SellPrice:     catalog.SellPrice,
		Quantity:      quantity,
		BranchID:      &branchID,
		CatalogItemID: &catalog.ID,
	}
	insert := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err = r.q.Exec(context.Background(), insert,
		branchCopy.ID, branchCopy.Name, branchCopy.Kind, branchCopy.CategoryID, branchCopy.PurchasePrice, branchCopy.SellPrice,
		branchCopy.Quantity, branchCopy.BranchID, branchCopy.CatalogItemID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert branch copy: %w", err)
	}
	return branchCopy, nil
}

// UpdateArrivalPrices sobreescribe el precio de compra y, solo si sellPrice no es
// nil, el de venta.
func (r *StockItemRepo) UpdateArrivalPrices(itemID string, purchasePrice decimal.Decimal, sellPrice *decimal.Decimal) error {
	query := `
		UPDATE stock_items
		SET purchase_price = $2, sell_price = COALESCE($3, sell_price), updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, itemID, purchasePrice, sellPrice)
	if err != nil {
		return fmt.Errorf("update arrival prices: %w", err)
	}
	return nil
}
