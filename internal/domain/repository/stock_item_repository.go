package repository

import (
	"github.com/shopspring/decimal"

	"github.com/farmastock/backend/internal/domain/entity"
)

// StockItemRepository define el puerto del libro de stock: cantidades por (artículo, ubicación).
// Las mutaciones se usan dentro de transacciones para garantizar consistencia.
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	GetQuantity(itemID string, branchID *string) (int64, error)
	ListByLocation(branchID *string, kind string) ([]*entity.StockItem, error)

	// GetWarehouseForUpdate obtiene el artículo de catálogo en la bodega central
	// (branch_id IS NULL) bloqueando la fila (SELECT FOR UPDATE).
	GetWarehouseForUpdate(itemID string) (*entity.StockItem, error)

	// GetAtBranchForUpdate obtiene la fila de una sucursal por id bloqueándola.
	GetAtBranchForUpdate(itemID, branchID string) (*entity.StockItem, error)

	// AdjustQuantity aplica un delta atómico y condicionado: la actualización solo
	// procede si la cantidad resultante no es negativa. Devuelve ErrInsufficientStock
	// si ninguna fila cumple la condición.
	AdjustQuantity(itemID string, delta int64) (int64, error)

	// UpsertBranchCopy suma quantity a la copia del artículo de catálogo en la sucursal,
	// o la crea con los valores de catálogo (categoría, precios) si aún no existe.
	// La copia se identifica por (catalog_item_id, branch_id).
	UpsertBranchCopy(catalog *entity.StockItem, branchID string, quantity int64) (*entity.StockItem, error)

	// UpdateArrivalPrices sobreescribe el precio de compra y, solo si sellPrice no es nil,
	// el de venta del artículo de catálogo.
	UpdateArrivalPrices(itemID string, purchasePrice decimal.Decimal, sellPrice *decimal.Decimal) error
}
