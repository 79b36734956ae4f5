package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmastock/backend/internal/domain"
	"github.com/farmastock/backend/internal/domain/entity"
	"github.com/farmastock/backend/internal/domain/repository"
)

// CatalogUseCase alta y consulta de artículos de catálogo. La creación valida que la
// categoría exista y que su tipo coincida con el del artículo.
type CatalogUseCase struct {
	stockRepo    repository.StockItemRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(stockRepo repository.StockItemRepository, categoryRepo repository.CategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{stockRepo: stockRepo, categoryRepo: categoryRepo}
}

// CreateItemInput alta de un artículo. BranchID nil lo crea en la bodega central.
type CreateItemInput struct {
	Name          string
	Kind          string
	CategoryID    string
	PurchasePrice decimal.Decimal
	SellPrice     decimal.Decimal
	Quantity      int64
	BranchID      *string
}

// CreateItem crea el artículo tras validar categoría y datos básicos.
func (uc *CatalogUseCase) CreateItem(ctx context.Context, input CreateItemInput) (*entity.StockItem, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.ValidItemKind(input.Kind) {
		return nil, fmt.Errorf("%w: tipo de artículo %q", domain.ErrInvalidInput, input.Kind)
	}
	if input.Quantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if input.PurchasePrice.IsNegative() || input.SellPrice.IsNegative() {
		return nil, fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}

	category, err := uc.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, input.CategoryID)
	}
	if category.Type != input.Kind {
		return nil, fmt.Errorf("%w: categoría %s es de tipo %s", domain.ErrInvalidCategory, category.Name, category.Type)
	}

	now := time.Now()
	item := &entity.StockItem{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Kind:          input.Kind,
		CategoryID:    input.CategoryID,
		PurchasePrice: input.PurchasePrice,
		SellPrice:     input.SellPrice,
		Quantity:      input.Quantity,
		BranchID:      input.BranchID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.stockRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem obtiene un artículo por id.
func (uc *CatalogUseCase) GetItem(ctx context.Context, id string) (*entity.StockItem, error) {
	item, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, id)
	}
	return item, nil
}

// ListStock devuelve las filas de stock de una ubicación (branchID vacío = bodega
// central), opcionalmente filtradas por tipo.
func (uc *CatalogUseCase) ListStock(ctx context.Context, branchID, kind string) ([]*entity.StockItem, error) {
	if kind != "" && !entity.ValidItemKind(kind) {
		return nil, fmt.Errorf("%w: tipo de artículo %q", domain.ErrInvalidInput, kind)
	}
	var branch *string
	if branchID != "" {
		branch = &branchID
	}
	return uc.stockRepo.ListByLocation(branch, kind)
}
