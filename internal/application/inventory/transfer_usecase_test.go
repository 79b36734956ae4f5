package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmastock/backend/internal/application/inventory"
	"github.com/farmastock/backend/internal/domain"
	"github.com/farmastock/backend/internal/domain/entity"
)

func newTransferFixture() (*memStore, *inventory.TransferUseCase) {
	s := newMemStore()
	uc := inventory.NewTransferUseCase(&memTxRunner{store: s}, s.movementRepo())
	return s, uc
}

func TestTransfer_LoteExitoso(t *testing.T) {
	s, uc := newTransferFixture()
	med := seedWarehouseItem(s, "Amoxicilina 500mg", entity.ItemKindMedicine, 10)

	err := uc.Execute(context.Background(), []inventory.TransferLineInput{
		{ItemID: med.ID, ItemName: med.Name, Quantity: 4, ToBranchID: "b1"},
		{ItemID: med.ID, ItemName: med.Name, Quantity: 6, ToBranchID: "b2"},
	})
	require.NoError(t, err)

	warehouseQty, _ := s.stockRepo().GetQuantity(med.ID, nil)
	assert.Equal(t, int64(0), warehouseQty, "la bodega central debe quedar en cero")
	assert.Equal(t, int64(4), branchQuantity(s, med.ID, "b1"))
	assert.Equal(t, int64(6), branchQuantity(s, med.ID, "b2"))

	movs, err := uc.List(context.Background(), "", 50, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementKindTransfer, m.Kind)
		assert.Equal(t, entity.FromWarehouseLabel, m.FromBranchID,
			"el origen por defecto debe ser la bodega central")
		assert.Equal(t, med.Name, m.ItemName)
	}
}

// La suma de la bodega central y las copias de sucursal nunca cambia por trasladar:
// un traslado que excede lo disponible falla sin alterar nada.
func TestTransfer_ConservaElTotal(t *testing.T) {
	s, uc := newTransferFixture()
	med := seedWarehouseItem(s, "Ibuprofeno 400mg", entity.ItemKindMedicine, 10)
	ctx := context.Background()

	require.NoError(t, uc.Execute(ctx, []inventory.TransferLineInput{
		{ItemID: med.ID, Quantity: 4, ToBranchID: "b1"},
	}))
	require.NoError(t, uc.Execute(ctx, []inventory.TransferLineInput{
		{ItemID: med.ID, Quantity: 6, ToBranchID: "b2"},
	}))

	err := uc.Execute(ctx, []inventory.TransferLineInput{
		{ItemID: med.ID, Quantity: 1, ToBranchID: "b1"},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	warehouseQty, _ := s.stockRepo().GetQuantity(med.ID, nil)
	total := warehouseQty + branchQuantity(s, med.ID, "b1") + branchQuantity(s, med.ID, "b2")
	assert.Equal(t, int64(10), total, "el total del sistema debe conservarse")
}

// Un lote es atómico: si una línea falla, las anteriores también se revierten.
func TestTransfer_LoteAtomico(t *testing.T) {
	s, uc := newTransferFixture()
	med := seedWarehouseItem(s, "Paracetamol 500mg", entity.ItemKindMedicine, 10)

	err := uc.Execute(context.Background(), []inventory.TransferLineInput{
		{ItemID: med.ID, Quantity: 3, ToBranchID: "b1"},
		{ItemID: med.ID, Quantity: 20, ToBranchID: "b2"},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	warehouseQty, _ := s.stockRepo().GetQuantity(med.ID, nil)
	assert.Equal(t, int64(10), warehouseQty, "la primera línea debe revertirse")
	assert.Equal(t, int64(0), branchQuantity(s, med.ID, "b1"))

	movs, err := uc.List(context.Background(), "", 50, 0)
	require.NoError(t, err)
	assert.Empty(t, movs, "un lote fallido no deja movimientos en el historial")
}

func TestTransfer_ArticuloInexistente(t *testing.T) {
	_, uc := newTransferFixture()
	err := uc.Execute(context.Background(), []inventory.TransferLineInput{
		{ItemID: "no-existe", ItemName: "Fantasma", Quantity: 1, ToBranchID: "b1"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransfer_ValidacionEntrada(t *testing.T) {
	_, uc := newTransferFixture()
	ctx := context.Background()

	assert.ErrorIs(t, uc.Execute(ctx, nil), domain.ErrInvalidInput, "lote vacío")
	assert.ErrorIs(t, uc.Execute(ctx, []inventory.TransferLineInput{
		{ItemID: "x", Quantity: 0, ToBranchID: "b1"},
	}), domain.ErrInvalidInput, "cantidad cero")
	assert.ErrorIs(t, uc.Execute(ctx, []inventory.TransferLineInput{
		{ItemID: "", Quantity: 1, ToBranchID: "b1"},
	}), domain.ErrInvalidInput, "sin item_id")
}

// Dos traslados hacia la misma sucursal acumulan en una sola copia, identificada por
// su fila de catálogo y no por el nombre.
func TestTransfer_AcumulaEnCopiaExistente(t *testing.T) {
	s, uc := newTransferFixture()
	med := seedWarehouseItem(s, "Omeprazol 20mg", entity.ItemKindMedicine, 10)
	ctx := context.Background()

	require.NoError(t, uc.Execute(ctx, []inventory.TransferLineInput{
		{ItemID: med.ID, Quantity: 3, ToBranchID: "b1"},
	}))
	require.NoError(t, uc.Execute(ctx, []inventory.TransferLineInput{
		{ItemID: med.ID, Quantity: 2, ToBranchID: "b1"},
	}))

	branchID := "b1"
	rows, err := s.stockRepo().ListByLocation(&branchID, "")
	require.NoError(t, err)
	require.Len(t, rows, 1, "debe existir una sola copia por artículo y sucursal")
	assert.Equal(t, int64(5), rows[0].Quantity)
	require.NotNil(t, rows[0].CatalogItemID)
	assert.Equal(t, med.ID, *rows[0].CatalogItemID)
}

func TestTransfer_ListFiltraPorSucursal(t *testing.T) {
	s, uc := newTransferFixture()
	med := seedWarehouseItem(s, "Losartán 50mg", entity.ItemKindMedicine, 10)
	ctx := context.Background()

	require.NoError(t, uc.Execute(ctx, []inventory.TransferLineInput{
		{ItemID: med.ID, Quantity: 1, ToBranchID: "b1"},
		{ItemID: med.ID, Quantity: 2, ToBranchID: "b2"},
	}))

	movs, err := uc.List(ctx, "b2", 50, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "b2", movs[0].ToBranchID)
	assert.Equal(t, int64(2), movs[0].Quantity)
}
