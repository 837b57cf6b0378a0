package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

var fixedNow = time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)

type suite struct {
	tx         *memory.TxRunner
	ledger     *inventory.Ledger
	products   *usecase.ProductUseCase
	warehouses *usecase.WarehouseUseCase
	reports    *usecase.StockReportUseCase
}

func newSuite() *suite {
	tx := memory.NewTxRunner(memory.NewStore())
	clock := func() time.Time { return fixedNow }
	ledger := inventory.NewLedger(tx, clock, nil)
	return &suite{
		tx:         tx,
		ledger:     ledger,
		products:   usecase.NewProductUseCase(tx, ledger, clock, logger.Nop()),
		warehouses: usecase.NewWarehouseUseCase(tx, clock, logger.Nop()),
		reports:    usecase.NewStockReportUseCase(tx),
	}
}

func (s *suite) seed(t *testing.T) []dto.LocationResponse {
	t.Helper()
	require.NoError(t, s.warehouses.SeedDefaults(context.Background()))
	locs, err := s.warehouses.ListLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locs, 2)
	return locs
}

func TestProductCreate_InitialStockAtDefaultLocation(t *testing.T) {
	s := newSuite()
	ctx := context.Background()
	locs := s.seed(t)

	p, err := s.products.Create(ctx, dto.CreateProductRequest{Name: " Widget ", SKU: "W1", ReorderLevel: 5, InitialStock: 10})
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, "unit", p.UnitMeasure)
	assert.True(t, p.IsActive)

	qty, err := s.ledger.StockLevel(ctx, p.ID, locs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), qty)

	moves, err := s.ledger.Moves(ctx, repository.StockMoveFilter{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, entity.DocumentTypeInitial, moves[0].DocumentType)
	assert.Equal(t, locs[0].ID, moves[0].ToLocationID)
	assert.Empty(t, moves[0].FromLocationID)
	assert.Empty(t, moves[0].DocumentID)
}

func TestProductCreate_InitialStockAtGivenLocation(t *testing.T) {
	s := newSuite()
	ctx := context.Background()
	locs := s.seed(t)

	p, err := s.products.Create(ctx, dto.CreateProductRequest{Name: "Gadget", SKU: "G1", InitialStock: 4, LocationID: locs[1].ID})
	require.NoError(t, err)

	detail, err := s.products.Detail(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), detail.TotalQuantity)
	require.Len(t, detail.StockPerLocation, 1)
	assert.Equal(t, "PROD-RACK", detail.StockPerLocation[0].LocationCode)
	require.Len(t, detail.Moves, 1)

	_, err = s.products.Create(ctx, dto.CreateProductRequest{Name: "Otro", SKU: "O1", InitialStock: 1, LocationID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCreate_NoLocationsRollsBackProduct(t *testing.T) {
	s := newSuite()
	ctx := context.Background()

	_, err := s.products.Create(ctx, dto.CreateProductRequest{Name: "Widget", SKU: "W1", InitialStock: 10})
	require.ErrorIs(t, err, domain.ErrValidation)

	list, err := s.products.List(ctx)
	require.NoError(t, err)
	assert.Zero(t, list.Total)

	// sin stock inicial no hace falta ubicación
	_, err = s.products.Create(ctx, dto.CreateProductRequest{Name: "Widget", SKU: "W1"})
	require.NoError(t, err)
}

func TestProductCreate_Validation(t *testing.T) {
	s := newSuite()
	ctx := context.Background()
	s.seed(t)

	tests := []struct {
		name string
		in   dto.CreateProductRequest
		want error
	}{
		{"sin nombre", dto.CreateProductRequest{SKU: "X"}, domain.ErrValidation},
		{"sku en blanco", dto.CreateProductRequest{Name: "X", SKU: "   "}, domain.ErrValidation},
		{"reorden negativo", dto.CreateProductRequest{Name: "X", SKU: "X", ReorderLevel: -1}, domain.ErrValidation},
		{"stock inicial negativo", dto.CreateProductRequest{Name: "X", SKU: "X", InitialStock: -5}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.products.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := s.products.Create(ctx, dto.CreateProductRequest{Name: "Widget", SKU: "W1"})
	require.NoError(t, err)
	_, err = s.products.Create(ctx, dto.CreateProductRequest{Name: "Widget 2", SKU: "W1", InitialStock: 3})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate(t *testing.T) {
	s := newSuite()
	ctx := context.Background()
	a, err := s.products.Create(ctx, dto.CreateProductRequest{Name: "Alfa", SKU: "A"})
	require.NoError(t, err)
	_, err = s.products.Create(ctx, dto.CreateProductRequest{Name: "Beta", SKU: "B"})
	require.NoError(t, err)

	dup := "B"
	_, err = s.products.Update(ctx, a.ID, dto.UpdateProductRequest{SKU: &dup})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	neg := int64(-1)
	_, err = s.products.Update(ctx, a.ID, dto.UpdateProductRequest{ReorderLevel: &neg})
	assert.ErrorIs(t, err, domain.ErrValidation)

	same, name, level, inactive := "A", "Alfa Plus", int64(8), false
	updated, err := s.products.Update(ctx, a.ID, dto.UpdateProductRequest{SKU: &same, Name: &name, ReorderLevel: &level, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Alfa Plus", updated.Name)
	assert.Equal(t, int64(8), updated.ReorderLevel)
	assert.False(t, updated.IsActive)

	_, err = s.products.Update(ctx, "nope", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.products.Detail(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouse_CreateLocationsAndDelete(t *testing.T) {
	s := newSuite()
	ctx := context.Background()

	w, err := s.warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: "Norte", Code: "N"})
	require.NoError(t, err)
	_, err = s.warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: "Norte bis", Code: "N"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = s.warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: "Sin código"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	other, err := s.warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: "Sur", Code: "S"})
	require.NoError(t, err)

	loc, err := s.warehouses.CreateLocation(ctx, w.ID, dto.CreateLocationRequest{Name: "Estante", Code: "SHELF"})
	require.NoError(t, err)
	assert.Equal(t, w.ID, loc.WarehouseID)

	// el código de ubicación es único entre bodegas
	_, err = s.warehouses.CreateLocation(ctx, other.ID, dto.CreateLocationRequest{Name: "Estante", Code: "SHELF"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = s.warehouses.CreateLocation(ctx, "nope", dto.CreateLocationRequest{Name: "X", Code: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := s.warehouses.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Len(t, list.Items[0].Locations, 1)
	assert.NotNil(t, list.Items[1].Locations)

	assert.ErrorIs(t, s.warehouses.Delete(ctx, w.ID), domain.ErrConflict)
	require.NoError(t, s.warehouses.Delete(ctx, other.ID))
	assert.ErrorIs(t, s.warehouses.Delete(ctx, other.ID), domain.ErrNotFound)

	got, err := s.warehouses.GetLocation(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "SHELF", got.Code)
}

func TestWarehouse_SeedDefaultsIsIdempotent(t *testing.T) {
	s := newSuite()
	ctx := context.Background()
	require.NoError(t, s.warehouses.SeedDefaults(ctx))
	require.NoError(t, s.warehouses.SeedDefaults(ctx))

	list, err := s.warehouses.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, usecase.DefaultWarehouseCode, list.Items[0].Code)
	require.Len(t, list.Items[0].Locations, 2)
	assert.Equal(t, "MAIN-STORE", list.Items[0].Locations[0].Code)
	assert.Equal(t, "PROD-RACK", list.Items[0].Locations[1].Code)
}

func TestStockReport(t *testing.T) {
	s := newSuite()
	ctx := context.Background()
	locs := s.seed(t)

	b, err := s.products.Create(ctx, dto.CreateProductRequest{Name: "Beta", SKU: "B", InitialStock: 2, LocationID: locs[1].ID})
	require.NoError(t, err)
	_, err = s.products.Create(ctx, dto.CreateProductRequest{Name: "Alfa", SKU: "A", InitialStock: 5})
	require.NoError(t, err)
	_, err = s.ledger.ApplyMove(ctx, inventory.MoveInput{ProductID: b.ID, ToLocationID: locs[0].ID, Quantity: 1, DocumentType: entity.DocumentTypeReceipt})
	require.NoError(t, err)

	rows, err := s.reports.StockRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[0].SKU)
	assert.Equal(t, "B", rows[1].SKU)
	assert.Equal(t, "MAIN-STORE", rows[1].LocationCode)
	assert.Equal(t, "PROD-RACK", rows[2].LocationCode)
	assert.Equal(t, int64(2), rows[2].Quantity)

	loc, sheet, err := s.reports.CountSheetRows(ctx, locs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "PROD-RACK", loc.Code)
	require.Len(t, sheet, 2)
	assert.Equal(t, "B", sheet[0].SKU)
	assert.Equal(t, int64(2), sheet[0].SystemQty)
	assert.Equal(t, int64(0), sheet[1].SystemQty)

	_, _, err = s.reports.CountSheetRows(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
