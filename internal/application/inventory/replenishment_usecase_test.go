package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

func TestGenerateReplenishmentList(t *testing.T) {
	ctx := context.Background()
	tx := memory.NewTxRunner(memory.NewStore())
	ledger := inventory.NewLedger(tx, fixedClock, nil)

	products := []*entity.Product{
		{ID: "p-a", SKU: "A", Name: "Alfa", ReorderLevel: 10, IsActive: true},   // 10 ≤ 10, déficit 0
		{ID: "p-b", SKU: "B", Name: "Beta", ReorderLevel: 10, IsActive: true},   // 2 de 10
		{ID: "p-c", SKU: "C", Name: "Gama", ReorderLevel: 4, IsActive: true},    // 0, déficit total
		{ID: "p-d", SKU: "D", Name: "Delta", ReorderLevel: 5, IsActive: true},   // 20 > 5, no aparece
		{ID: "p-e", SKU: "E", Name: "Épsilon", ReorderLevel: 0, IsActive: true}, // sin umbral
		{ID: "p-f", SKU: "F", Name: "Zeta", ReorderLevel: 10, IsActive: false},  // inactivo
	}
	require.NoError(t, tx.Run(ctx, func(repos repository.Repos) error {
		for _, p := range products {
			p.CreatedAt = time.Now()
			if err := repos.Products().Create(p); err != nil {
				return err
			}
		}
		return nil
	}))
	// el stock se suma entre ubicaciones
	for _, in := range []inventory.MoveInput{
		{ProductID: "p-a", ToLocationID: "l1", Quantity: 6},
		{ProductID: "p-a", ToLocationID: "l2", Quantity: 4},
		{ProductID: "p-b", ToLocationID: "l1", Quantity: 2},
		{ProductID: "p-d", ToLocationID: "l1", Quantity: 20},
	} {
		in.DocumentType = entity.DocumentTypeInitial
		_, err := ledger.ApplyMove(ctx, in)
		require.NoError(t, err)
	}

	list, err := inventory.NewReplenishmentUseCase(tx).GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "C", list[0].SKU)
	assert.Equal(t, int64(6), list[0].IdealStock)
	assert.Equal(t, int64(6), list[0].SuggestedOrderQty)
	assert.Equal(t, 1, list[0].Priority)

	assert.Equal(t, "B", list[1].SKU)
	assert.Equal(t, int64(15), list[1].IdealStock)
	assert.Equal(t, int64(13), list[1].SuggestedOrderQty)

	assert.Equal(t, "A", list[2].SKU)
	assert.Equal(t, int64(10), list[2].CurrentStock)
	assert.Equal(t, int64(5), list[2].SuggestedOrderQty)
	assert.Equal(t, 3, list[2].Priority)
}

func TestGenerateReplenishmentList_EmptyIsNotNil(t *testing.T) {
	tx := memory.NewTxRunner(memory.NewStore())
	list, err := inventory.NewReplenishmentUseCase(tx).GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
