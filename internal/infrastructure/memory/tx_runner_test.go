package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

var errBoom = errors.New("boom")

func newRunner() *memory.TxRunner {
	return memory.NewTxRunner(memory.NewStore())
}

func product(id, sku string) *entity.Product {
	return &entity.Product{ID: id, Name: "Producto " + sku, SKU: sku, IsActive: true, CreatedAt: time.Now()}
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	tx := newRunner()

	err := tx.Run(ctx, func(repos repository.Repos) error {
		require.NoError(t, repos.Products().Create(product("p-1", "W1")))
		level, err := repos.Stock().Upsert("p-1", "loc-1")
		require.NoError(t, err)
		level.Quantity = 10
		require.NoError(t, repos.Stock().Save(level))
		require.NoError(t, repos.Moves().Append(&entity.StockMove{ID: "m-1", ProductID: "p-1", ToLocationID: "loc-1", Quantity: 10}))
		_, err = repos.Documents().NextSequence(entity.KindReceipt)
		require.NoError(t, err)
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	require.NoError(t, tx.View(ctx, func(repos repository.Repos) error {
		p, err := repos.Products().GetByID("p-1")
		require.NoError(t, err)
		assert.Nil(t, p)
		levels, err := repos.Stock().List()
		require.NoError(t, err)
		assert.Empty(t, levels)
		moves, err := repos.Moves().List(repository.StockMoveFilter{})
		require.NoError(t, err)
		assert.Empty(t, moves)
		return nil
	}))

	// la secuencia también se deshace
	require.NoError(t, tx.Run(ctx, func(repos repository.Repos) error {
		seq, err := repos.Documents().NextSequence(entity.KindReceipt)
		require.NoError(t, err)
		assert.Equal(t, 1, seq)
		return nil
	}))
}

func TestTxRunner_RollbackRestoresPreviousQuantity(t *testing.T) {
	ctx := context.Background()
	tx := newRunner()
	require.NoError(t, tx.Run(ctx, func(repos repository.Repos) error {
		level, err := repos.Stock().Upsert("p-1", "loc-1")
		require.NoError(t, err)
		level.Quantity = 5
		return repos.Stock().Save(level)
	}))

	err := tx.Run(ctx, func(repos repository.Repos) error {
		level, err := repos.Stock().Upsert("p-1", "loc-1")
		require.NoError(t, err)
		level.Quantity = 1
		require.NoError(t, repos.Stock().Save(level))
		level.Quantity = 0
		require.NoError(t, repos.Stock().Save(level))
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	require.NoError(t, tx.View(ctx, func(repos repository.Repos) error {
		level, err := repos.Stock().Get("p-1", "loc-1")
		require.NoError(t, err)
		require.NotNil(t, level)
		assert.Equal(t, int64(5), level.Quantity)
		return nil
	}))
}

func TestTxRunner_RollbackOnPanic(t *testing.T) {
	ctx := context.Background()
	tx := newRunner()

	assert.Panics(t, func() {
		_ = tx.Run(ctx, func(repos repository.Repos) error {
			require.NoError(t, repos.Products().Create(product("p-1", "W1")))
			panic("falla inesperada")
		})
	})

	// el lock quedó liberado y el alta deshecha
	require.NoError(t, tx.View(ctx, func(repos repository.Repos) error {
		p, err := repos.Products().GetBySKU("W1")
		require.NoError(t, err)
		assert.Nil(t, p)
		return nil
	}))
}

func TestTxRunner_ViewIsReadOnly(t *testing.T) {
	tx := newRunner()
	err := tx.View(context.Background(), func(repos repository.Repos) error {
		return repos.Products().Create(product("p-1", "W1"))
	})
	assert.Error(t, err)

	err = tx.View(context.Background(), func(repos repository.Repos) error {
		_, err := repos.Stock().Upsert("p-1", "loc-1")
		return err
	})
	assert.Error(t, err)
}

func TestTxRunner_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := newRunner().Run(ctx, func(repository.Repos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStockRepo_GetDoesNotCreate(t *testing.T) {
	tx := newRunner()
	require.NoError(t, tx.View(context.Background(), func(repos repository.Repos) error {
		level, err := repos.Stock().Get("p-1", "loc-1")
		require.NoError(t, err)
		assert.Nil(t, level)
		levels, err := repos.Stock().List()
		require.NoError(t, err)
		assert.Empty(t, levels)
		return nil
	}))
}

func TestStockRepo_SaveRejectsNegative(t *testing.T) {
	err := newRunner().Run(context.Background(), func(repos repository.Repos) error {
		level, err := repos.Stock().Upsert("p-1", "loc-1")
		require.NoError(t, err)
		level.Quantity = -1
		return repos.Stock().Save(level)
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestStockMoveRepo_ListNewestFirstWithFilters(t *testing.T) {
	ctx := context.Background()
	tx := newRunner()
	require.NoError(t, tx.Run(ctx, func(repos repository.Repos) error {
		moves := []*entity.StockMove{
			{ID: "m-1", ProductID: "p-1", ToLocationID: "a", Quantity: 5, DocumentType: entity.DocumentTypeInitial},
			{ID: "m-2", ProductID: "p-1", FromLocationID: "a", ToLocationID: "b", Quantity: 2, DocumentType: entity.DocumentTypeTransfer},
			{ID: "m-3", ProductID: "p-2", ToLocationID: "b", Quantity: 1, DocumentType: entity.DocumentTypeReceipt},
		}
		for _, m := range moves {
			require.NoError(t, repos.Moves().Append(m))
		}
		return nil
	}))

	require.NoError(t, tx.View(ctx, func(repos repository.Repos) error {
		all, err := repos.Moves().List(repository.StockMoveFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "m-3", all[0].ID)

		byLoc, err := repos.Moves().List(repository.StockMoveFilter{LocationID: "a"})
		require.NoError(t, err)
		assert.Len(t, byLoc, 2)

		byProduct, err := repos.Moves().List(repository.StockMoveFilter{ProductID: "p-1", Limit: 1})
		require.NoError(t, err)
		require.Len(t, byProduct, 1)
		assert.Equal(t, "m-2", byProduct[0].ID)

		byType, err := repos.Moves().List(repository.StockMoveFilter{DocumentType: entity.DocumentTypeReceipt})
		require.NoError(t, err)
		require.Len(t, byType, 1)
		assert.Equal(t, "m-3", byType[0].ID)
		return nil
	}))
}

func TestLocationRepo_CodeUniqueAcrossWarehouses(t *testing.T) {
	err := newRunner().Run(context.Background(), func(repos repository.Repos) error {
		require.NoError(t, repos.Locations().Create(&entity.Location{ID: "l-1", WarehouseID: "w-1", Code: "SHELF"}))
		return repos.Locations().Create(&entity.Location{ID: "l-2", WarehouseID: "w-2", Code: "SHELF"})
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepo_DuplicateSKU(t *testing.T) {
	err := newRunner().Run(context.Background(), func(repos repository.Repos) error {
		require.NoError(t, repos.Products().Create(product("p-1", "W1")))
		return repos.Products().Create(product("p-2", "W1"))
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDocumentRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	tx := newRunner()
	doc := &entity.Document{
		ID:     "d-1",
		Kind:   entity.KindReceipt,
		Status: entity.StatusReady,
		Lines:  []entity.DocumentLine{{ID: "l-1", ProductID: "p-1", Quantity: 3}},
	}
	require.NoError(t, tx.Run(ctx, func(repos repository.Repos) error {
		return repos.Documents().Create(doc)
	}))
	doc.Lines[0].Quantity = 99

	require.NoError(t, tx.View(ctx, func(repos repository.Repos) error {
		got, err := repos.Documents().GetByID(entity.KindReceipt, "d-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(3), got.Lines[0].Quantity)
		got.Status = entity.StatusDone

		again, err := repos.Documents().GetByID(entity.KindReceipt, "d-1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusReady, again.Status)

		other, err := repos.Documents().GetByID(entity.KindDelivery, "d-1")
		require.NoError(t, err)
		assert.Nil(t, other)
		return nil
	}))
}

func TestOTPRepo_Consume(t *testing.T) {
	ctx := context.Background()
	tx := newRunner()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, tx.Run(ctx, func(repos repository.Repos) error {
		return repos.OTPs().Create(&entity.OTP{UserID: "u-1", Code: "123456", ExpiresAt: now.Add(time.Minute)})
	}))

	consume := func(code string, at time.Time) bool {
		var ok bool
		require.NoError(t, tx.Run(ctx, func(repos repository.Repos) error {
			var err error
			ok, err = repos.OTPs().Consume("u-1", code, at)
			return err
		}))
		return ok
	}
	assert.False(t, consume("000000", now))
	assert.False(t, consume("123456", now.Add(2*time.Minute)), "vencido")
	assert.True(t, consume("123456", now))
	assert.False(t, consume("123456", now), "ya usado")
}
