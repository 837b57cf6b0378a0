package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

var errLocationStore = errors.New("almacén de ubicaciones no disponible")

// brokenLocations falla en toda lectura por ID.
type brokenLocations struct{ repository.LocationRepository }

func (brokenLocations) GetByID(string) (*entity.Location, error) { return nil, errLocationStore }

type brokenRepos struct{ repository.Repos }

func (r brokenRepos) Locations() repository.LocationRepository {
	return brokenLocations{r.Repos.Locations()}
}

// brokenTx delega en el runner en memoria pero entrega repos con ubicaciones rotas.
type brokenTx struct{ inner *memory.TxRunner }

func (b brokenTx) Run(ctx context.Context, fn func(repository.Repos) error) error {
	return b.inner.Run(ctx, func(repos repository.Repos) error { return fn(brokenRepos{repos}) })
}

func (b brokenTx) View(ctx context.Context, fn func(repository.Repos) error) error {
	return b.inner.View(ctx, func(repos repository.Repos) error { return fn(brokenRepos{repos}) })
}

func TestLookupErrorsArePropagated(t *testing.T) {
	s := newSuite()
	ctx := context.Background()
	s.seed(t)
	p, err := s.products.Create(ctx, dto.CreateProductRequest{Name: "Widget", SKU: "W1", InitialStock: 3})
	require.NoError(t, err)

	tx := brokenTx{inner: s.tx}

	detail, err := usecase.NewProductUseCase(tx, s.ledger, nil, logger.Nop()).Detail(ctx, p.ID)
	assert.ErrorIs(t, err, errLocationStore)
	assert.Nil(t, detail)

	rows, err := usecase.NewStockReportUseCase(tx).StockRows(ctx)
	assert.ErrorIs(t, err, errLocationStore)
	assert.Nil(t, rows)
}
