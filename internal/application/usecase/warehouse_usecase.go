package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

// Bodega y ubicaciones sembradas al arrancar con SEED_DEFAULTS.
const (
	DefaultWarehouseName = "Main Warehouse"
	DefaultWarehouseCode = "MAIN"
)

var defaultLocations = []struct{ Name, Code string }{
	{"Main Store", "MAIN-STORE"},
	{"Production Rack", "PROD-RACK"},
}

// WarehouseUseCase casos de uso para bodegas y ubicaciones.
type WarehouseUseCase struct {
	txRunner inventory.TxRunner
	clock    inventory.Clock
	log      *logger.Logger
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(txRunner inventory.TxRunner, clock inventory.Clock, log *logger.Logger) *WarehouseUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &WarehouseUseCase{txRunner: txRunner, clock: clock, log: log}
}

// Create crea una nueva bodega sin ubicaciones.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	name, code := strings.TrimSpace(in.Name), strings.TrimSpace(in.Code)
	if name == "" || code == "" {
		return nil, fmt.Errorf("%w: name y code son requeridos", domain.ErrValidation)
	}
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      name,
		Code:      code,
		CreatedAt: uc.clock().UTC(),
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		return repos.Warehouses().Create(warehouse)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("warehouse_id", warehouse.ID).Str("code", code).Msg("bodega creada")
	return toWarehouseResponse(warehouse, nil), nil
}

// List lista las bodegas con sus ubicaciones anidadas.
func (uc *WarehouseUseCase) List(ctx context.Context) (*dto.WarehouseListResponse, error) {
	items := make([]dto.WarehouseResponse, 0)
	err := uc.txRunner.View(ctx, func(repos repository.Repos) error {
		list, err := repos.Warehouses().List()
		if err != nil {
			return err
		}
		for _, w := range list {
			locs, err := repos.Locations().ListByWarehouse(w.ID)
			if err != nil {
				return err
			}
			items = append(items, *toWarehouseResponse(w, locs))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.WarehouseListResponse{Items: items, Total: len(items)}, nil
}

// Delete elimina una bodega; solo se permite si no tiene ubicaciones.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		w, err := repos.Warehouses().GetByID(id)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
		}
		locs, err := repos.Locations().ListByWarehouse(id)
		if err != nil {
			return err
		}
		if len(locs) > 0 {
			return fmt.Errorf("%w: la bodega tiene %d ubicaciones", domain.ErrConflict, len(locs))
		}
		return repos.Warehouses().Delete(id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("warehouse_id", id).Msg("bodega eliminada")
	return nil
}

// CreateLocation crea una ubicación dentro de una bodega existente.
func (uc *WarehouseUseCase) CreateLocation(ctx context.Context, warehouseID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name, code := strings.TrimSpace(in.Name), strings.TrimSpace(in.Code)
	if name == "" || code == "" {
		return nil, fmt.Errorf("%w: name y code son requeridos", domain.ErrValidation)
	}
	loc := &entity.Location{
		ID:          uuid.New().String(),
		WarehouseID: warehouseID,
		Name:        name,
		Code:        code,
		CreatedAt:   uc.clock().UTC(),
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		w, err := repos.Warehouses().GetByID(warehouseID)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, warehouseID)
		}
		return repos.Locations().Create(loc)
	})
	if err != nil {
		return nil, err
	}
	out := dto.LocationFromEntity(loc)
	return &out, nil
}

// ListLocations lista todas las ubicaciones en orden de creación.
func (uc *WarehouseUseCase) ListLocations(ctx context.Context) ([]dto.LocationResponse, error) {
	out := make([]dto.LocationResponse, 0)
	err := uc.txRunner.View(ctx, func(repos repository.Repos) error {
		locs, err := repos.Locations().List()
		if err != nil {
			return err
		}
		for _, l := range locs {
			out = append(out, dto.LocationFromEntity(l))
		}
		return nil
	})
	return out, err
}

// GetLocation obtiene una ubicación por ID.
func (uc *WarehouseUseCase) GetLocation(ctx context.Context, id string) (*dto.LocationResponse, error) {
	var out *dto.LocationResponse
	err := uc.txRunner.View(ctx, func(repos repository.Repos) error {
		l, err := repos.Locations().GetByID(id)
		if err != nil {
			return err
		}
		if l == nil {
			return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, id)
		}
		resp := dto.LocationFromEntity(l)
		out = &resp
		return nil
	})
	return out, err
}

// SeedDefaults crea la bodega MAIN con sus ubicaciones si aún no existe. Idempotente.
func (uc *WarehouseUseCase) SeedDefaults(ctx context.Context) error {
	now := uc.clock().UTC()
	created := false
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		existing, err := repos.Warehouses().GetByCode(DefaultWarehouseCode)
		if err != nil || existing != nil {
			return err
		}
		w := &entity.Warehouse{ID: uuid.New().String(), Name: DefaultWarehouseName, Code: DefaultWarehouseCode, CreatedAt: now}
		if err := repos.Warehouses().Create(w); err != nil {
			return err
		}
		for _, d := range defaultLocations {
			loc := &entity.Location{ID: uuid.New().String(), WarehouseID: w.ID, Name: d.Name, Code: d.Code, CreatedAt: now}
			if err := repos.Locations().Create(loc); err != nil {
				return err
			}
		}
		created = true
		return nil
	})
	if err != nil {
		return err
	}
	if created {
		uc.log.Info().Str("code", DefaultWarehouseCode).Msg("bodega por defecto sembrada")
	}
	return nil
}

func toWarehouseResponse(w *entity.Warehouse, locs []*entity.Location) *dto.WarehouseResponse {
	out := &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Code:      w.Code,
		Locations: make([]dto.LocationResponse, 0, len(locs)),
		CreatedAt: w.CreatedAt,
	}
	for _, l := range locs {
		out.Locations = append(out.Locations, dto.LocationFromEntity(l))
	}
	return out
}
