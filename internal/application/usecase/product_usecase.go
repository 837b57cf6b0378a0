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

const (
	defaultUnitMeasure = "unit"
	detailMovesLimit   = 50
)

// ProductUseCase casos de uso del catálogo de productos. El stock solo cambia vía Ledger.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	ledger   *inventory.Ledger
	clock    inventory.Clock
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso. clock nil = time.Now.
func NewProductUseCase(txRunner inventory.TxRunner, ledger *inventory.Ledger, clock inventory.Clock, log *logger.Logger) *ProductUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &ProductUseCase{txRunner: txRunner, ledger: ledger, clock: clock, log: log}
}

// Create crea un producto activo. Si InitialStock > 0 registra un movimiento INITIAL hacia
// LocationID o, si no se indica, la primera ubicación creada. El alta del producto y el movimiento
// comparten unidad de trabajo: si el stock inicial falla el producto no queda creado.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" {
		return nil, fmt.Errorf("%w: name y sku son requeridos", domain.ErrValidation)
	}
	if in.ReorderLevel < 0 || in.InitialStock < 0 {
		return nil, fmt.Errorf("%w: reorder_level e initial_stock no pueden ser negativos", domain.ErrValidation)
	}
	uom := strings.TrimSpace(in.UnitMeasure)
	if uom == "" {
		uom = defaultUnitMeasure
	}
	now := uc.clock().UTC()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		SKU:          sku,
		Category:     strings.TrimSpace(in.Category),
		UnitMeasure:  uom,
		ReorderLevel: in.ReorderLevel,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var initialMove *entity.StockMove
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		existing, err := repos.Products().GetBySKU(sku)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: sku %q ya existe", domain.ErrDuplicate, sku)
		}
		if err := repos.Products().Create(product); err != nil {
			return err
		}
		if in.InitialStock <= 0 {
			return nil
		}
		locID, err := initialStockLocation(repos, in.LocationID)
		if err != nil {
			return err
		}
		initialMove, err = uc.ledger.ApplyMoveInTx(repos, inventory.MoveInput{
			ProductID:    product.ID,
			ToLocationID: locID,
			Quantity:     in.InitialStock,
			DocumentType: entity.DocumentTypeInitial,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if initialMove != nil {
		uc.ledger.Committed(initialMove)
	}
	uc.log.Info().Str("product_id", product.ID).Str("sku", sku).Int64("initial_stock", in.InitialStock).Msg("producto creado")
	out := dto.ProductFromEntity(product)
	return &out, nil
}

// initialStockLocation resuelve la ubicación del stock inicial: la indicada (debe existir)
// o la primera ubicación del catálogo.
func initialStockLocation(repos repository.Repos, locationID string) (string, error) {
	if locationID != "" {
		loc, err := repos.Locations().GetByID(locationID)
		if err != nil {
			return "", err
		}
		if loc == nil {
			return "", fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, locationID)
		}
		return loc.ID, nil
	}
	locs, err := repos.Locations().List()
	if err != nil {
		return "", err
	}
	if len(locs) == 0 {
		return "", fmt.Errorf("%w: no hay ubicaciones disponibles para el stock inicial", domain.ErrValidation)
	}
	return locs[0].ID, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.txRunner.View(ctx, func(repos repository.Repos) error {
		p, err := getProduct(repos, id)
		if err != nil {
			return err
		}
		resp := dto.ProductFromEntity(p)
		out = &resp
		return nil
	})
	return out, err
}

// Detail devuelve el producto con su stock por ubicación y los últimos 50 movimientos.
func (uc *ProductUseCase) Detail(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	var out *dto.ProductDetailResponse
	err := uc.txRunner.View(ctx, func(repos repository.Repos) error {
		p, err := getProduct(repos, id)
		if err != nil {
			return err
		}
		levels, err := repos.Stock().ListByProduct(p.ID)
		if err != nil {
			return err
		}
		moves, err := repos.Moves().List(repository.StockMoveFilter{ProductID: p.ID, Limit: detailMovesLimit})
		if err != nil {
			return err
		}
		detail := &dto.ProductDetailResponse{
			Product:          dto.ProductFromEntity(p),
			StockPerLocation: make([]dto.StockLevelResponse, 0, len(levels)),
			Moves:            dto.StockMovesFromEntities(moves),
		}
		for _, l := range levels {
			row := dto.StockLevelResponse{
				ProductID:  l.ProductID,
				LocationID: l.LocationID,
				Quantity:   l.Quantity,
				UpdatedAt:  l.UpdatedAt,
			}
			loc, err := repos.Locations().GetByID(l.LocationID)
			if err != nil {
				return err
			}
			if loc != nil {
				row.LocationCode, row.LocationName = loc.Code, loc.Name
			}
			detail.TotalQuantity += l.Quantity
			detail.StockPerLocation = append(detail.StockPerLocation, row)
		}
		out = detail
		return nil
	})
	return out, err
}

// Update actualiza un producto. No permite modificar stock (se maneja vía Ledger).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		p, err := getProduct(repos, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return fmt.Errorf("%w: name no puede ser vacío", domain.ErrValidation)
			}
			p.Name = name
		}
		if in.SKU != nil {
			sku := strings.TrimSpace(*in.SKU)
			if sku == "" {
				return fmt.Errorf("%w: sku no puede ser vacío", domain.ErrValidation)
			}
			if other, err := repos.Products().GetBySKU(sku); err != nil {
				return err
			} else if other != nil && other.ID != p.ID {
				return fmt.Errorf("%w: sku %q ya existe", domain.ErrDuplicate, sku)
			}
			p.SKU = sku
		}
		if in.Category != nil {
			p.Category = strings.TrimSpace(*in.Category)
		}
		if in.UnitMeasure != nil {
			p.UnitMeasure = strings.TrimSpace(*in.UnitMeasure)
		}
		if in.ReorderLevel != nil {
			if *in.ReorderLevel < 0 {
				return fmt.Errorf("%w: reorder_level no puede ser negativo", domain.ErrValidation)
			}
			p.ReorderLevel = *in.ReorderLevel
		}
		if in.IsActive != nil {
			p.IsActive = *in.IsActive
		}
		p.UpdatedAt = uc.clock().UTC()
		if err := repos.Products().Update(p); err != nil {
			return err
		}
		resp := dto.ProductFromEntity(p)
		out = &resp
		return nil
	})
	return out, err
}

// List lista todos los productos en orden de creación.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	items := make([]dto.ProductResponse, 0)
	err := uc.txRunner.View(ctx, func(repos repository.Repos) error {
		list, err := repos.Products().List()
		if err != nil {
			return err
		}
		for _, p := range list {
			items = append(items, dto.ProductFromEntity(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

func getProduct(repos repository.Repos, id string) (*entity.Product, error) {
	p, err := repos.Products().GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return p, nil
}
