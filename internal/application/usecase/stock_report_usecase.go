package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// StockReportUseCase arma las filas de las planillas de existencias y de conteo físico.
type StockReportUseCase struct {
	txRunner inventory.TxRunner
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(txRunner inventory.TxRunner) *StockReportUseCase {
	return &StockReportUseCase{txRunner: txRunner}
}

// StockRows devuelve una fila por registro de stock, ordenadas por SKU y código de ubicación.
func (uc *StockReportUseCase) StockRows(ctx context.Context) ([]dto.StockExportRow, error) {
	rows := []dto.StockExportRow{}
	err := uc.txRunner.View(ctx, func(repos repository.Repos) error {
		levels, err := repos.Stock().List()
		if err != nil {
			return err
		}
		for _, l := range levels {
			row := dto.StockExportRow{Quantity: l.Quantity, SKU: l.ProductID, LocationCode: l.LocationID}
			p, err := repos.Products().GetByID(l.ProductID)
			if err != nil {
				return err
			}
			if p != nil {
				row.SKU, row.ProductName, row.UnitMeasure = p.SKU, p.Name, p.UnitMeasure
			}
			loc, err := repos.Locations().GetByID(l.LocationID)
			if err != nil {
				return err
			}
			if loc != nil {
				row.LocationCode, row.LocationName = loc.Code, loc.Name
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SKU != rows[j].SKU {
			return rows[i].SKU < rows[j].SKU
		}
		return rows[i].LocationCode < rows[j].LocationCode
	})
	return rows, nil
}

// CountSheetRows devuelve la ubicación y una fila por producto activo con la cantidad del sistema
// en esa ubicación (0 si nunca se tocó; la lectura no crea registros).
func (uc *StockReportUseCase) CountSheetRows(ctx context.Context, locationID string) (*dto.LocationResponse, []dto.CountSheetRow, error) {
	var location *dto.LocationResponse
	rows := []dto.CountSheetRow{}
	err := uc.txRunner.View(ctx, func(repos repository.Repos) error {
		loc, err := repos.Locations().GetByID(locationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, locationID)
		}
		resp := dto.LocationFromEntity(loc)
		location = &resp
		products, err := repos.Products().List()
		if err != nil {
			return err
		}
		for _, p := range products {
			if !p.IsActive {
				continue
			}
			qty, err := inventory.StockLevelInTx(repos, p.ID, loc.ID)
			if err != nil {
				return err
			}
			rows = append(rows, dto.CountSheetRow{
				ProductID:   p.ID,
				SKU:         p.SKU,
				ProductName: p.Name,
				UnitMeasure: p.UnitMeasure,
				SystemQty:   qty,
			})
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return location, rows, nil
}
