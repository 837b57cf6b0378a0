// Package analytics contiene los casos de uso de reportes de solo lectura: el dashboard
// de stock (bajo / agotado) y los documentos pendientes por tipo.
package analytics

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	stockrules "github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen de stock y documentos pendientes.
//
// Fuente de datos: una única vista consistente (TxRunner.View); nunca observa una
// validación a medio aplicar.
type DashboardUseCase struct {
	txRunner inventory.TxRunner
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(txRunner inventory.TxRunner) *DashboardUseCase {
	return &DashboardUseCase{txRunner: txRunner}
}

// GetSummary construye el DashboardSummaryDTO.
//
//  1. Suma por producto de todas sus ubicaciones → TotalProductsInStock
//  2. Clasificación (stockrules.Classify) → LowStock / OutOfStock
//  3. Documentos ni DONE ni CANCELED por tipo → Pending*
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	out := &dto.DashboardSummaryDTO{
		LowStock:   []dto.ProductStockDTO{},
		OutOfStock: []dto.ProductStockDTO{},
	}
	err := uc.txRunner.View(ctx, func(repos repository.Repos) error {
		products, err := repos.Products().List()
		if err != nil {
			return err
		}
		levels, err := repos.Stock().List()
		if err != nil {
			return err
		}
		totals := make(map[string]int64, len(products))
		for _, l := range levels {
			totals[l.ProductID] += l.Quantity
		}

		for _, p := range products {
			total := totals[p.ID]
			if total > 0 {
				out.TotalProductsInStock++
			}
			row := dto.ProductStockDTO{Product: dto.ProductFromEntity(p), TotalQty: total}
			switch stockrules.Classify(total, p.ReorderLevel) {
			case stockrules.StockOutOfStock:
				out.OutOfStock = append(out.OutOfStock, row)
			case stockrules.StockLow:
				out.LowStock = append(out.LowStock, row)
			}
		}
		out.LowStockCount = len(out.LowStock)
		out.OutOfStockCount = len(out.OutOfStock)

		pending := map[entity.DocumentKind]*int{
			entity.KindReceipt:    &out.PendingReceipts,
			entity.KindDelivery:   &out.PendingDeliveries,
			entity.KindTransfer:   &out.PendingTransfers,
			entity.KindAdjustment: &out.PendingAdjustments,
		}
		for kind, counter := range pending {
			docs, err := repos.Documents().List(kind)
			if err != nil {
				return err
			}
			for _, d := range docs {
				if d.IsPending() {
					*counter++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
