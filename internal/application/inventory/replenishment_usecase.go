package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos activos en o bajo su nivel de reorden.
type ReplenishmentUseCase struct {
	txRunner TxRunner
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(txRunner TxRunner) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{txRunner: txRunner}
}

// GenerateReplenishmentList devuelve los productos con ReorderLevel > 0 cuyo stock total
// (todas las ubicaciones) es <= ReorderLevel, con la cantidad sugerida de pedido.
// Orden: mayor déficit relativo primero, luego mayor cantidad sugerida, luego SKU.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	suggestions := []dto.ReplenishmentSuggestionDTO{}
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
			if !p.IsActive || p.ReorderLevel <= 0 {
				continue
			}
			current := totals[p.ID]
			if current > p.ReorderLevel {
				continue
			}
			ideal, suggested := inventory.SuggestedOrderQty(current, p.ReorderLevel)
			suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
				ProductID:         p.ID,
				SKU:               p.SKU,
				ProductName:       p.Name,
				CurrentStock:      current,
				ReorderLevel:      p.ReorderLevel,
				IdealStock:        ideal,
				SuggestedOrderQty: suggested,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		// déficit relativo: (reorden - actual) / reorden, comparado sin división
		ra := (a.ReorderLevel - a.CurrentStock) * b.ReorderLevel
		rb := (b.ReorderLevel - b.CurrentStock) * a.ReorderLevel
		if ra != rb {
			return ra > rb
		}
		if a.SuggestedOrderQty != b.SuggestedOrderQty {
			return a.SuggestedOrderQty > b.SuggestedOrderQty
		}
		return a.SKU < b.SKU
	})

	// Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
