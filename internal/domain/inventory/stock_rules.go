package inventory

// StockStatus clasificación de un producto según su stock total.
type StockStatus string

const (
	StockNormal     StockStatus = "normal"
	StockLow        StockStatus = "low"
	StockOutOfStock StockStatus = "out_of_stock"
)

// Classify clasifica el stock total de un producto (suma de todas sus ubicaciones).
// total == 0 → sin stock; 0 < total <= reorderLevel (solo si reorderLevel > 0) → bajo; en otro caso normal.
func Classify(total, reorderLevel int64) StockStatus {
	if total <= 0 {
		return StockOutOfStock
	}
	if reorderLevel > 0 && total <= reorderLevel {
		return StockLow
	}
	return StockNormal
}

// AdjustmentDelta traduce un conteo físico a movimientos (servicio de dominio).
// diff = contado - sistema; diff > 0 → entrada por diff, diff < 0 → salida por -diff, 0 → nada.
func AdjustmentDelta(system, counted int64) (in, out int64) {
	diff := counted - system
	switch {
	case diff > 0:
		return diff, 0
	case diff < 0:
		return 0, -diff
	}
	return 0, 0
}

// SuggestedOrderQty cantidad sugerida de pedido para volver al stock ideal.
// StockIdeal = ceil(ReorderLevel * 1.5); Sugerido = StockIdeal - StockActual (mínimo 0).
func SuggestedOrderQty(current, reorderLevel int64) (ideal, suggested int64) {
	if reorderLevel <= 0 {
		return 0, 0
	}
	ideal = (reorderLevel*3 + 1) / 2
	suggested = ideal - current
	if suggested < 0 {
		suggested = 0
	}
	return ideal, suggested
}
