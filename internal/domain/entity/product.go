package entity

import "time"

// Product representa un producto o SKU del inventario.
// El stock no vive aquí: se maneja por ubicación en StockLevel y se deriva de los StockMove.
type Product struct {
	ID           string
	Name         string
	SKU          string // único en todo el catálogo
	Category     string
	UnitMeasure  string
	ReorderLevel int64 // umbral de stock bajo; 0 = sin umbral
	IsActive     bool  // los productos no se eliminan, solo se desactivan
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
