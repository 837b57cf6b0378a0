package dto

import "time"

// StockLevelResponse stock de un producto en una ubicación.
type StockLevelResponse struct {
	ProductID    string    `json:"product_id"`
	LocationID   string    `json:"location_id"`
	LocationCode string    `json:"location_code,omitempty"`
	LocationName string    `json:"location_name,omitempty"`
	Quantity     int64     `json:"quantity"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StockMoveResponse salida de un movimiento del ledger.
type StockMoveResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	FromLocationID *string   `json:"from_location_id"`
	ToLocationID   *string   `json:"to_location_id"`
	Quantity       int64     `json:"quantity"`
	DocumentType   string    `json:"document_type"`
	DocumentID     *string   `json:"document_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// MoveListResponse historial de movimientos (más reciente primero).
type MoveListResponse struct {
	Items []StockMoveResponse `json:"items"`
	Total int                 `json:"total"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un SKU
// que se encuentra en o por debajo de su nivel de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	ProductName       string `json:"product_name"`
	CurrentStock      int64  `json:"current_stock"`
	ReorderLevel      int64  `json:"reorder_level"`
	IdealStock        int64  `json:"ideal_stock"`         // ceil(ReorderLevel * 1.5)
	SuggestedOrderQty int64  `json:"suggested_order_qty"` // IdealStock - CurrentStock
	Priority          int    `json:"priority"`            // 1 = más urgente
}

// StockExportRow fila de la planilla de existencias (una por par producto/ubicación tocado).
type StockExportRow struct {
	SKU          string
	ProductName  string
	UnitMeasure  string
	LocationCode string
	LocationName string
	Quantity     int64
}

// CountSheetRow fila de la planilla de conteo de una ubicación: cantidad del sistema precargada.
type CountSheetRow struct {
	ProductID   string
	SKU         string
	ProductName string
	UnitMeasure string
	SystemQty   int64
}
