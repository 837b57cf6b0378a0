package dto

import "time"

// CreateProductRequest entrada para crear un producto.
// Si InitialStock > 0 se registra un movimiento INITIAL en LocationID (o la ubicación por defecto).
type CreateProductRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	SKU          string `json:"sku" validate:"required,min=1,max=100"`
	Category     string `json:"category"`
	UnitMeasure  string `json:"uom"`
	ReorderLevel int64  `json:"reorder_level" validate:"min=0"`
	InitialStock int64  `json:"initial_stock" validate:"min=0"`
	LocationID   string `json:"location_id,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales, sin stock).
type UpdateProductRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	SKU          *string `json:"sku" validate:"omitempty,min=1,max=100"`
	Category     *string `json:"category"`
	UnitMeasure  *string `json:"uom"`
	ReorderLevel *int64  `json:"reorder_level" validate:"omitempty,min=0"`
	IsActive     *bool   `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Category     string    `json:"category"`
	UnitMeasure  string    `json:"uom"`
	ReorderLevel int64     `json:"reorder_level"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ProductDetailResponse producto con su stock por ubicación y los últimos movimientos.
type ProductDetailResponse struct {
	Product          ProductResponse      `json:"product"`
	TotalQuantity    int64                `json:"total_quantity"`
	StockPerLocation []StockLevelResponse `json:"stock_per_location"`
	Moves            []StockMoveResponse  `json:"moves"`
}
