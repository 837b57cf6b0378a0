package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProductsInStock int `json:"total_products_in_stock"` // productos distintos con cantidad > 0 en alguna ubicación

	LowStockCount   int `json:"low_stock_count"`
	OutOfStockCount int `json:"out_of_stock_count"`

	// Documentos ni DONE ni CANCELED por tipo
	PendingReceipts    int `json:"pending_receipts"`
	PendingDeliveries  int `json:"pending_deliveries"`
	PendingTransfers   int `json:"pending_transfers"`
	PendingAdjustments int `json:"pending_adjustments"`

	LowStock   []ProductStockDTO `json:"low_stock"`
	OutOfStock []ProductStockDTO `json:"out_of_stock"`
}

// ProductStockDTO producto con su cantidad total en todas las ubicaciones.
type ProductStockDTO struct {
	Product  ProductResponse `json:"product"`
	TotalQty int64           `json:"total_qty"`
}
