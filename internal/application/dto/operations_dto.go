package dto

import "time"

// LineRequest línea de un documento. Quantity es recibida/entregada/trasladada/contada según el tipo.
type LineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"min=0"`
}

// CreateReceiptRequest entrada para crear una recepción (entrada de proveedor).
type CreateReceiptRequest struct {
	SupplierName string        `json:"supplier_name"`
	LocationID   string        `json:"location_id" validate:"required"`
	Lines        []LineRequest `json:"lines" validate:"required,min=1"`
}

// CreateDeliveryRequest entrada para crear una entrega (salida a cliente).
type CreateDeliveryRequest struct {
	CustomerName string        `json:"customer_name"`
	LocationID   string        `json:"location_id" validate:"required"`
	Lines        []LineRequest `json:"lines" validate:"required,min=1"`
}

// CreateTransferRequest entrada para crear un traslado interno.
type CreateTransferRequest struct {
	FromLocationID string        `json:"from_location_id" validate:"required"`
	ToLocationID   string        `json:"to_location_id" validate:"required"`
	Lines          []LineRequest `json:"lines" validate:"required,min=1"`
}

// CreateAdjustmentRequest entrada para crear un ajuste por conteo físico.
type CreateAdjustmentRequest struct {
	LocationID string        `json:"location_id" validate:"required"`
	Reason     string        `json:"reason"`
	Lines      []LineRequest `json:"lines" validate:"required,min=1"`
}

// DocumentLineResponse línea de un documento.
type DocumentLineResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// DocumentResponse salida de un documento de operación.
type DocumentResponse struct {
	ID             string                 `json:"id"`
	Kind           string                 `json:"kind"`
	Reference      string                 `json:"reference"`
	PartnerName    string                 `json:"partner_name,omitempty"`
	Reason         string                 `json:"reason,omitempty"`
	LocationID     string                 `json:"location_id,omitempty"`
	FromLocationID string                 `json:"from_location_id,omitempty"`
	ToLocationID   string                 `json:"to_location_id,omitempty"`
	Status         string                 `json:"status"`
	Lines          []DocumentLineResponse `json:"lines"`
	CreatedAt      time.Time              `json:"created_at"`
	ValidatedAt    *time.Time             `json:"validated_at,omitempty"`
}

// DocumentListResponse lista de documentos de un tipo.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Total int                `json:"total"`
}
