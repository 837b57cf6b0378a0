package entity

import "time"

// Tipos de documento que originan un movimiento.
const (
	DocumentTypeInitial    = "INITIAL"
	DocumentTypeReceipt    = "RECEIPT"
	DocumentTypeDelivery   = "DELIVERY"
	DocumentTypeTransfer   = "TRANSFER"
	DocumentTypeAdjustment = "ADJUSTMENT"
)

// StockMove representa un movimiento inmutable de stock entre a lo sumo una ubicación origen
// y una destino. Cadena vacía = ubicación ausente (entrada pura o consumo puro).
type StockMove struct {
	ID             string
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       int64 // siempre positivo
	DocumentType   string
	DocumentID     string // vacío para INITIAL
	CreatedAt      time.Time
}
