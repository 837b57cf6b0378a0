package entity

import "time"

// StockLevel es el stock actual de un producto en una ubicación.
// Es una caché derivada del log de movimientos: entradas menos salidas por (producto, ubicación).
type StockLevel struct {
	ProductID  string
	LocationID string
	Quantity   int64 // nunca negativo
	UpdatedAt  time.Time
}
