package entity

import "time"

// Warehouse representa una bodega; agrupa una o más ubicaciones (Location).
type Warehouse struct {
	ID        string
	Name      string
	Code      string // único
	CreatedAt time.Time
}

// Location es el nodo hoja donde físicamente existe el stock.
type Location struct {
	ID          string
	WarehouseID string
	Name        string
	Code        string // único entre todas las ubicaciones, no solo dentro de la bodega
	CreatedAt   time.Time
}
