package repository

import "github.com/jhoicas/stockmaster-api/internal/domain/entity"

// StockLevelRepository define el puerto para consultar/actualizar stock por (producto, ubicación).
type StockLevelRepository interface {
	// Get es de solo lectura: devuelve (nil, nil) si el par nunca fue tocado y no crea el registro.
	Get(productID, locationID string) (*entity.StockLevel, error)
	// Upsert devuelve el registro existente o crea uno nuevo con cantidad 0 (creación perezosa explícita).
	Upsert(productID, locationID string) (*entity.StockLevel, error)
	// Save persiste la cantidad de un registro ya obtenido con Upsert.
	Save(level *entity.StockLevel) error
	ListByProduct(productID string) ([]*entity.StockLevel, error)
	ListByLocation(locationID string) ([]*entity.StockLevel, error)
	List() ([]*entity.StockLevel, error)
}

// StockMoveFilter filtros para el historial de movimientos. Campos vacíos no filtran.
// LocationID coincide tanto con origen como con destino. Limit <= 0 = sin límite.
type StockMoveFilter struct {
	ProductID    string
	LocationID   string
	DocumentType string
	Limit        int
}

// StockMoveRepository log append-only de movimientos.
type StockMoveRepository interface {
	Append(move *entity.StockMove) error
	// List devuelve los movimientos que cumplen el filtro, del más reciente al más antiguo.
	List(filter StockMoveFilter) ([]*entity.StockMove, error)
}
