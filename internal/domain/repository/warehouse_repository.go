package repository

import "github.com/jhoicas/stockmaster-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	GetByCode(code string) (*entity.Warehouse, error)
	List() ([]*entity.Warehouse, error)
	Delete(id string) error
}

// LocationRepository define el puerto de persistencia para Location.
// El código es único entre todas las ubicaciones.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByCode(code string) (*entity.Location, error)
	List() ([]*entity.Location, error)
	ListByWarehouse(warehouseID string) ([]*entity.Location, error)
}
