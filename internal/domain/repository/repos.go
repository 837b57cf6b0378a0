package repository

// Repos agrupa los repositorios atados a una misma unidad de trabajo.
// Todo lo que se lee o escribe a través de una instancia es atómico respecto a otras unidades.
type Repos interface {
	Products() ProductRepository
	Warehouses() WarehouseRepository
	Locations() LocationRepository
	Stock() StockLevelRepository
	Moves() StockMoveRepository
	Documents() DocumentRepository
	Users() UserRepository
	OTPs() OTPRepository
}
