package memory

import (
	"fmt"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var (
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.LocationRepository  = (*LocationRepo)(nil)
)

// WarehouseRepo implementación del puerto WarehouseRepository en memoria.
type WarehouseRepo struct {
	u *unitOfWork
}

// Create persiste una nueva bodega (código único).
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	s := r.u.store
	for _, w := range s.warehouses {
		if w.Code == warehouse.Code || w.ID == warehouse.ID {
			return fmt.Errorf("insert warehouse: code %q: %w", warehouse.Code, domain.ErrDuplicate)
		}
	}
	id := warehouse.ID
	if err := r.u.write(func() {
		delete(s.warehouses, id)
		s.warehouseOrder = removeID(s.warehouseOrder, id)
	}); err != nil {
		return err
	}
	cp := *warehouse
	s.warehouses[id] = &cp
	s.warehouseOrder = append(s.warehouseOrder, id)
	return nil
}

// GetByID obtiene una bodega por ID; (nil, nil) si no existe.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.u.store.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

// GetByCode obtiene una bodega por código; (nil, nil) si no existe.
func (r *WarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	for _, w := range r.u.store.warehouses {
		if w.Code == code {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

// List lista las bodegas en orden de creación.
func (r *WarehouseRepo) List() ([]*entity.Warehouse, error) {
	s := r.u.store
	list := make([]*entity.Warehouse, 0, len(s.warehouseOrder))
	for _, id := range s.warehouseOrder {
		cp := *s.warehouses[id]
		list = append(list, &cp)
	}
	return list, nil
}

// Delete elimina una bodega. La regla de "sin ubicaciones" la aplica el caso de uso.
func (r *WarehouseRepo) Delete(id string) error {
	s := r.u.store
	prev, ok := s.warehouses[id]
	if !ok {
		return fmt.Errorf("delete warehouse: %w", domain.ErrNotFound)
	}
	order := append([]string(nil), s.warehouseOrder...)
	if err := r.u.write(func() {
		s.warehouses[id] = prev
		s.warehouseOrder = order
	}); err != nil {
		return err
	}
	delete(s.warehouses, id)
	s.warehouseOrder = removeID(s.warehouseOrder, id)
	return nil
}

// LocationRepo implementación del puerto LocationRepository en memoria.
type LocationRepo struct {
	u *unitOfWork
}

// Create persiste una nueva ubicación (código único entre todas las ubicaciones).
func (r *LocationRepo) Create(location *entity.Location) error {
	s := r.u.store
	for _, l := range s.locations {
		if l.Code == location.Code || l.ID == location.ID {
			return fmt.Errorf("insert location: code %q: %w", location.Code, domain.ErrDuplicate)
		}
	}
	id := location.ID
	if err := r.u.write(func() {
		delete(s.locations, id)
		s.locationOrder = removeID(s.locationOrder, id)
	}); err != nil {
		return err
	}
	cp := *location
	s.locations[id] = &cp
	s.locationOrder = append(s.locationOrder, id)
	return nil
}

// GetByID obtiene una ubicación por ID; (nil, nil) si no existe.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := r.u.store.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

// GetByCode obtiene una ubicación por código; (nil, nil) si no existe.
func (r *LocationRepo) GetByCode(code string) (*entity.Location, error) {
	for _, l := range r.u.store.locations {
		if l.Code == code {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

// List lista todas las ubicaciones en orden de creación.
func (r *LocationRepo) List() ([]*entity.Location, error) {
	return r.filter(func(*entity.Location) bool { return true }), nil
}

// ListByWarehouse lista las ubicaciones de una bodega.
func (r *LocationRepo) ListByWarehouse(warehouseID string) ([]*entity.Location, error) {
	return r.filter(func(l *entity.Location) bool { return l.WarehouseID == warehouseID }), nil
}

func (r *LocationRepo) filter(keep func(*entity.Location) bool) []*entity.Location {
	s := r.u.store
	list := make([]*entity.Location, 0)
	for _, id := range s.locationOrder {
		l := s.locations[id]
		if keep(l) {
			cp := *l
			list = append(list, &cp)
		}
	}
	return list
}
