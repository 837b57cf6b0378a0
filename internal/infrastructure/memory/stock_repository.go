package memory

import (
	"fmt"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var (
	_ repository.StockLevelRepository = (*StockRepo)(nil)
	_ repository.StockMoveRepository  = (*StockMoveRepo)(nil)
)

// StockRepo implementación de StockLevelRepository en memoria, clave compuesta (producto, ubicación).
type StockRepo struct {
	u *unitOfWork
}

// Get obtiene el stock actual sin crear el registro; (nil, nil) si el par nunca fue tocado.
func (r *StockRepo) Get(productID, locationID string) (*entity.StockLevel, error) {
	l, ok := r.u.store.stock[stockKey{productID, locationID}]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

// Upsert devuelve el registro existente o lo crea con cantidad 0.
func (r *StockRepo) Upsert(productID, locationID string) (*entity.StockLevel, error) {
	s := r.u.store
	k := stockKey{productID, locationID}
	if l, ok := s.stock[k]; ok {
		cp := *l
		return &cp, nil
	}
	if err := r.u.write(func() {
		delete(s.stock, k)
		for i := len(s.stockOrder) - 1; i >= 0; i-- {
			if s.stockOrder[i] == k {
				s.stockOrder = append(s.stockOrder[:i], s.stockOrder[i+1:]...)
				break
			}
		}
	}); err != nil {
		return nil, err
	}
	level := &entity.StockLevel{ProductID: productID, LocationID: locationID}
	s.stock[k] = level
	s.stockOrder = append(s.stockOrder, k)
	cp := *level
	return &cp, nil
}

// Save persiste la cantidad de un registro creado previamente con Upsert.
func (r *StockRepo) Save(level *entity.StockLevel) error {
	if level.Quantity < 0 {
		return fmt.Errorf("save stock: cantidad negativa: %w", domain.ErrInsufficientStock)
	}
	s := r.u.store
	k := stockKey{level.ProductID, level.LocationID}
	prev, ok := s.stock[k]
	if !ok {
		return fmt.Errorf("save stock: registro inexistente (usar Upsert): %w", domain.ErrNotFound)
	}
	if err := r.u.write(func() { s.stock[k] = prev }); err != nil {
		return err
	}
	cp := *level
	s.stock[k] = &cp
	return nil
}

// ListByProduct lista el stock de un producto en todas las ubicaciones tocadas.
func (r *StockRepo) ListByProduct(productID string) ([]*entity.StockLevel, error) {
	return r.filter(func(k stockKey) bool { return k.productID == productID }), nil
}

// ListByLocation lista el stock de todos los productos en una ubicación.
func (r *StockRepo) ListByLocation(locationID string) ([]*entity.StockLevel, error) {
	return r.filter(func(k stockKey) bool { return k.locationID == locationID }), nil
}

// List lista todos los registros de stock en orden de creación.
func (r *StockRepo) List() ([]*entity.StockLevel, error) {
	return r.filter(func(stockKey) bool { return true }), nil
}

func (r *StockRepo) filter(keep func(stockKey) bool) []*entity.StockLevel {
	s := r.u.store
	list := make([]*entity.StockLevel, 0)
	for _, k := range s.stockOrder {
		if keep(k) {
			cp := *s.stock[k]
			list = append(list, &cp)
		}
	}
	return list
}

// StockMoveRepo log append-only de movimientos en memoria.
type StockMoveRepo struct {
	u *unitOfWork
}

// Append agrega un movimiento al final del log.
func (r *StockMoveRepo) Append(move *entity.StockMove) error {
	s := r.u.store
	n := len(s.moves)
	if err := r.u.write(func() { s.moves = s.moves[:n] }); err != nil {
		return err
	}
	cp := *move
	s.moves = append(s.moves, &cp)
	return nil
}

// List devuelve los movimientos filtrados, del más reciente al más antiguo.
func (r *StockMoveRepo) List(filter repository.StockMoveFilter) ([]*entity.StockMove, error) {
	moves := r.u.store.moves
	list := make([]*entity.StockMove, 0)
	for i := len(moves) - 1; i >= 0; i-- {
		m := moves[i]
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != "" && m.FromLocationID != filter.LocationID && m.ToLocationID != filter.LocationID {
			continue
		}
		if filter.DocumentType != "" && m.DocumentType != filter.DocumentType {
			continue
		}
		cp := *m
		list = append(list, &cp)
		if filter.Limit > 0 && len(list) >= filter.Limit {
			break
		}
	}
	return list, nil
}
