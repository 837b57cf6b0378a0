package memory

import (
	"fmt"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository en memoria. SKU único (equivalente a un índice único).
type ProductRepo struct {
	u *unitOfWork
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	s := r.u.store
	if _, ok := s.products[product.ID]; ok {
		return fmt.Errorf("insert product: %w", domain.ErrDuplicate)
	}
	if r.findBySKU(product.SKU) != nil {
		return fmt.Errorf("insert product: sku %q: %w", product.SKU, domain.ErrDuplicate)
	}
	id := product.ID
	if err := r.u.write(func() {
		delete(s.products, id)
		s.productOrder = removeID(s.productOrder, id)
	}); err != nil {
		return err
	}
	cp := *product
	s.products[id] = &cp
	s.productOrder = append(s.productOrder, id)
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.u.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetBySKU obtiene un producto por SKU; (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	p := r.findBySKU(sku)
	if p == nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// Update reemplaza un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	s := r.u.store
	prev, ok := s.products[product.ID]
	if !ok {
		return fmt.Errorf("update product: %w", domain.ErrNotFound)
	}
	if other := r.findBySKU(product.SKU); other != nil && other.ID != product.ID {
		return fmt.Errorf("update product: sku %q: %w", product.SKU, domain.ErrDuplicate)
	}
	if err := r.u.write(func() { s.products[prev.ID] = prev }); err != nil {
		return err
	}
	cp := *product
	s.products[product.ID] = &cp
	return nil
}

// List lista los productos en orden de creación.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	s := r.u.store
	list := make([]*entity.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		cp := *s.products[id]
		list = append(list, &cp)
	}
	return list, nil
}

func (r *ProductRepo) findBySKU(sku string) *entity.Product {
	for _, p := range r.u.store.products {
		if p.SKU == sku {
			return p
		}
	}
	return nil
}
