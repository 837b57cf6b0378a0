package memory

import (
	"fmt"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository en memoria, una colección por tipo.
type DocumentRepo struct {
	u *unitOfWork
}

// Create persiste un nuevo documento con sus líneas.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	s := r.u.store
	kind := doc.Kind
	if s.documents[kind] == nil {
		s.documents[kind] = make(map[string]*entity.Document)
	}
	if _, ok := s.documents[kind][doc.ID]; ok {
		return fmt.Errorf("insert document: %w", domain.ErrDuplicate)
	}
	id := doc.ID
	if err := r.u.write(func() {
		delete(s.documents[kind], id)
		s.docOrder[kind] = removeID(s.docOrder[kind], id)
	}); err != nil {
		return err
	}
	s.documents[kind][id] = cloneDocument(doc)
	s.docOrder[kind] = append(s.docOrder[kind], id)
	return nil
}

// GetByID obtiene un documento por tipo e ID; (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(kind entity.DocumentKind, id string) (*entity.Document, error) {
	d, ok := r.u.store.documents[kind][id]
	if !ok {
		return nil, nil
	}
	return cloneDocument(d), nil
}

// Update reemplaza un documento existente (estado, fecha de validación).
func (r *DocumentRepo) Update(doc *entity.Document) error {
	s := r.u.store
	prev, ok := s.documents[doc.Kind][doc.ID]
	if !ok {
		return fmt.Errorf("update document: %w", domain.ErrNotFound)
	}
	kind, id := doc.Kind, doc.ID
	if err := r.u.write(func() { s.documents[kind][id] = prev }); err != nil {
		return err
	}
	s.documents[kind][id] = cloneDocument(doc)
	return nil
}

// List lista los documentos de un tipo en orden de creación.
func (r *DocumentRepo) List(kind entity.DocumentKind) ([]*entity.Document, error) {
	s := r.u.store
	list := make([]*entity.Document, 0, len(s.docOrder[kind]))
	for _, id := range s.docOrder[kind] {
		list = append(list, cloneDocument(s.documents[kind][id]))
	}
	return list, nil
}

// NextSequence reserva el siguiente número de referencia del tipo.
func (r *DocumentRepo) NextSequence(kind entity.DocumentKind) (int, error) {
	s := r.u.store
	prev := s.sequences[kind]
	if err := r.u.write(func() { s.sequences[kind] = prev }); err != nil {
		return 0, err
	}
	s.sequences[kind] = prev + 1
	return prev + 1, nil
}

func cloneDocument(d *entity.Document) *entity.Document {
	cp := *d
	cp.Lines = append([]entity.DocumentLine(nil), d.Lines...)
	if d.ValidatedAt != nil {
		t := *d.ValidatedAt
		cp.ValidatedAt = &t
	}
	return &cp
}
