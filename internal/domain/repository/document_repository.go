package repository

import "github.com/jhoicas/stockmaster-api/internal/domain/entity"

// DocumentRepository define el puerto de persistencia para los documentos de operación.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	// GetByID devuelve (nil, nil) si no existe un documento de ese tipo con ese ID.
	GetByID(kind entity.DocumentKind, id string) (*entity.Document, error)
	Update(doc *entity.Document) error
	// List devuelve los documentos del tipo en orden de creación.
	List(kind entity.DocumentKind) ([]*entity.Document, error)
	// NextSequence devuelve el siguiente número de referencia para el tipo (1, 2, ...).
	NextSequence(kind entity.DocumentKind) (int, error)
}
