// Package memory implementa los puertos de repositorio sobre un almacén en memoria.
//
// Store es el único dueño de todas las colecciones. Se construye una vez al arrancar el proceso
// y se pasa explícitamente (vía TxRunner) a todos los componentes. No hay persistencia.
package memory

import (
	"errors"
	"sync"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// errReadOnly se devuelve al intentar escribir dentro de TxRunner.View.
var errReadOnly = errors.New("memory: escritura en una unidad de trabajo de solo lectura")

type stockKey struct {
	productID  string
	locationID string
}

// Store almacén en memoria. Todo acceso pasa por TxRunner, que toma el lock.
type Store struct {
	mu sync.RWMutex

	products     map[string]*entity.Product
	productOrder []string

	warehouses     map[string]*entity.Warehouse
	warehouseOrder []string

	locations     map[string]*entity.Location
	locationOrder []string

	stock      map[stockKey]*entity.StockLevel
	stockOrder []stockKey

	moves []*entity.StockMove

	documents map[entity.DocumentKind]map[string]*entity.Document
	docOrder  map[entity.DocumentKind][]string
	sequences map[entity.DocumentKind]int

	users     map[string]*entity.User
	userOrder []string
	otps      []*entity.OTP
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]*entity.Product),
		warehouses: make(map[string]*entity.Warehouse),
		locations:  make(map[string]*entity.Location),
		stock:      make(map[stockKey]*entity.StockLevel),
		documents:  make(map[entity.DocumentKind]map[string]*entity.Document),
		docOrder:   make(map[entity.DocumentKind][]string),
		sequences:  make(map[entity.DocumentKind]int),
		users:      make(map[string]*entity.User),
	}
}

// removeID quita id de un slice de orden (usado solo para deshacer altas).
func removeID(order []string, id string) []string {
	for i := len(order) - 1; i >= 0; i-- {
		if order[i] == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
