package memory

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una unidad de trabajo sobre el Store.
// Run toma el lock exclusivo durante toda la unidad: las escrituras van directo al Store y cada una
// registra su compensación; si fn falla (o entra en pánico) se deshacen en orden inverso antes de
// liberar el lock, así ningún lector observa efectos parciales.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run inicia una unidad de trabajo de escritura y hace commit o rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	uow := &unitOfWork{store: r.store}
	defer func() {
		if p := recover(); p != nil {
			uow.rollback()
			panic(p)
		}
	}()
	if err = fn(uow); err != nil {
		uow.rollback()
		return err
	}
	return nil
}

// View ejecuta fn con una vista consistente de solo lectura.
func (r *TxRunner) View(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return fn(&unitOfWork{store: r.store, readOnly: true})
}

// unitOfWork implementa repository.Repos; el lock ya está tomado por TxRunner.
type unitOfWork struct {
	store    *Store
	readOnly bool
	undo     []func()
}

func (u *unitOfWork) write(compensate func()) error {
	if u.readOnly {
		return errReadOnly
	}
	u.undo = append(u.undo, compensate)
	return nil
}

func (u *unitOfWork) rollback() {
	for i := len(u.undo) - 1; i >= 0; i-- {
		u.undo[i]()
	}
	u.undo = nil
}

func (u *unitOfWork) Products() repository.ProductRepository     { return &ProductRepo{u: u} }
func (u *unitOfWork) Warehouses() repository.WarehouseRepository { return &WarehouseRepo{u: u} }
func (u *unitOfWork) Locations() repository.LocationRepository   { return &LocationRepo{u: u} }
func (u *unitOfWork) Stock() repository.StockLevelRepository     { return &StockRepo{u: u} }
func (u *unitOfWork) Moves() repository.StockMoveRepository      { return &StockMoveRepo{u: u} }
func (u *unitOfWork) Documents() repository.DocumentRepository   { return &DocumentRepo{u: u} }
func (u *unitOfWork) Users() repository.UserRepository           { return &UserRepo{u: u} }
func (u *unitOfWork) OTPs() repository.OTPRepository             { return &OTPRepo{u: u} }
