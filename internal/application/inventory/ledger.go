package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// MoveInput entrada de ApplyMove.
// FromLocationID vacío = entrada pura (recepción, stock inicial); ToLocationID vacío = salida pura (entrega).
// Ambos presentes = traslado.
type MoveInput struct {
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       int64
	DocumentType   string
	DocumentID     string
}

// Ledger es el libro mayor de stock: mantiene la cantidad por (producto, ubicación) y el log
// append-only de movimientos. ApplyMove es la única primitiva de mutación del stock.
type Ledger struct {
	txRunner TxRunner
	clock    Clock
	metrics  Metrics
}

// NewLedger construye el ledger. clock nil = time.Now; metrics nil = NopMetrics.
func NewLedger(txRunner TxRunner, clock Clock, metrics Metrics) *Ledger {
	if clock == nil {
		clock = time.Now
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Ledger{txRunner: txRunner, clock: clock, metrics: metrics}
}

// ApplyMove aplica un movimiento en su propia unidad de trabajo: resta en origen, suma en destino
// y agrega el registro al log. Todo o nada.
func (l *Ledger) ApplyMove(ctx context.Context, in MoveInput) (*entity.StockMove, error) {
	var move *entity.StockMove
	err := l.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		move, err = l.ApplyMoveInTx(repos, in)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			l.metrics.MoveRejected(in.DocumentType, "insufficient_stock")
		}
		return nil, err
	}
	l.Committed(move)
	return move, nil
}

// ApplyMoveInTx ejecuta ApplyMove usando los repositorios proporcionados (misma unidad de trabajo del caller).
// El caller debe llamar a Committed con los movimientos devueltos después de confirmar.
func (l *Ledger) ApplyMoveInTx(repos repository.Repos, in MoveInput) (*entity.StockMove, error) {
	if err := validateMove(in); err != nil {
		return nil, err
	}
	now := l.clock().UTC()
	stock := repos.Stock()

	if in.FromLocationID != "" {
		from, err := stock.Upsert(in.ProductID, in.FromLocationID)
		if err != nil {
			return nil, err
		}
		if from.Quantity < in.Quantity {
			return nil, fmt.Errorf("%w: producto %s en ubicación %s (disponible %d, solicitado %d)",
				domain.ErrInsufficientStock, in.ProductID, in.FromLocationID, from.Quantity, in.Quantity)
		}
		from.Quantity -= in.Quantity
		from.UpdatedAt = now
		if err := stock.Save(from); err != nil {
			return nil, err
		}
	}
	if in.ToLocationID != "" {
		to, err := stock.Upsert(in.ProductID, in.ToLocationID)
		if err != nil {
			return nil, err
		}
		to.Quantity += in.Quantity
		to.UpdatedAt = now
		if err := stock.Save(to); err != nil {
			return nil, err
		}
	}

	move := &entity.StockMove{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		DocumentType:   in.DocumentType,
		DocumentID:     in.DocumentID,
		CreatedAt:      now,
	}
	if err := repos.Moves().Append(move); err != nil {
		return nil, err
	}
	return move, nil
}

// Committed reporta a métricas los movimientos ya confirmados.
func (l *Ledger) Committed(moves ...*entity.StockMove) {
	for _, m := range moves {
		l.metrics.MoveApplied(m.DocumentType, m.Quantity)
	}
}

// StockLevel devuelve la cantidad actual (0 si el par nunca fue tocado). No crea registros.
func (l *Ledger) StockLevel(ctx context.Context, productID, locationID string) (int64, error) {
	var qty int64
	err := l.txRunner.View(ctx, func(repos repository.Repos) error {
		var err error
		qty, err = StockLevelInTx(repos, productID, locationID)
		return err
	})
	return qty, err
}

// StockLevelInTx lectura de StockLevel dentro de una unidad de trabajo del caller.
func StockLevelInTx(repos repository.Repos, productID, locationID string) (int64, error) {
	level, err := repos.Stock().Get(productID, locationID)
	if err != nil {
		return 0, err
	}
	if level == nil {
		return 0, nil
	}
	return level.Quantity, nil
}

// StockByProduct devuelve los registros de stock de un producto en todas sus ubicaciones.
func (l *Ledger) StockByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error) {
	var levels []*entity.StockLevel
	err := l.txRunner.View(ctx, func(repos repository.Repos) error {
		var err error
		levels, err = repos.Stock().ListByProduct(productID)
		return err
	})
	return levels, err
}

// Moves devuelve el historial de movimientos filtrado, del más reciente al más antiguo.
func (l *Ledger) Moves(ctx context.Context, filter repository.StockMoveFilter) ([]*entity.StockMove, error) {
	var moves []*entity.StockMove
	err := l.txRunner.View(ctx, func(repos repository.Repos) error {
		var err error
		moves, err = repos.Moves().List(filter)
		return err
	})
	return moves, err
}

func validateMove(in MoveInput) error {
	if in.ProductID == "" {
		return fmt.Errorf("%w: product_id es requerido", domain.ErrValidation)
	}
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser un entero positivo", domain.ErrValidation)
	}
	if in.FromLocationID == "" && in.ToLocationID == "" {
		return fmt.Errorf("%w: se requiere ubicación origen o destino", domain.ErrValidation)
	}
	if in.FromLocationID == in.ToLocationID {
		return fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrValidation)
	}
	return nil
}
