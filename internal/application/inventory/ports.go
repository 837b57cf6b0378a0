package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una unidad de trabajo, pasando repositorios atados a ella.
// Run garantiza atomicidad: si fn devuelve error ningún cambio queda visible (rollback).
// View da una vista consistente de solo lectura; nunca observa un Run a medio aplicar.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
	View(ctx context.Context, fn func(repos repository.Repos) error) error
}

// Clock fuente de tiempo inyectable para los timestamps de los movimientos.
type Clock func() time.Time

// Metrics puerto de observabilidad del motor de inventario.
// Solo se reporta lo confirmado (después del commit) y los rechazos.
type Metrics interface {
	MoveApplied(documentType string, quantity int64)
	MoveRejected(documentType, reason string)
	DocumentValidated(kind string)
	DocumentRejected(kind, reason string)
}

// NopMetrics implementación vacía de Metrics (tests, métricas deshabilitadas).
type NopMetrics struct{}

func (NopMetrics) MoveApplied(string, int64)       {}
func (NopMetrics) MoveRejected(string, string)     {}
func (NopMetrics) DocumentValidated(string)        {}
func (NopMetrics) DocumentRejected(string, string) {}
