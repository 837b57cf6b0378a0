// Package metrics expone contadores Prometheus del motor de inventario.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stockmaster"

// Prometheus implementa inventory.Metrics sobre un registro propio.
type Prometheus struct {
	registry           *prometheus.Registry
	movesApplied       *prometheus.CounterVec
	unitsMoved         *prometheus.CounterVec
	movesRejected      *prometheus.CounterVec
	documentsValidated *prometheus.CounterVec
	documentsRejected  *prometheus.CounterVec
}

// New registra los contadores (y los collectors de runtime y proceso) en un registro nuevo.
func New() *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Prometheus{
		registry: reg,
		movesApplied: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_moves_applied_total",
			Help:      "Movimientos de stock confirmados, por tipo de documento.",
		}, []string{"document_type"}),
		unitsMoved: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_units_moved_total",
			Help:      "Unidades movidas en movimientos confirmados, por tipo de documento.",
		}, []string{"document_type"}),
		movesRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_moves_rejected_total",
			Help:      "Movimientos rechazados, por tipo de documento y motivo.",
		}, []string{"document_type", "reason"}),
		documentsValidated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_validated_total",
			Help:      "Documentos validados (DONE), por tipo.",
		}, []string{"kind"}),
		documentsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_rejected_total",
			Help:      "Validaciones de documentos fallidas, por tipo y motivo.",
		}, []string{"kind", "reason"}),
	}
}

func (p *Prometheus) MoveApplied(documentType string, quantity int64) {
	p.movesApplied.WithLabelValues(documentType).Inc()
	p.unitsMoved.WithLabelValues(documentType).Add(float64(quantity))
}

func (p *Prometheus) MoveRejected(documentType, reason string) {
	p.movesRejected.WithLabelValues(documentType, reason).Inc()
}

func (p *Prometheus) DocumentValidated(kind string) {
	p.documentsValidated.WithLabelValues(kind).Inc()
}

func (p *Prometheus) DocumentRejected(kind, reason string) {
	p.documentsRejected.WithLabelValues(kind, reason).Inc()
}

// Handler expone el registro en formato Prometheus (montado en /metrics).
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
