package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/infrastructure/metrics"
)

func TestPrometheus_Handler(t *testing.T) {
	m := metrics.New()
	m.MoveApplied("RECEIPT", 5)
	m.MoveApplied("RECEIPT", 3)
	m.MoveRejected("DELIVERY", "insufficient_stock")
	m.DocumentValidated("receipt")
	m.DocumentRejected("delivery", "insufficient_stock")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)
	assert.Contains(t, out, `stockmaster_stock_moves_applied_total{document_type="RECEIPT"} 2`)
	assert.Contains(t, out, `stockmaster_stock_units_moved_total{document_type="RECEIPT"} 8`)
	assert.Contains(t, out, `stockmaster_stock_moves_rejected_total{document_type="DELIVERY",reason="insufficient_stock"} 1`)
	assert.Contains(t, out, `stockmaster_documents_validated_total{kind="receipt"} 1`)
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := metrics.New(), metrics.New()
	a.DocumentValidated("transfer")

	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.NotContains(t, rec.Body.String(), `stockmaster_documents_validated_total{kind="transfer"}`)
}
