package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/operations"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/pdf"
)

func TestGenerateDocumentSlip(t *testing.T) {
	validated := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	slip := &operations.SlipData{
		Document: &entity.Document{
			ID:             "doc-1",
			Kind:           entity.KindTransfer,
			Reference:      "WH/INT/00001",
			FromLocationID: "loc-a",
			ToLocationID:   "loc-b",
			Status:         entity.StatusDone,
			CreatedAt:      validated.Add(-time.Hour),
			ValidatedAt:    &validated,
		},
		Source:      "MAIN-STORE · Main Store",
		Destination: "PROD-RACK · Production Rack",
		Lines: []operations.SlipLine{
			{SKU: "W1", ProductName: "Widget", UnitMeasure: "unit", Quantity: 3},
			{SKU: "B2", ProductName: "Bolt", UnitMeasure: "box", Quantity: 1200},
		},
	}

	out, err := pdf.NewMarotoPDFGenerator("stockmaster").GenerateDocumentSlip(context.Background(), slip)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateDocumentSlip_NilDocument(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator("stockmaster").GenerateDocumentSlip(context.Background(), &operations.SlipData{})
	assert.Error(t, err)
}
