package http

import (
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
)

func TestWriteDocumentError(t *testing.T) {
	failed := fmt.Errorf("%w: widget en STORE", domain.ErrInsufficientStock)

	tests := []struct {
		name       string
		err        error
		doc        *dto.DocumentResponse
		wantStatus int
		wantCode   string
		wantDocID  string
	}{
		{"ajuste creado y no validado", failed, &dto.DocumentResponse{ID: "doc-1", Status: "READY"}, fiber.StatusConflict, "INSUFFICIENT_STOCK", "doc-1"},
		{"sin documento", fmt.Errorf("%w: planilla", domain.ErrValidation), nil, fiber.StatusBadRequest, "VALIDATION", ""},
		{"error interno", errors.New("fallo"), nil, fiber.StatusInternalServerError, "INTERNAL", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeDocumentError(c, tt.err, tt.doc) })

			resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.err.Error(), body.Message)
			assert.Equal(t, tt.wantDocID, body.DocumentID)
		})
	}
}
