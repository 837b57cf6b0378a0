package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

const (
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultMovesPage = 100
	maxMovesPage     = 1000
)

// SheetWriter genera las planillas xlsx (implementado en infrastructure/excel).
type SheetWriter interface {
	StockExport(rows []dto.StockExportRow) ([]byte, error)
	CountSheet(loc dto.LocationResponse, rows []dto.CountSheetRow) ([]byte, error)
}

// InventoryHandler historial de movimientos y planillas de stock (protegido).
type InventoryHandler struct {
	ledger  *inventory.Ledger
	reports *usecase.StockReportUseCase
	sheets  SheetWriter
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.Ledger, reports *usecase.StockReportUseCase, sheets SheetWriter) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, reports: reports, sheets: sheets}
}

// ListMoves godoc
// @Summary      Historial de movimientos (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "Filtrar por producto"
// @Param        location_id    query  string  false  "Filtrar por ubicación (origen o destino)"
// @Param        document_type  query  string  false  "INITIAL | RECEIPT | DELIVERY | TRANSFER | ADJUSTMENT"
// @Param        limit          query  int     false  "Máximo de movimientos"  default(100)
// @Success      200  {object}  dto.MoveListResponse
// @Router       /api/operations/moves [get]
func (h *InventoryHandler) ListMoves(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultMovesPage)
	if limit <= 0 {
		limit = defaultMovesPage
	}
	if limit > maxMovesPage {
		limit = maxMovesPage
	}
	moves, err := h.ledger.Moves(c.Context(), repository.StockMoveFilter{
		ProductID:    c.Query("product_id"),
		LocationID:   c.Query("location_id"),
		DocumentType: c.Query("document_type"),
		Limit:        limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	items := dto.StockMovesFromEntities(moves)
	return c.JSON(dto.MoveListResponse{Items: items, Total: len(items)})
}

// ExportStock GET /api/stock/export: existencias por producto y ubicación en xlsx.
func (h *InventoryHandler) ExportStock(c *fiber.Ctx) error {
	rows, err := h.reports.StockRows(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.sheets.StockExport(rows)
	if err != nil {
		return writeError(c, err)
	}
	return sendXLSX(c, fmt.Sprintf("stock_%s.xlsx", time.Now().Format("20060102_150405")), out)
}

// CountSheet GET /api/locations/:id/count-sheet: planilla para el conteo físico de una ubicación.
func (h *InventoryHandler) CountSheet(c *fiber.Ctx) error {
	loc, rows, err := h.reports.CountSheetRows(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.sheets.CountSheet(*loc, rows)
	if err != nil {
		return writeError(c, err)
	}
	return sendXLSX(c, fmt.Sprintf("conteo_%s.xlsx", loc.Code), out)
}

func sendXLSX(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
