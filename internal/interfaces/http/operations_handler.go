package http

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/operations"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

const maxCountSheetBytes = 10 << 20

// Segmento de ruta → tipo de documento.
var kindsByPath = map[string]entity.DocumentKind{
	"receipts":    entity.KindReceipt,
	"deliveries":  entity.KindDelivery,
	"transfers":   entity.KindTransfer,
	"adjustments": entity.KindAdjustment,
}

// OperationsHandler maneja recepciones, entregas, traslados y ajustes (protegido).
type OperationsHandler struct {
	uc     *operations.DocumentUseCase
	pdf    operations.SlipPDFGenerator
	parser operations.CountSheetParser
}

// NewOperationsHandler construye el handler.
func NewOperationsHandler(uc *operations.DocumentUseCase, pdf operations.SlipPDFGenerator, parser operations.CountSheetParser) *OperationsHandler {
	return &OperationsHandler{uc: uc, pdf: pdf, parser: parser}
}

func kindParam(c *fiber.Ctx) (entity.DocumentKind, error) {
	kind, ok := kindsByPath[c.Params("kind")]
	if !ok {
		return "", fmt.Errorf("%w: tipo de documento %q", domain.ErrNotFound, c.Params("kind"))
	}
	return kind, nil
}

// CreateReceipt godoc
// @Summary      Crear recepción
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "supplier_name, location_id, lines"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/operations/receipts [post]
func (h *OperationsHandler) CreateReceipt(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.created(c)(h.uc.CreateReceipt(c.Context(), in))
}

// CreateDelivery godoc
// @Summary      Crear orden de entrega
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "customer_name, location_id, lines"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/operations/deliveries [post]
func (h *OperationsHandler) CreateDelivery(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.created(c)(h.uc.CreateDelivery(c.Context(), in))
}

// CreateTransfer godoc
// @Summary      Crear traslado interno
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "from_location_id, to_location_id, lines"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/operations/transfers [post]
func (h *OperationsHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.created(c)(h.uc.CreateTransfer(c.Context(), in))
}

// CreateAdjustment godoc
// @Summary      Crear ajuste (cantidades contadas)
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "location_id, reason, lines"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/operations/adjustments [post]
func (h *OperationsHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.created(c)(h.uc.CreateAdjustment(c.Context(), in))
}

func (h *OperationsHandler) created(c *fiber.Ctx) func(*dto.DocumentResponse, error) error {
	return func(out *dto.DocumentResponse, err error) error {
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// List godoc
// @Summary      Listar documentos de un tipo
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        kind    path   string  true   "receipts | deliveries | transfers | adjustments"
// @Param        status  query  string  false  "READY | DONE | PENDING"
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/operations/{kind} [get]
func (h *OperationsHandler) List(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Context(), kind, c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/operations/:kind/:id
func (h *OperationsHandler) Get(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.Context(), kind, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar documento (READY → DONE)
// @Description  Aplica todas las líneas al ledger en una sola unidad de trabajo; si una falla no se aplica ninguna.
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "receipts | deliveries | transfers | adjustments"
// @Param        id    path  string  true  "ID del documento"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operations/{kind}/{id}/validate [post]
func (h *OperationsHandler) Validate(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Validate(c.Context(), kind, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Comprobante PDF del documento
// @Tags         operations
// @Security     Bearer
// @Produce      application/pdf
// @Param        kind  path  string  true  "receipts | deliveries | transfers | adjustments"
// @Param        id    path  string  true  "ID del documento"
// @Success      200
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/operations/{kind}/{id}/pdf [get]
func (h *OperationsHandler) PDF(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return writeError(c, err)
	}
	slip, err := h.uc.Slip(c.Context(), kind, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.pdf.GenerateDocumentSlip(c.Context(), slip)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", slipFileName(slip.Document.Reference)))
	return c.Send(out)
}

// ImportCount godoc
// @Summary      Importar planilla de conteo físico
// @Description  Crea un ajuste desde la planilla xlsx (campo file). validate=true lo valida de inmediato.
// @Tags         operations
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true   "Planilla generada por /api/locations/{id}/count-sheet"
// @Param        reason    formData  string  false  "Motivo del ajuste"
// @Param        validate  formData  bool    false  "Validar al importar"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/adjustments/import [post]
func (h *OperationsHandler) ImportCount(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "el campo file es requerido"})
	}
	if fh.Size > maxCountSheetBytes {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "la planilla supera 10 MB"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, err)
	}
	validate, _ := strconv.ParseBool(c.FormValue("validate"))

	reason := utils.CopyString(c.FormValue("reason"))

	out, err := h.uc.ImportCount(c.Context(), h.parser, data, reason, validate)
	if err != nil {
		// el ajuste puede haber quedado creado en READY aunque la validación falle
		return writeDocumentError(c, err, out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func slipFileName(reference string) string {
	b := []byte(reference)
	for i, ch := range b {
		if ch == '/' {
			b[i] = '-'
		}
	}
	return string(b) + ".pdf"
}
