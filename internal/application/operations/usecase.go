// Package operations implementa los flujos de documentos de inventario: recepciones, entregas,
// traslados internos y ajustes. Cada documento nace READY y pasa a DONE al validarse; la validación
// traduce las líneas en movimientos del Ledger dentro de una sola unidad de trabajo (todo o nada).
package operations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	stockrules "github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

// StatusPending filtro de listado: documentos ni DONE ni CANCELED.
const StatusPending = "PENDING"

// DocumentUseCase casos de uso de los cuatro tipos de documento.
type DocumentUseCase struct {
	txRunner inventory.TxRunner
	ledger   *inventory.Ledger
	clock    inventory.Clock
	metrics  inventory.Metrics
	log      *logger.Logger
}

// NewDocumentUseCase construye el caso de uso. clock nil = time.Now; metrics nil = NopMetrics.
func NewDocumentUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	clock inventory.Clock,
	metrics inventory.Metrics,
	log *logger.Logger,
) *DocumentUseCase {
	if clock == nil {
		clock = time.Now
	}
	if metrics == nil {
		metrics = inventory.NopMetrics{}
	}
	return &DocumentUseCase{txRunner: txRunner, ledger: ledger, clock: clock, metrics: metrics, log: log}
}

// CreateReceipt crea una recepción READY hacia LocationID.
func (uc *DocumentUseCase) CreateReceipt(ctx context.Context, in dto.CreateReceiptRequest) (*dto.DocumentResponse, error) {
	return uc.create(ctx, &entity.Document{
		Kind:        entity.KindReceipt,
		PartnerName: strings.TrimSpace(in.SupplierName),
		LocationID:  strings.TrimSpace(in.LocationID),
	}, in.Lines)
}

// CreateDelivery crea una entrega READY desde LocationID.
func (uc *DocumentUseCase) CreateDelivery(ctx context.Context, in dto.CreateDeliveryRequest) (*dto.DocumentResponse, error) {
	return uc.create(ctx, &entity.Document{
		Kind:        entity.KindDelivery,
		PartnerName: strings.TrimSpace(in.CustomerName),
		LocationID:  strings.TrimSpace(in.LocationID),
	}, in.Lines)
}

// CreateTransfer crea un traslado READY entre dos ubicaciones distintas.
func (uc *DocumentUseCase) CreateTransfer(ctx context.Context, in dto.CreateTransferRequest) (*dto.DocumentResponse, error) {
	return uc.create(ctx, &entity.Document{
		Kind:           entity.KindTransfer,
		FromLocationID: strings.TrimSpace(in.FromLocationID),
		ToLocationID:   strings.TrimSpace(in.ToLocationID),
	}, in.Lines)
}

// CreateAdjustment crea un ajuste READY; cada línea lleva la cantidad contada en LocationID.
func (uc *DocumentUseCase) CreateAdjustment(ctx context.Context, in dto.CreateAdjustmentRequest) (*dto.DocumentResponse, error) {
	return uc.create(ctx, &entity.Document{
		Kind:       entity.KindAdjustment,
		Reason:     strings.TrimSpace(in.Reason),
		LocationID: strings.TrimSpace(in.LocationID),
	}, in.Lines)
}

// Get obtiene un documento por tipo e ID.
func (uc *DocumentUseCase) Get(ctx context.Context, kind entity.DocumentKind, id string) (*dto.DocumentResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrValidation, kind)
	}
	var out *dto.DocumentResponse
	err := uc.txRunner.View(ctx, func(repos repository.Repos) error {
		doc, err := getDocument(repos, kind, id)
		if err != nil {
			return err
		}
		resp := dto.DocumentFromEntity(doc)
		out = &resp
		return nil
	})
	return out, err
}

// List lista los documentos de un tipo. status "" = todos, "PENDING" = ni DONE ni CANCELED,
// cualquier otro valor filtra por estado exacto.
func (uc *DocumentUseCase) List(ctx context.Context, kind entity.DocumentKind, status string) (*dto.DocumentListResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrValidation, kind)
	}
	status = strings.ToUpper(strings.TrimSpace(status))
	items := make([]dto.DocumentResponse, 0)
	err := uc.txRunner.View(ctx, func(repos repository.Repos) error {
		docs, err := repos.Documents().List(kind)
		if err != nil {
			return err
		}
		for _, d := range docs {
			switch {
			case status == "":
			case status == StatusPending:
				if !d.IsPending() {
					continue
				}
			case d.Status != status:
				continue
			}
			items = append(items, dto.DocumentFromEntity(d))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.DocumentListResponse{Items: items, Total: len(items)}, nil
}

// create valida la cabecera y las líneas, asigna identidades y referencia, y persiste en READY.
func (uc *DocumentUseCase) create(ctx context.Context, doc *entity.Document, lines []dto.LineRequest) (*dto.DocumentResponse, error) {
	if err := validateHeader(doc); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos una línea", domain.ErrValidation)
	}
	doc.Lines = make([]entity.DocumentLine, 0, len(lines))
	for i, l := range lines {
		productID := strings.TrimSpace(l.ProductID)
		if productID == "" {
			return nil, fmt.Errorf("%w: línea %d: product_id es requerido", domain.ErrValidation, i+1)
		}
		if l.Quantity < 0 {
			return nil, fmt.Errorf("%w: línea %d: la cantidad no puede ser negativa", domain.ErrValidation, i+1)
		}
		doc.Lines = append(doc.Lines, entity.DocumentLine{
			ID:        uuid.New().String(),
			ProductID: productID,
			Quantity:  l.Quantity,
		})
	}
	doc.ID = uuid.New().String()
	doc.Status = entity.StatusReady
	doc.CreatedAt = uc.clock().UTC()

	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		for _, locID := range documentLocations(doc) {
			loc, err := repos.Locations().GetByID(locID)
			if err != nil {
				return err
			}
			if loc == nil {
				return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, locID)
			}
		}
		for i, l := range doc.Lines {
			p, err := repos.Products().GetByID(l.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: línea %d: producto %s", domain.ErrNotFound, i+1, l.ProductID)
			}
		}
		seq, err := repos.Documents().NextSequence(doc.Kind)
		if err != nil {
			return err
		}
		doc.Reference = fmt.Sprintf("%s%05d", doc.Kind.ReferencePrefix(), seq)
		return repos.Documents().Create(doc)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("kind", string(doc.Kind)).
		Str("document_id", doc.ID).
		Str("reference", doc.Reference).
		Int("lines", len(doc.Lines)).
		Msg("documento creado")
	out := dto.DocumentFromEntity(doc)
	return &out, nil
}

// Validate aplica el documento al Ledger y lo pasa a DONE.
// Todas las líneas se aplican en una sola unidad de trabajo: si una falla (p. ej. stock insuficiente)
// no queda ningún movimiento aplicado y el documento sigue READY.
func (uc *DocumentUseCase) Validate(ctx context.Context, kind entity.DocumentKind, id string) (*dto.DocumentResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrValidation, kind)
	}
	var (
		doc   *entity.Document
		moves []*entity.StockMove
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		doc, err = getDocument(repos, kind, id)
		if err != nil {
			return err
		}
		switch doc.Status {
		case entity.StatusDone:
			return fmt.Errorf("%w: %s", domain.ErrAlreadyValidated, doc.Reference)
		case entity.StatusCanceled:
			return fmt.Errorf("%w: el documento %s está cancelado", domain.ErrConflict, doc.Reference)
		}

		for i, line := range doc.Lines {
			move, ok, err := planLine(repos, doc, line)
			if err != nil {
				return fmt.Errorf("línea %d: %w", i+1, err)
			}
			if !ok {
				continue
			}
			mv, err := uc.ledger.ApplyMoveInTx(repos, move)
			if err != nil {
				return fmt.Errorf("línea %d: %w", i+1, err)
			}
			moves = append(moves, mv)
		}

		now := uc.clock().UTC()
		doc.Status = entity.StatusDone
		doc.ValidatedAt = &now
		return repos.Documents().Update(doc)
	})
	if err != nil {
		reason := "error"
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			reason = "insufficient_stock"
			uc.metrics.MoveRejected(kind.DocumentType(), reason)
		case errors.Is(err, domain.ErrAlreadyValidated):
			reason = "already_validated"
		}
		uc.metrics.DocumentRejected(string(kind), reason)
		uc.log.Warn().Err(err).Str("kind", string(kind)).Str("document_id", id).Msg("validación rechazada")
		return nil, err
	}

	uc.ledger.Committed(moves...)
	uc.metrics.DocumentValidated(string(kind))
	uc.log.Info().
		Str("kind", string(kind)).
		Str("reference", doc.Reference).
		Int("moves", len(moves)).
		Msg("documento validado")
	out := dto.DocumentFromEntity(doc)
	return &out, nil
}

// planLine traduce una línea a la llamada al Ledger según el tipo de documento.
// ok=false: la línea no genera movimiento (cantidad 0 o ajuste sin diferencia).
// El ajuste lee el stock de sistema dentro de la misma unidad de trabajo, así ve el efecto de
// líneas anteriores del mismo documento sobre el mismo producto.
func planLine(repos repository.Repos, doc *entity.Document, line entity.DocumentLine) (inventory.MoveInput, bool, error) {
	move := inventory.MoveInput{
		ProductID:    line.ProductID,
		DocumentType: doc.Kind.DocumentType(),
		DocumentID:   doc.ID,
		Quantity:     line.Quantity,
	}
	switch doc.Kind {
	case entity.KindReceipt:
		move.ToLocationID = doc.LocationID
	case entity.KindDelivery:
		move.FromLocationID = doc.LocationID
	case entity.KindTransfer:
		move.FromLocationID, move.ToLocationID = doc.FromLocationID, doc.ToLocationID
	case entity.KindAdjustment:
		system, err := inventory.StockLevelInTx(repos, line.ProductID, doc.LocationID)
		if err != nil {
			return move, false, err
		}
		in, out := stockrules.AdjustmentDelta(system, line.Quantity)
		switch {
		case in > 0:
			move.ToLocationID, move.Quantity = doc.LocationID, in
		case out > 0:
			move.FromLocationID, move.Quantity = doc.LocationID, out
		default:
			return move, false, nil
		}
		return move, true, nil
	}
	return move, move.Quantity > 0, nil
}

func getDocument(repos repository.Repos, kind entity.DocumentKind, id string) (*entity.Document, error) {
	doc, err := repos.Documents().GetByID(kind, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, id)
	}
	return doc, nil
}

func validateHeader(doc *entity.Document) error {
	switch doc.Kind {
	case entity.KindReceipt, entity.KindDelivery, entity.KindAdjustment:
		if strings.TrimSpace(doc.LocationID) == "" {
			return fmt.Errorf("%w: location_id es requerido", domain.ErrValidation)
		}
	case entity.KindTransfer:
		if strings.TrimSpace(doc.FromLocationID) == "" || strings.TrimSpace(doc.ToLocationID) == "" {
			return fmt.Errorf("%w: from_location_id y to_location_id son requeridos", domain.ErrValidation)
		}
		if doc.FromLocationID == doc.ToLocationID {
			return fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: tipo de documento %q", domain.ErrValidation, doc.Kind)
	}
	return nil
}

func documentLocations(doc *entity.Document) []string {
	if doc.Kind == entity.KindTransfer {
		return []string{doc.FromLocationID, doc.ToLocationID}
	}
	return []string{doc.LocationID}
}
