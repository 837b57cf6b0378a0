package entity

import "time"

// Estados de un documento de operación.
// En el alcance actual solo READY (al crear) y DONE (al validar) son alcanzables;
// CANCELED queda reservado.
const (
	StatusDraft    = "DRAFT"
	StatusWaiting  = "WAITING"
	StatusReady    = "READY"
	StatusDone     = "DONE"
	StatusCanceled = "CANCELED"
)

// DocumentKind identifica el flujo de un documento.
type DocumentKind string

const (
	KindReceipt    DocumentKind = "receipt"
	KindDelivery   DocumentKind = "delivery"
	KindTransfer   DocumentKind = "transfer"
	KindAdjustment DocumentKind = "adjustment"
)

// DocumentType devuelve el tipo con el que se registran los movimientos del documento.
func (k DocumentKind) DocumentType() string {
	switch k {
	case KindReceipt:
		return DocumentTypeReceipt
	case KindDelivery:
		return DocumentTypeDelivery
	case KindTransfer:
		return DocumentTypeTransfer
	case KindAdjustment:
		return DocumentTypeAdjustment
	}
	return ""
}

// ReferencePrefix prefijo de la referencia legible (WH/IN/00001, ...).
func (k DocumentKind) ReferencePrefix() string {
	switch k {
	case KindReceipt:
		return "WH/IN/"
	case KindDelivery:
		return "WH/OUT/"
	case KindTransfer:
		return "WH/INT/"
	case KindAdjustment:
		return "WH/ADJ/"
	}
	return ""
}

// Valid indica si el tipo es uno de los cuatro flujos conocidos.
func (k DocumentKind) Valid() bool {
	return k.DocumentType() != ""
}

// Document representa un documento de operación (recepción, entrega, traslado o ajuste).
// Los campos de cabecera dependen del tipo:
//   - Receipt:    PartnerName (proveedor), LocationID destino
//   - Delivery:   PartnerName (cliente), LocationID origen
//   - Transfer:   FromLocationID, ToLocationID
//   - Adjustment: LocationID, Reason
type Document struct {
	ID             string
	Kind           DocumentKind
	Reference      string
	PartnerName    string
	Reason         string
	LocationID     string
	FromLocationID string
	ToLocationID   string
	Status         string
	Lines          []DocumentLine
	CreatedAt      time.Time
	ValidatedAt    *time.Time
}

// DocumentLine línea de un documento. Quantity es la cantidad recibida, entregada, trasladada
// o contada según el tipo del documento.
type DocumentLine struct {
	ID        string
	ProductID string
	Quantity  int64
}

// IsPending indica si el documento cuenta como pendiente (ni DONE ni CANCELED).
func (d *Document) IsPending() bool {
	return d.Status != StatusDone && d.Status != StatusCanceled
}
