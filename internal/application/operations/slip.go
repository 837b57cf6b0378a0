package operations

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// SlipLine línea de un documento lista para imprimir.
type SlipLine struct {
	SKU         string
	ProductName string
	UnitMeasure string
	Quantity    int64
}

// SlipData datos que necesita el comprobante impreso de un documento.
type SlipData struct {
	Document    *entity.Document
	Source      string // "CODE · Nombre" de la ubicación origen, vacío si no aplica
	Destination string
	Lines       []SlipLine
}

// SlipPDFGenerator puerto para renderizar el comprobante de un documento.
type SlipPDFGenerator interface {
	GenerateDocumentSlip(ctx context.Context, slip *SlipData) ([]byte, error)
}

// Slip reúne el documento con los nombres de productos y ubicaciones en una vista consistente.
func (uc *DocumentUseCase) Slip(ctx context.Context, kind entity.DocumentKind, id string) (*SlipData, error) {
	var out *SlipData
	err := uc.txRunner.View(ctx, func(repos repository.Repos) error {
		doc, err := getDocument(repos, kind, id)
		if err != nil {
			return err
		}
		slip := &SlipData{Document: doc, Lines: make([]SlipLine, 0, len(doc.Lines))}
		var source, destination string
		switch doc.Kind {
		case entity.KindReceipt, entity.KindAdjustment:
			destination = doc.LocationID
		case entity.KindDelivery:
			source = doc.LocationID
		case entity.KindTransfer:
			source, destination = doc.FromLocationID, doc.ToLocationID
		}
		if slip.Source, err = locationLabel(repos, source); err != nil {
			return err
		}
		if slip.Destination, err = locationLabel(repos, destination); err != nil {
			return err
		}
		for _, l := range doc.Lines {
			line := SlipLine{Quantity: l.Quantity, ProductName: l.ProductID}
			p, err := repos.Products().GetByID(l.ProductID)
			if err != nil {
				return err
			}
			if p != nil {
				line.SKU, line.ProductName, line.UnitMeasure = p.SKU, p.Name, p.UnitMeasure
			}
			slip.Lines = append(slip.Lines, line)
		}
		out = slip
		return nil
	})
	return out, err
}

// locationLabel devuelve "CODE · Nombre"; vacío si id es vacío, el ID si la ubicación ya no existe.
func locationLabel(repos repository.Repos, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	loc, err := repos.Locations().GetByID(id)
	if err != nil {
		return "", err
	}
	if loc == nil {
		return id, nil
	}
	return loc.Code + " · " + loc.Name, nil
}
