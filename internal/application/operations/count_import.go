package operations

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// CountSheetParser lee una planilla de conteo físico (xlsx) y devuelve las líneas contadas
// de la ubicación. Implementado en infrastructure/excel.
type CountSheetParser interface {
	ParseCountSheet(data []byte) (locationID string, lines []dto.LineRequest, err error)
}

// ImportCount crea un ajuste a partir de una planilla de conteo. Si validate es true lo valida
// a continuación; si la validación falla el ajuste queda creado en READY y se devuelve junto al error.
func (uc *DocumentUseCase) ImportCount(
	ctx context.Context,
	parser CountSheetParser,
	data []byte,
	reason string,
	validate bool,
) (*dto.DocumentResponse, error) {
	locationID, lines, err := parser.ParseCountSheet(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if reason == "" {
		reason = "Conteo físico (planilla)"
	}
	doc, err := uc.CreateAdjustment(ctx, dto.CreateAdjustmentRequest{
		LocationID: locationID,
		Reason:     reason,
		Lines:      lines,
	})
	if err != nil || !validate {
		return doc, err
	}
	validated, err := uc.Validate(ctx, entity.KindAdjustment, doc.ID)
	if err != nil {
		return doc, err
	}
	return validated, nil
}
