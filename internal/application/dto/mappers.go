package dto

import "github.com/jhoicas/stockmaster-api/internal/domain/entity"

// ProductFromEntity mapea un producto a su DTO de salida.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Category:     p.Category,
		UnitMeasure:  p.UnitMeasure,
		ReorderLevel: p.ReorderLevel,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// LocationFromEntity mapea una ubicación.
func LocationFromEntity(l *entity.Location) LocationResponse {
	return LocationResponse{
		ID:          l.ID,
		WarehouseID: l.WarehouseID,
		Name:        l.Name,
		Code:        l.Code,
		CreatedAt:   l.CreatedAt,
	}
}

// StockMoveFromEntity mapea un movimiento; las ubicaciones y el documento ausentes salen como null.
func StockMoveFromEntity(m *entity.StockMove) StockMoveResponse {
	return StockMoveResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		FromLocationID: optional(m.FromLocationID),
		ToLocationID:   optional(m.ToLocationID),
		Quantity:       m.Quantity,
		DocumentType:   m.DocumentType,
		DocumentID:     optional(m.DocumentID),
		CreatedAt:      m.CreatedAt,
	}
}

// StockMovesFromEntities mapea una lista de movimientos.
func StockMovesFromEntities(moves []*entity.StockMove) []StockMoveResponse {
	out := make([]StockMoveResponse, 0, len(moves))
	for _, m := range moves {
		out = append(out, StockMoveFromEntity(m))
	}
	return out
}

// DocumentFromEntity mapea un documento con sus líneas.
func DocumentFromEntity(d *entity.Document) DocumentResponse {
	lines := make([]DocumentLineResponse, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, DocumentLineResponse{ID: l.ID, ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return DocumentResponse{
		ID:             d.ID,
		Kind:           string(d.Kind),
		Reference:      d.Reference,
		PartnerName:    d.PartnerName,
		Reason:         d.Reason,
		LocationID:     d.LocationID,
		FromLocationID: d.FromLocationID,
		ToLocationID:   d.ToLocationID,
		Status:         d.Status,
		Lines:          lines,
		CreatedAt:      d.CreatedAt,
		ValidatedAt:    d.ValidatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
