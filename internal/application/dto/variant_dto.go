package dto

import (
	"time"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// CreateVariantRequest body para POST /api/items/:id/variants.
type CreateVariantRequest struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	SKU   string `json:"sku"`
}

// VariantResponse salida de una variante.
type VariantResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	QRCode    string    `json:"qr_code"`
	SKU       string    `json:"sku"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToVariantResponse mapea la entidad.
func ToVariantResponse(v *entity.ItemVariant) *VariantResponse {
	if v == nil {
		return nil
	}
	return &VariantResponse{
		ID:        v.ID,
		ItemID:    v.ItemID,
		Size:      v.Size,
		Color:     v.Color,
		QRCode:    v.QRCode,
		SKU:       v.SKU,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// ToVariantList mapea una lista de variantes.
func ToVariantList(list []*entity.ItemVariant) []VariantResponse {
	out := make([]VariantResponse, 0, len(list))
	for _, v := range list {
		out = append(out, *ToVariantResponse(v))
	}
	return out
}
