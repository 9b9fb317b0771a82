package dto

import (
	"time"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// BoxContentRequest línea de contenido: variant_id, o item_id + size/color.
type BoxContentRequest struct {
	VariantID string `json:"variant_id"`
	ItemID    string `json:"item_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int64  `json:"quantity"`
}

// CreateBoxRequest body para POST /api/boxes.
type CreateBoxRequest struct {
	Code          string              `json:"box_code"`
	Supplier      string              `json:"supplier"`
	PONumber      string              `json:"po_number"`
	DONumber      string              `json:"do_number"`
	InvoiceNumber string              `json:"invoice_number"`
	Notes         string              `json:"notes"`
	ReceivedDate  *time.Time          `json:"received_date"`
	Contents      []BoxContentRequest `json:"contents"`
}

// CheckInRequest body para PUT /api/boxes/:id/checkin.
type CheckInRequest struct {
	StoreID         string `json:"store_id"`
	LocationInStore string `json:"location_in_store"`
}

// BoxContentResponse línea de contenido.
type BoxContentResponse struct {
	ID        string `json:"id"`
	VariantID string `json:"variant_id"`
	ItemID    string `json:"item_id"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int64  `json:"quantity"`
}

// BoxResponse salida de una caja.
type BoxResponse struct {
	ID              string               `json:"id"`
	Code            string               `json:"box_code"`
	Status          string               `json:"status"`
	Supplier        string               `json:"supplier,omitempty"`
	PONumber        string               `json:"po_number,omitempty"`
	DONumber        string               `json:"do_number,omitempty"`
	InvoiceNumber   string               `json:"invoice_number,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	StoreID         string               `json:"store_id,omitempty"`
	LocationInStore string               `json:"location_in_store,omitempty"`
	ReceivedDate    time.Time            `json:"received_date"`
	ReceivedBy      string               `json:"received_by"`
	CheckedInAt     *time.Time           `json:"checked_in_at,omitempty"`
	CheckedInBy     string               `json:"checked_in_by,omitempty"`
	TotalItems      int64                `json:"total_items"`
	Contents        []BoxContentResponse `json:"contents"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// BoxListResponse lista paginada de cajas.
type BoxListResponse struct {
	Items []BoxResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// ToBoxResponse mapea la entidad.
func ToBoxResponse(b *entity.Box) *BoxResponse {
	if b == nil {
		return nil
	}
	contents := make([]BoxContentResponse, 0, len(b.Contents))
	for _, c := range b.Contents {
		contents = append(contents, BoxContentResponse{
			ID:        c.ID,
			VariantID: c.VariantID,
			ItemID:    c.ItemID,
			Size:      c.Size,
			Color:     c.Color,
			Quantity:  c.Quantity,
		})
	}
	return &BoxResponse{
		ID:              b.ID,
		Code:            b.Code,
		Status:          b.Status,
		Supplier:        b.Supplier,
		PONumber:        b.PONumber,
		DONumber:        b.DONumber,
		InvoiceNumber:   b.InvoiceNumber,
		Notes:           b.Notes,
		StoreID:         b.StoreID,
		LocationInStore: b.LocationInStore,
		ReceivedDate:    b.ReceivedDate,
		ReceivedBy:      b.ReceivedBy,
		CheckedInAt:     b.CheckedInAt,
		CheckedInBy:     b.CheckedInBy,
		TotalItems:      b.TotalItems(),
		Contents:        contents,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// ToBoxList mapea una lista de cajas.
func ToBoxList(list []*entity.Box, limit, offset int) *BoxListResponse {
	items := make([]BoxResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *ToBoxResponse(b))
	}
	return &BoxListResponse{Items: items, Page: PageResponse{Limit: limit, Offset: offset}}
}
