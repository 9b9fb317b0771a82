package receiving

import (
	"context"
	"errors"

	"github.com/jhoicas/stockroom-api/internal/application/ports"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// DocumentsUseCase genera los documentos de una caja: etiqueta PDF con QR y manifiesto XML.
type DocumentsUseCase struct {
	boxes     *BoxUseCase
	variants  repository.VariantRepository
	stores    repository.StoreRepository
	labels    ports.LabelRenderer
	manifests ports.ManifestBuilder
}

// NewDocumentsUseCase construye el caso de uso de documentos.
func NewDocumentsUseCase(
	boxes *BoxUseCase,
	variants repository.VariantRepository,
	stores repository.StoreRepository,
	labels ports.LabelRenderer,
	manifests ports.ManifestBuilder,
) *DocumentsUseCase {
	return &DocumentsUseCase{boxes: boxes, variants: variants, stores: stores, labels: labels, manifests: manifests}
}

// Label devuelve el PDF de la etiqueta de la caja.
func (uc *DocumentsUseCase) Label(ctx context.Context, boxID string) ([]byte, error) {
	if uc.labels == nil {
		return nil, errors.New("generador de etiquetas no configurado")
	}
	data, err := uc.labelData(ctx, boxID)
	if err != nil {
		return nil, err
	}
	return uc.labels.RenderBoxLabel(*data)
}

// Manifest devuelve el manifiesto XML de la caja y el digest SHA-256 de su forma canónica.
func (uc *DocumentsUseCase) Manifest(ctx context.Context, boxID string) ([]byte, string, error) {
	if uc.manifests == nil {
		return nil, "", errors.New("generador de manifiestos no configurado")
	}
	data, err := uc.labelData(ctx, boxID)
	if err != nil {
		return nil, "", err
	}
	return uc.manifests.BuildManifest(*data)
}

func (uc *DocumentsUseCase) labelData(ctx context.Context, boxID string) (*ports.BoxLabel, error) {
	box, err := uc.boxes.GetBox(ctx, boxID)
	if err != nil {
		return nil, err
	}
	label := &ports.BoxLabel{
		BoxCode:      box.Code,
		Supplier:     box.Supplier,
		PONumber:     box.PONumber,
		DONumber:     box.DONumber,
		Status:       box.Status,
		ReceivedDate: box.ReceivedDate,
		ReceivedBy:   box.ReceivedBy,
		TotalItems:   box.TotalItems(),
	}
	if box.StoreID != "" {
		if s, err := uc.stores.GetByID(ctx, box.StoreID); err == nil && s != nil {
			label.StoreName = s.Name
		}
	}
	for _, c := range box.Contents {
		line := ports.BoxLabelLine{Size: c.Size, Color: c.Color, Quantity: c.Quantity}
		v, err := uc.variants.GetByID(ctx, c.VariantID)
		if err != nil {
			return nil, err
		}
		if v != nil {
			line.SKU, line.QRCode = v.SKU, v.QRCode
		}
		label.Lines = append(label.Lines, line)
	}
	return label, nil
}
