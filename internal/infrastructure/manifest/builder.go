// Package manifest genera el manifiesto XML de una caja recibida.
package manifest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/stockroom-api/internal/application/ports"
)

// Namespace del manifiesto.
const Namespace = "urn:stockroom:box-manifest:1"

var _ ports.ManifestBuilder = (*Builder)(nil)

// Builder construye el XML con etree y calcula el SHA-256 sobre su forma canónica (C14N),
// de modo que dos manifiestos con el mismo contenido tienen el mismo digest.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

// BuildManifest devuelve el XML y el digest hexadecimal.
func (b *Builder) BuildManifest(label ports.BoxLabel) ([]byte, string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("BoxManifest")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("code", label.BoxCode)
	root.CreateAttr("status", label.Status)

	header := root.CreateElement("Header")
	header.CreateElement("Supplier").SetText(label.Supplier)
	header.CreateElement("PONumber").SetText(label.PONumber)
	header.CreateElement("DONumber").SetText(label.DONumber)
	header.CreateElement("ReceivedDate").SetText(label.ReceivedDate.UTC().Format(time.RFC3339))
	header.CreateElement("ReceivedBy").SetText(label.ReceivedBy)
	if label.StoreName != "" {
		header.CreateElement("Store").SetText(label.StoreName)
	}

	lines := root.CreateElement("Lines")
	lines.CreateAttr("count", strconv.Itoa(len(label.Lines)))
	lines.CreateAttr("total", strconv.FormatInt(label.TotalItems, 10))
	for i, l := range label.Lines {
		line := lines.CreateElement("Line")
		line.CreateAttr("n", strconv.Itoa(i+1))
		line.CreateElement("SKU").SetText(l.SKU)
		line.CreateElement("QRCode").SetText(l.QRCode)
		if l.Size != "" {
			line.CreateElement("Size").SetText(l.Size)
		}
		if l.Color != "" {
			line.CreateElement("Color").SetText(l.Color)
		}
		line.CreateElement("Quantity").SetText(strconv.FormatInt(l.Quantity, 10))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("manifest: serializar XML: %w", err)
	}

	// El digest se calcula sobre el elemento raíz; la declaración XML no forma parte de la forma canónica.
	body := etree.NewDocument()
	body.SetRoot(root.Copy())
	rootBytes, err := body.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("manifest: serializar raíz: %w", err)
	}
	digest, err := Digest(rootBytes)
	if err != nil {
		return nil, "", err
	}
	return out, digest, nil
}

// Digest SHA-256 hexadecimal de la forma canónica del documento.
func Digest(data []byte) (string, error) {
	canonical, err := canonicalize(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	out, err := c14n.Canonicalize(dec)
	if err != nil {
		return nil, fmt.Errorf("manifest: canonicalizar XML: %w", err)
	}
	return out, nil
}
