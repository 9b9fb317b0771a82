// Package variant contiene las reglas puras de identidad de variantes: token QR y SKU.
package variant

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// QRPrefix prefijo de todos los tokens QR de inventario.
const QRPrefix = "INV-"

const qrTokenLen = 12

// CodeGenerator genera tokens QR opacos. Inyectable para pruebas de colisión.
type CodeGenerator func() string

// NewQRCode genera "INV-" + 12 caracteres hexadecimales en mayúscula.
func NewQRCode() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return QRPrefix + strings.ToUpper(hex[:qrTokenLen])
}

var upper = cases.Upper(language.Und)

// BuildSKU arma ITEMCODE-SIZE-COLOR en mayúsculas y sin espacios.
// Partes vacías se omiten.
func BuildSKU(itemCode, size, color string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{itemCode, size, color} {
		p = strings.Join(strings.Fields(p), "")
		if p == "" {
			continue
		}
		parts = append(parts, upper.String(p))
	}
	return strings.Join(parts, "-")
}

// Normalize recorta espacios de talla/color antes de comparar combinaciones.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}
