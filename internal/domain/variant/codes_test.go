package variant_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockroom-api/internal/domain/variant"
)

var qrPattern = regexp.MustCompile(`^INV-[0-9A-F]{12}$`)

func TestNewQRCode_Formato(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code := variant.NewQRCode()
		assert.Regexp(t, qrPattern, code)
		_, dup := seen[code]
		assert.False(t, dup, "QR repetido: %s", code)
		seen[code] = struct{}{}
	}
}

func TestBuildSKU(t *testing.T) {
	cases := []struct {
		name                  string
		item, size, color, sk string
	}{
		{"completo", "tsh-01", "m", "navy blue", "TSH-01-M-NAVYBLUE"},
		{"sin color", "boot", "42", "", "BOOT-42"},
		{"solo item", " glove ", "", "", "GLOVE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.sk, variant.BuildSKU(tc.item, tc.size, tc.color))
		})
	}
}
