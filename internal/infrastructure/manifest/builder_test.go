package manifest

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/application/ports"
)

func sampleLabel() ports.BoxLabel {
	return ports.BoxLabel{
		BoxCode:      "BX-1001",
		Supplier:     "Textiles SA",
		PONumber:     "PO-77",
		Status:       "pending_checkin",
		ReceivedDate: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		ReceivedBy:   "ana",
		TotalItems:   50,
		Lines: []ports.BoxLabelLine{
			{SKU: "TSH-01-M-NAVY", QRCode: "INV-000000000001", Size: "M", Color: "NAVY", Quantity: 30},
			{SKU: "TSH-01-L-NAVY", QRCode: "INV-000000000002", Size: "L", Color: "NAVY", Quantity: 20},
		},
	}
}

func TestBuildManifest_Structure(t *testing.T) {
	out, digest, err := NewBuilder().BuildManifest(sampleLabel())
	require.NoError(t, err)
	assert.Len(t, digest, 64)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "BoxManifest", root.Tag)
	assert.Equal(t, "BX-1001", root.SelectAttrValue("code", ""))

	lines := root.FindElements("./Lines/Line")
	require.Len(t, lines, 2)
	assert.Equal(t, "30", lines[0].FindElement("Quantity").Text())
	assert.Equal(t, "50", root.FindElement("Lines").SelectAttrValue("total", ""))
}

func TestBuildManifest_DigestIsStable(t *testing.T) {
	_, d1, err := NewBuilder().BuildManifest(sampleLabel())
	require.NoError(t, err)
	_, d2, err := NewBuilder().BuildManifest(sampleLabel())
	require.NoError(t, err)
	assert.Equal(t, d1, d2)

	changed := sampleLabel()
	changed.Lines[0].Quantity = 31
	_, d3, err := NewBuilder().BuildManifest(changed)
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3)
}

func TestDigest_IgnoresAttributeOrder(t *testing.T) {
	a, err := Digest([]byte(`<m a="1" b="2"></m>`))
	require.NoError(t, err)
	b, err := Digest([]byte(`<m b="2" a="1"/>`))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
