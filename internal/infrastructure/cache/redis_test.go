package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

func TestEncodeDecode(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	v := &entity.ItemVariant{
		ID: "v1", ItemID: "i1", Size: "M", Color: "NAVY", QRCode: "INV-ABCDEF012345",
		SKU: "TSH-01-M-NAVY", Status: entity.StatusActive, CreatedAt: created, UpdatedAt: created,
	}

	data, err := encode(v)
	require.NoError(t, err)

	got, err := decode(data)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestCacheKeyAndDefaults(t *testing.T) {
	assert.Equal(t, "stockroom:qr:INV-ABCDEF012345", cacheKey("INV-ABCDEF012345"))
	c := NewVariantCache(nil, 0)
	assert.Equal(t, 5*time.Minute, c.ttl)
}
