// Package cache implementa la caché de resolución QR sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stockroom-api/internal/application/ports"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/pkg/config"
)

const keyPrefix = "stockroom:qr:"

var _ ports.VariantCache = (*VariantCache)(nil)

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// VariantCache guarda la variante activa por código QR con TTL.
type VariantCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewVariantCache(client redis.Cmdable, ttl time.Duration) *VariantCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &VariantCache{client: client, ttl: ttl}
}

func cacheKey(qrCode string) string { return keyPrefix + qrCode }

type cachedVariant struct {
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

func encode(v *entity.ItemVariant) ([]byte, error) {
	return json.Marshal(cachedVariant{
		ID: v.ID, ItemID: v.ItemID, Size: v.Size, Color: v.Color, QRCode: v.QRCode,
		SKU: v.SKU, Status: v.Status, CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt,
	})
}

func decode(data []byte) (*entity.ItemVariant, error) {
	var c cachedVariant
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &entity.ItemVariant{
		ID: c.ID, ItemID: c.ItemID, Size: c.Size, Color: c.Color, QRCode: c.QRCode,
		SKU: c.SKU, Status: c.Status, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}, nil
}

// Get devuelve (nil, false, nil) si no hay entrada.
func (c *VariantCache) Get(ctx context.Context, qrCode string) (*entity.ItemVariant, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(qrCode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	v, err := decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("redis decode: %w", err)
	}
	return v, true, nil
}

// Set ignora variantes inactivas.
func (c *VariantCache) Set(ctx context.Context, v *entity.ItemVariant) error {
	if !v.IsActive() {
		return nil
	}
	data, err := encode(v)
	if err != nil {
		return fmt.Errorf("redis encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(v.QRCode), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *VariantCache) Invalidate(ctx context.Context, qrCode string) error {
	if err := c.client.Del(ctx, cacheKey(qrCode)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
