// Package redis guarda en Redis los tokens revocados por logout.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Garantias-api/internal/application/auth"
	"github.com/jhoicas/Garantias-api/pkg/config"
)

const keyPrefix = "garantias:token:revocado:"

var _ auth.TokenDenylist = (*TokenDenylist)(nil)

// TokenDenylist implementa auth.TokenDenylist. Cada jti revocado vive hasta que el token vence.
type TokenDenylist struct {
	client *goredis.Client
}

// NewClient abre el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewTokenDenylist construye la lista sobre un cliente ya abierto.
func NewTokenDenylist(client *goredis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// Revoke marca tokenID como revocado durante ttl.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := d.client.Set(ctx, keyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis: revocar token: %w", err)
	}
	return nil
}

// IsRevoked indica si tokenID fue revocado y su marca sigue vigente.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis: consultar token: %w", err)
	}
	return n > 0, nil
}

// Close cierra el cliente.
func (d *TokenDenylist) Close() error { return d.client.Close() }
