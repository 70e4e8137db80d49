// Package cache caché de lectura de vendedores sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/application/usecase"
	"github.com/jhoicas/marketplace-api/pkg/config"
)

var _ usecase.SellerCache = (*SellerCache)(nil)

// SellerCache guarda SellerResponse en JSON bajo "seller:<id>" con TTL.
// "seller:<id>:gen" cuenta las invalidaciones; una escritura con generación vieja se descarta.
// Cualquier falla de Redis se registra y se trata como miss.
type SellerCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewClient abre el cliente Redis y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping Redis: %w", err)
	}
	return client, nil
}

// NewSellerCache construye la caché. ttl <= 0 usa 10 minutos.
func NewSellerCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *SellerCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SellerCache{client: client, ttl: ttl, log: log}
}

// Key clave Redis de un vendedor.
func Key(id int64) string {
	return fmt.Sprintf("seller:%d", id)
}

// GenerationKey contador de invalidaciones de un vendedor. No expira.
func GenerationKey(id int64) string {
	return fmt.Sprintf("seller:%d:gen", id)
}

// Escribe la entrada solo si la generación no cambió desde la lectura.
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// Get devuelve el vendedor cacheado y la generación vigente de su clave.
// Si Redis falla la generación es -1 y el Set posterior no escribe.
func (c *SellerCache) Get(ctx context.Context, id int64) (*dto.SellerResponse, int64, bool) {
	vals, err := c.client.MGet(ctx, Key(id), GenerationKey(id)).Result()
	if err != nil {
		c.log.Warn().Err(err).Int64("seller_id", id).Msg("lectura de caché fallida")
		return nil, -1, false
	}

	var gen int64
	if raw, ok := vals[1].(string); ok {
		if gen, err = strconv.ParseInt(raw, 10, 64); err != nil {
			c.log.Warn().Err(err).Int64("seller_id", id).Msg("generación de caché corrupta")
			return nil, -1, false
		}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, false
	}
	var seller dto.SellerResponse
	if err := json.Unmarshal([]byte(raw), &seller); err != nil {
		c.log.Warn().Err(err).Int64("seller_id", id).Msg("entrada de caché corrupta")
		return nil, gen, false
	}
	return &seller, gen, true
}

// Set guarda el vendedor con el TTL configurado si gen sigue vigente.
func (c *SellerCache) Set(ctx context.Context, seller *dto.SellerResponse, gen int64) {
	if seller == nil || gen < 0 {
		return
	}
	data, err := json.Marshal(seller)
	if err != nil {
		return
	}
	keys := []string{Key(seller.ID), GenerationKey(seller.ID)}
	stored, err := setIfGeneration.Run(ctx, c.client, keys, strconv.FormatInt(gen, 10), data, c.ttl.Milliseconds()).Int()
	if err != nil {
		c.log.Warn().Err(err).Int64("seller_id", seller.ID).Msg("escritura de caché fallida")
		return
	}
	if stored == 0 {
		c.log.Debug().Int64("seller_id", seller.ID).Int64("gen", gen).Msg("entrada obsoleta descartada")
	}
}

// Invalidate avanza la generación y borra la entrada tras un update o delete.
func (c *SellerCache) Invalidate(ctx context.Context, id int64) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(id))
		pipe.Del(ctx, Key(id))
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Int64("seller_id", id).Msg("invalidación de caché fallida")
	}
}
