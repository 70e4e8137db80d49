package cache_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/infrastructure/cache"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "seller:42", cache.Key(42))
	assert.Equal(t, "seller:42:gen", cache.GenerationKey(42))
}

// Con Redis caído la caché degrada a miss y solo deja warnings en el log.
func TestSellerCache_RedisCaidoEsMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	var buf bytes.Buffer
	c := cache.NewSellerCache(client, time.Minute, zerolog.New(&buf))
	ctx := context.Background()

	got, gen, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Equal(t, int64(-1), gen)

	c.Set(ctx, &dto.SellerResponse{ID: 1, Name: "Ana", Email: "ana@x.com"}, 0)
	c.Invalidate(ctx, 1)

	assert.Contains(t, buf.String(), "lectura de caché fallida")
	assert.Contains(t, buf.String(), "escritura de caché fallida")
	assert.Contains(t, buf.String(), "invalidación de caché fallida")
	assert.Contains(t, buf.String(), `"seller_id":1`)
}
