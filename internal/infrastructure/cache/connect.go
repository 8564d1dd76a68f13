// Package cache contiene los adaptadores Redis: sesiones por workspace, overrides locales
// de tiendas/vendedores y el canal de difusión pub/sub entre instancias.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix prefijo de todas las claves de la aplicación.
const DefaultPrefix = "dailybooks"

// Connect inicializa el cliente desde una URL redis:// (o rediss://) o un host:port
// y verifica la conexión con un ping corto.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type keys struct {
	prefix string
}

func newKeys(prefix string) keys {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return keys{prefix: prefix}
}

func (k keys) session(workspaceID string) string {
	return k.prefix + ":session:" + workspaceID
}

func (k keys) shopMeta(shopID string) string {
	return k.prefix + ":overrides:shop:" + shopID
}

func (k keys) salesmenMeta(shopID string) string {
	return k.prefix + ":overrides:salesmen:" + shopID
}

func (k keys) channel(name string) string {
	return k.prefix + ":broadcast:" + name
}
