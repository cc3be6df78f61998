package kv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-adoption-platform/internal/config"
	"pet-adoption-platform/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// cmdable es el subconjunto de comandos que usa el adaptador; permite
// reemplazar el cliente real en tests.
type cmdable interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	MSet(ctx context.Context, values ...any) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Open conecta a Redis y verifica la conexión con PING.
func Open(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	pingCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info("redis connected", map[string]any{"addr": opts.Addr, "db": opts.DB, "namespace": cfg.Namespace})

	s := newStore(client, cfg.Namespace)
	s.closer = client.Close
	return s, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	var opts *redis.Options
	if url := strings.TrimSpace(cfg.URL); url != "" {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		addr := strings.TrimSpace(cfg.Address)
		if addr == "" {
			return nil, fmt.Errorf("redis address or url required")
		}
		opts = &redis.Options{
			Addr:     addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	if cfg.Timeout > 0 {
		opts.DialTimeout = cfg.Timeout
		opts.ReadTimeout = cfg.Timeout
		opts.WriteTimeout = cfg.Timeout
	}
	return opts, nil
}
