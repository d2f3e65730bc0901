// Package stats counts visits per route.
package stats

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/arcadehub/arcade"
)

// Counter stores visit counts keyed by route name.
type Counter interface {
	Incr(ctx context.Context, name string) error
	Counts(ctx context.Context, names ...string) (map[string]int64, error)
}

type Memory struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewMemory() *Memory {
	return &Memory{counts: make(map[string]int64)}
}

func (m *Memory) Incr(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[name]++
	return nil
}

func (m *Memory) Counts(_ context.Context, names ...string) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(names))
	for _, name := range names {
		out[name] = m.counts[name]
	}
	return out, nil
}

const keyPrefix = "arcade:visits:"

// Redis keeps counts in redis so they survive restarts and are shared
// between instances.
type Redis struct {
	client *redis.Client
}

// NewRedis connects with opts and pings the server.
func NewRedis(ctx context.Context, opts *redis.Options) (*Redis, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Incr(ctx context.Context, name string) error {
	if err := r.client.Incr(ctx, keyPrefix+name).Err(); err != nil {
		return fmt.Errorf("incr visits of %s: %w", name, err)
	}
	return nil
}

func (r *Redis) Counts(ctx context.Context, names ...string) (map[string]int64, error) {
	out := make(map[string]int64, len(names))
	if len(names) == 0 {
		return out, nil
	}
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = keyPrefix + name
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get visits: %w", err)
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			out[names[i]] = 0
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse visits of %s: %w", names[i], err)
		}
		out[names[i]] = n
	}
	return out, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Middleware counts every successful visit of a route. Counting failures are
// logged and do not affect the response.
func Middleware(counter Counter, logger *zap.Logger) arcade.MiddlewareFunc {
	return func(next http.Handler, route *arcade.Route) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if r.Method != http.MethodGet || ww.Status() >= http.StatusBadRequest {
				return
			}
			if err := counter.Incr(r.Context(), route.Name); err != nil {
				logger.Warn("count visit", zap.String("route", route.Name), zap.Error(err))
			}
		})
	}
}
