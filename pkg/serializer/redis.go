package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NVIDIA/dqgate/pkg/defaults"
)

// RedisWriter stores documents under a Redis key.
type RedisWriter struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	format Format
}

// NewRedisWriter parses redis://host:port/db?key=name[&ttl=24h]. The key
// parameter is required. A zero ttl keeps the key forever.
func NewRedisWriter(uri string, format Format) (*RedisWriter, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URI: %w", err)
	}

	q := u.Query()
	key := q.Get("key")
	if key == "" {
		return nil, fmt.Errorf("invalid Redis URI %q: missing key parameter", u.Redacted())
	}

	var ttl time.Duration
	if v := q.Get("ttl"); v != "" {
		if ttl, err = time.ParseDuration(v); err != nil || ttl < 0 {
			return nil, fmt.Errorf("invalid Redis URI %q: bad ttl %q", u.Redacted(), v)
		}
	}

	q.Del("key")
	q.Del("ttl")
	u.RawQuery = q.Encode()

	opts, err := redis.ParseURL(u.String())
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URI %q: %w", u.Redacted(), err)
	}

	if format.IsUnknown() {
		format = FormatJSON
	}

	return &RedisWriter{
		client: redis.NewClient(opts),
		key:    key,
		ttl:    ttl,
		format: format,
	}, nil
}

// Serialize stores the encoded document.
func (w *RedisWriter) Serialize(ctx context.Context, data any) error {
	b, err := Marshal(w.format, data)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaults.RedisWriteTimeout)
	defer cancel()

	if err := w.client.Set(ctx, w.key, b, w.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write Redis key %q: %w", w.key, err)
	}
	slog.Debug("redis key written", "key", w.key, "bytes", len(b), "ttl", w.ttl)
	return nil
}

// Close closes the Redis connection pool.
func (w *RedisWriter) Close() error {
	return w.client.Close()
}
