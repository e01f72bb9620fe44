package store

import (
	"bytes"
	"context"
	stderrors "errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/brainwave/pkg/cache"
	"github.com/matzehuels/brainwave/pkg/errors"
	pkgio "github.com/matzehuels/brainwave/pkg/io"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// RedisConfig configures a [RedisStore].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "brainwave:"
	Timeout  time.Duration // Per-operation timeout, default 5s
}

// RedisStore keeps documents in Redis so several server instances can share
// them. Each document lives under <prefix>doc:<name>; the set <prefix>docs
// indexes the names.
type RedisStore struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	s := NewRedisStoreFromClient(client, cfg.Prefix, cfg.Timeout)

	err := cache.RetryWithBackoff(ctx, func() error {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		return s.wrap(client.Ping(ctx).Err(), "ping %s", cfg.Addr)
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return s, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client redis.UniversalClient, prefix string, timeout time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "brainwave:"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RedisStore{client: client, prefix: prefix, timeout: timeout}
}

func (s *RedisStore) docKey(name string) string { return s.prefix + "doc:" + name }
func (s *RedisStore) indexKey() string          { return s.prefix + "docs" }

func (s *RedisStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// wrap classifies a client error. Connection failures and timeouts are
// retryable; the caller sees them as NETWORK_ERROR or TIMEOUT.
func (s *RedisStore) wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, cache.Retryable(err), format, args...)
	}
	if stderrors.Is(err, context.Canceled) {
		return errors.Wrap(errors.ErrCodeNetwork, err, format, args...)
	}
	return errors.Wrap(errors.ErrCodeNetwork, cache.Retryable(err), format, args...)
}

func (s *RedisStore) Load(ctx context.Context, name string) (*mindmap.Data, error) {
	if err := errors.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	var body []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		b, err := s.client.Get(ctx, s.docKey(name)).Bytes()
		if stderrors.Is(err, redis.Nil) {
			body = nil
			return nil
		}
		body = b
		return s.wrap(err, "get document %s", name)
	})
	if err != nil || body == nil {
		return nil, err
	}
	return pkgio.ReadData(bytes.NewReader(body))
}

func (s *RedisStore) Save(ctx context.Context, name string, data mindmap.Data) error {
	if err := errors.ValidateDocumentName(name); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := pkgio.WriteData(data, &buf); err != nil {
		return err
	}
	return cache.RetryWithBackoff(ctx, func() error {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.docKey(name), buf.Bytes(), 0)
			pipe.SAdd(ctx, s.indexKey(), name)
			return nil
		})
		return s.wrap(err, "set document %s", name)
	})
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	return cache.RetryWithBackoff(ctx, func() error {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, s.docKey(name))
			pipe.SRem(ctx, s.indexKey(), name)
			return nil
		})
		return s.wrap(err, "delete document %s", name)
	})
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := cache.RetryWithBackoff(ctx, func() error {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		var err error
		names, err = s.client.SMembers(ctx, s.indexKey()).Result()
		return s.wrap(err, "list documents")
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
