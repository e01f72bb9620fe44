//go:build integration

package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("BRAINWAVE_REDIS_ADDR")
	if addr == "" {
		t.Skip("BRAINWAVE_REDIS_ADDR not set, skipping integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewRedisStore(ctx, RedisConfig{
		Addr:   addr,
		Prefix: fmt.Sprintf("brainwave-test-%d:", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("NewRedisStore() error: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("BRAINWAVE_MONGO_URI")
	if uri == "" {
		t.Skip("BRAINWAVE_MONGO_URI not set, skipping integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, MongoConfig{
		URI:      uri,
		Database: fmt.Sprintf("brainwave_test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer func() {
		_ = s.client.Database(s.coll.Database().Name()).Drop(context.Background())
		s.Close()
	}()
	exerciseStore(t, s)
}
