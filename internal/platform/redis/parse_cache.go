package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/careergraph-backend/internal/platform/logger"
)

// ParseCache remembers LLM parse output per uploaded file so the same résumé
// is not sent to the model twice.
type ParseCache interface {
	Get(ctx context.Context, data []byte) (string, bool, error)
	Put(ctx context.Context, data []byte, parsed string) error
	Close() error
}

type parseCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewParseCache connects using REDIS_ADDR, REDIS_PASSWORD and REDIS_DB.
func NewParseCache(log *logger.Logger) (ParseCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	db := 0
	if v := strings.TrimSpace(os.Getenv("REDIS_DB")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid REDIS_DB %q", v)
		}
		db = n
	}
	ttl := 24 * time.Hour
	if v := strings.TrimSpace(os.Getenv("PARSE_CACHE_TTL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = time.Duration(n) * time.Second
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewParseCacheWithClient(log, rdb, ttl), nil
}

func NewParseCacheWithClient(log *logger.Logger, rdb *goredis.Client, ttl time.Duration) ParseCache {
	if log == nil {
		log = logger.NewNop()
	}
	return &parseCache{
		log:    log.With("service", "RedisParseCache"),
		rdb:    rdb,
		prefix: "careergraph:parse:",
		ttl:    ttl,
	}
}

func (c *parseCache) key(data []byte) string {
	sum := sha256.Sum256(data)
	return c.prefix + hex.EncodeToString(sum[:])
}

func (c *parseCache) Get(ctx context.Context, data []byte) (string, bool, error) {
	if c == nil || c.rdb == nil {
		return "", false, fmt.Errorf("redis parse cache not initialized")
	}
	v, err := c.rdb.Get(ctx, c.key(data)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *parseCache) Put(ctx context.Context, data []byte, parsed string) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis parse cache not initialized")
	}
	return c.rdb.Set(ctx, c.key(data), parsed, c.ttl).Err()
}

func (c *parseCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
