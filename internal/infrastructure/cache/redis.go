package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"talent-match/internal/config"
	applog "talent-match/internal/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultTTL = 600 * time.Second

var ErrUnavailable = errors.New("redis unavailable")

// releaseScript deletes the lease only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis wraps a go-redis client. A nil client means Redis was unreachable at startup and
// every call degrades to a no-op miss.
type Redis struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	logger = applog.OrNop(logger).Named("cache")

	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "6379"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, bypassing cache", zap.Error(err))
		_ = client.Close()
		return &Redis{logger: logger, ttl: ttl}
	}

	logger.Info("redis connected", zap.String("addr", client.Options().Addr))
	return &Redis{client: client, logger: logger, ttl: ttl}
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Redis {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Redis{client: client, logger: applog.OrNop(logger).Named("cache"), ttl: ttl}
}

func (r *Redis) Available() bool {
	return r != nil && r.client != nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis call failed, bypassing cache", zap.Error(err))
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if !r.Available() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !r.Available() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.Available() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if !r.Available() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if !r.Available() {
		return nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}

	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := r.client.Del(ctx, k).Err(); err != nil {
			r.logger.Warn("redis delete failed", zap.String("key", k), zap.String("pattern", pattern), zap.Error(err))
		}
	}
	return iter.Err()
}

// Version reads the counter at key. A missing key, or an unavailable Redis, reads as zero.
func (r *Redis) Version(ctx context.Context, key string) (int64, error) {
	if !r.Available() {
		return 0, nil
	}
	v, err := r.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		r.warnUnavailableOnce(err)
		return 0, err
	}
	return v, nil
}

func (r *Redis) BumpVersion(ctx context.Context, key string) error {
	if !r.Available() {
		return nil
	}
	if err := r.client.Incr(ctx, key).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// AcquireLease tries to take key for ttl. On success it returns the token that must be
// handed back to ReleaseLease. When Redis is unavailable it returns ErrUnavailable.
func (r *Redis) AcquireLease(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if !r.Available() {
		return "", false, ErrUnavailable
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		r.warnUnavailableOnce(err)
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// ReleaseLease drops key if it is still held with token. An expired or stolen lease is left alone.
func (r *Redis) ReleaseLease(ctx context.Context, key, token string) error {
	if !r.Available() {
		return nil
	}
	if err := releaseScript.Run(ctx, r.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// RecommendationListKey embeds the candidate's cache version, so entries written by a reader
// that raced an invalidation are never read again.
func RecommendationListKey(candidateID uuid.UUID, version int64, minScore, limit int) string {
	return "recommendations:list:" + candidateID.String() + ":v" + strconv.FormatInt(version, 10) +
		":" + strconv.Itoa(minScore) + ":" + strconv.Itoa(limit)
}

// RecommendationPattern matches every cached read for a candidate.
func RecommendationPattern(candidateID uuid.UUID) string {
	return "recommendations:*:" + candidateID.String() + ":*"
}

// RecommendationReadPatterns matches every cached read for every candidate, leaving leases alone.
func RecommendationReadPatterns() []string {
	return []string{"recommendations:list:*", "recommendations:stats:*"}
}

func RecommendationStatsKey(candidateID uuid.UUID, version int64) string {
	return "recommendations:stats:" + candidateID.String() + ":v" + strconv.FormatInt(version, 10)
}

// RecommendationVersionKey holds the counter bumped on every invalidation. Like the lease key it
// has no trailing segment, so pattern deletes leave it alone.
func RecommendationVersionKey(candidateID uuid.UUID) string {
	return "recommendations:version:" + candidateID.String()
}

func GenerationLeaseKey(candidateID uuid.UUID) string {
	return "recommendations:lease:" + candidateID.String()
}
