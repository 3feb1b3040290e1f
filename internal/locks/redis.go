package locks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"inkwell/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	backendRedis = "redis"

	// KeyPrefix namespaces every lock key in Redis.
	KeyPrefix = "inkwell:lock:"

	defaultRetryInterval = 25 * time.Millisecond
)

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// NewRedisClient connects to addr, which is either a redis:// URL or host:port,
// and verifies the connection with PING.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	client.AddHook(metricsHook{})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	observability.Logger.Info("Redis connected successfully")
	return client, nil
}

// RedisLocker serializes holders of the same key across processes sharing a
// Redis. Locks expire after ttl so a crashed holder cannot block a key forever.
type RedisLocker struct {
	client        redis.Cmdable
	ttl           time.Duration
	wait          time.Duration
	retryInterval time.Duration
}

// NewRedisLocker returns a RedisLocker over client.
func NewRedisLocker(client redis.Cmdable, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client:        client,
		ttl:           ttl,
		wait:          wait,
		retryInterval: defaultRetryInterval,
	}
}

// Lock implements Locker.
func (l *RedisLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	start := time.Now()
	redisKey := KeyPrefix + key
	token := uuid.NewString()

	waitCtx, cancel := waitContext(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, redisKey, token, l.ttl).Result()
		if err != nil {
			if waitCtx.Err() != nil {
				outcome, err := waitError(ctx)
				observeWait(backendRedis, outcome, start)
				return nil, err
			}
			observeWait(backendRedis, outcomeError, start)
			return nil, fmt.Errorf("acquire lock %q: %w", key, err)
		}
		if ok {
			observeWait(backendRedis, outcomeAcquired, start)
			return l.unlocker(redisKey, token), nil
		}

		select {
		case <-waitCtx.Done():
			outcome, err := waitError(ctx)
			observeWait(backendRedis, outcome, start)
			return nil, err
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlocker(redisKey, token string) Unlock {
	var (
		once sync.Once
		err  error
	)
	return func(ctx context.Context) error {
		once.Do(func() {
			var deleted int64
			deleted, err = releaseScript.Run(ctx, l.client, []string{redisKey}, token).Int64()
			if err != nil {
				err = fmt.Errorf("release lock: %w", err)
				return
			}
			if deleted == 0 {
				observability.Logger.WarnContext(ctx, "Lock expired before release",
					slog.String("key", redisKey),
				)
				err = ErrLockNotHeld
			}
		})
		return err
	}
}
