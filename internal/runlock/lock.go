// Package runlock keeps two scenario runs from writing the same outputs at once.
package runlock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/planshift/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrRunInProgress = errors.New("run_in_progress")
	ErrLockKeyEmpty  = errors.New("lock_key_empty")
	ErrLockTTL       = errors.New("lock_ttl_invalid")
)

const lockReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

type Locker struct {
	client *redis.Client
	script *redis.Script
	key    string
	ttl    time.Duration
}

// NewLocker returns nil when client is nil; a nil Locker never blocks.
func NewLocker(client *redis.Client, key string, ttl time.Duration) *Locker {
	if client == nil {
		return nil
	}
	return &Locker{
		client: client,
		script: redis.NewScript(lockReleaseScript),
		key:    strings.TrimSpace(key),
		ttl:    ttl,
	}
}

func (l *Locker) TryLock(ctx context.Context) (string, bool, error) {
	if l == nil || l.client == nil {
		return "", true, nil
	}
	if l.key == "" {
		return "", false, ErrLockKeyEmpty
	}
	if l.ttl <= 0 {
		return "", false, ErrLockTTL
	}

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

func (l *Locker) Release(ctx context.Context, token string) error {
	if l == nil || l.client == nil {
		return nil
	}
	if token == "" {
		return nil
	}
	return l.script.Run(ctx, l.client, []string{l.key}, token).Err()
}

// Acquire takes the lock or fails with ErrRunInProgress. The returned
// function releases it.
func (l *Locker) Acquire(ctx context.Context) (func(context.Context) error, error) {
	token, ok, err := l.TryLock(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrRunInProgress
	}
	return func(ctx context.Context) error {
		return l.Release(ctx, token)
	}, nil
}

// NewClient connects to REDIS_URL. It returns a nil client when no URL is set.
func NewClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*redis.Client, error) {
	url := strings.TrimSpace(cfg.RedisURL)
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			},
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
	}

	log.Info("run lock enabled", zap.String("addr", opts.Addr), zap.String("key", cfg.RunLockName))
	return client, nil
}

func provideLocker(client *redis.Client, cfg config.Config) *Locker {
	return NewLocker(client, cfg.RunLockName, cfg.RunLockTTL)
}

var Module = fx.Module("runlock",
	fx.Provide(NewClient),
	fx.Provide(provideLocker),
)
