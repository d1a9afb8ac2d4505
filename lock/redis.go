package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	keyPrefix = "draftoptimizer:league-lock:"

	DefaultTTL        = 10 * time.Second
	defaultRetryDelay = 25 * time.Millisecond
)

// Only the holder's token may delete the key.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Only the holder's token may extend the key.
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker serializes callers across processes sharing a Redis server. The
// lease is renewed every ttl/3 while held, so a lock only expires when its holder
// stops renewing it, such as after a crash.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		retry:  defaultRetryDelay,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, leagueID string) (func(), error) {
	key := keyPrefix + leagueID
	token := uuid.NewString()

	for {
		acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquiring lock on league %s: %w", leagueID, err)
		}
		if acquired {
			stop := make(chan struct{})
			go l.keepAlive(key, token, stop)
			return l.releaser(key, token, stop), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for lock on league %s: %w", leagueID, ctx.Err())
		case <-time.After(l.retry):
		}
	}
}

// keepAlive extends the lease until stop is closed or the lease is lost.
func (l *RedisLocker) keepAlive(key, token string, stop <-chan struct{}) {
	interval := max(l.ttl/3, time.Millisecond)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), interval)
		renewed, err := renewScript.Run(ctx, l.client, []string{key}, token, l.ttl.Milliseconds()).Int()
		cancel()
		if err != nil {
			logrus.WithFields(logrus.Fields{"key": key}).WithError(err).Warn("failed to renew league lock")
			continue
		}
		if renewed == 0 {
			logrus.WithFields(logrus.Fields{"key": key}).Warn("league lock lost before release")
			return
		}
	}
}

func (l *RedisLocker) releaser(key, token string, stop chan struct{}) func() {
	var once sync.Once
	return func() {
		once.Do(func() { l.release(key, token, stop) })
	}
}

func (l *RedisLocker) release(key, token string, stop chan struct{}) {
	close(stop)

	// the request context may already be done, releasing must still happen
	ctx, cancel := context.WithTimeout(context.Background(), l.ttl)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		logrus.WithFields(logrus.Fields{"key": key}).WithError(err).Warn("failed to release league lock")
	}
}
