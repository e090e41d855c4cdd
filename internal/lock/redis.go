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

// DefaultKey is the Redis key guarding allocation runs
const DefaultKey = "allocation:run-lock"

// deletes the key only if it still carries our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// pushes the expiry out only while the key still carries our token
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker is a lock shared by every instance talking to the same Redis.
// The key expires after ttl so a crashed holder can't block runs forever.
// While held, the expiry is extended every ttl/3, so a run may outlast ttl.
type RedisLocker struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
	log    *logrus.Entry
}

func NewRedisLocker(client redis.UniversalClient, key string, ttl time.Duration, log *logrus.Entry) *RedisLocker {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &RedisLocker{client: client, key: key, ttl: ttl, log: log}
}

func (l *RedisLocker) TryLock(ctx context.Context) (func(), error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire redis lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		keepAlive(stop, l.ttl/3, l.extend(token), l.log.WithField("key", l.key))
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done

			// the caller's context may already be cancelled
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, l.client, []string{l.key}, token).Err(); err != nil {
				l.log.WithError(err).WithField("key", l.key).Warn("Failed to release allocation lock, it will expire")
			}
		})
	}, nil
}

func (l *RedisLocker) extend(token string) func(ctx context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		n, err := extendScript.Run(ctx, l.client, []string{l.key}, token, l.ttl.Milliseconds()).Int()
		if err != nil {
			return false, err
		}
		return n == 1, nil
	}
}

// keepAlive calls extend every interval until stop is closed or the lock is
// reported lost. A failed call is retried on the next tick while the key
// has not expired yet.
func keepAlive(stop <-chan struct{}, interval time.Duration, extend func(ctx context.Context) (bool, error), log *logrus.Entry) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			held, err := extend(ctx)
			cancel()
			if err != nil {
				log.WithError(err).Warn("Failed to extend allocation lock")
				continue
			}
			if !held {
				log.Error("Allocation lock lost before the run finished")
				return
			}
		}
	}
}
