package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/config"
	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only when the holder token matches,
// so an expired lock reacquired by another instance is never released
// by the previous holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`)

// RedisRoomLocker provides per-room mutual exclusion across service
// instances using SET NX with a TTL.
type RedisRoomLocker struct {
	client       *redis.Client
	ttl          time.Duration
	pollInterval time.Duration
}

// NewRedisClient creates a Redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisRoomLocker(client *redis.Client) *RedisRoomLocker {
	return &RedisRoomLocker{
		client:       client,
		ttl:          models.RoomLockTTLSeconds * time.Second,
		pollInterval: 50 * time.Millisecond,
	}
}

func lockKey(roomID uuid.UUID) string {
	return fmt.Sprintf("room_lock:%s", roomID)
}

// Acquire spins on SET NX until the lock is taken or the context is done.
// The TTL bounds how long a crashed holder can block a room.
func (l *RedisRoomLocker) Acquire(ctx context.Context, roomID uuid.UUID) (func(), error) {
	if l.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	key := lockKey(roomID)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire room lock: %w", err)
		}
		if ok {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
			}, nil
		}

		select {
		case <-time.After(l.pollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Ping verifies the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
