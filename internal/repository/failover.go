package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FailoverRoomLocker prefers the distributed locker and degrades to the
// in-process one when it fails. After a minute it probes the primary
// again. Locking falls back to single-instance guarantees while
// degraded, which still covers the common deployment.
type FailoverRoomLocker struct {
	primary   domain.RoomLocker
	fallback  domain.RoomLocker
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverRoomLocker(primary, fallback domain.RoomLocker, logger *zerolog.Logger) *FailoverRoomLocker {
	return &FailoverRoomLocker{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (l *FailoverRoomLocker) Acquire(ctx context.Context, roomID uuid.UUID) (func(), error) {
	if !l.isDown.Load() {
		release, err := l.primary.Acquire(ctx, roomID)
		if err == nil || ctx.Err() != nil {
			return release, err
		}
		l.logger.Error().Err(err).Str("room_id", roomID.String()).Msg("primary room locker failed, falling back to memory")
		l.isDown.Store(true)
		l.lastCheck.Store(time.Now().UnixNano())
	}

	// Try to recover after a minute.
	if l.isDown.Load() && time.Since(time.Unix(0, l.lastCheck.Load())) > time.Minute {
		release, err := l.primary.Acquire(ctx, roomID)
		if err == nil {
			l.isDown.Store(false)
			return release, nil
		}
		l.lastCheck.Store(time.Now().UnixNano())
	}

	return l.fallback.Acquire(ctx, roomID)
}
