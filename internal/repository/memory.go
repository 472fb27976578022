package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRoomLocker serializes check-plus-write sequences per room inside
// a single process. Each room gets a one-slot semaphore so cross-room
// operations never wait on each other.
type MemoryRoomLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]chan struct{}
}

func NewMemoryRoomLocker() *MemoryRoomLocker {
	return &MemoryRoomLocker{
		locks: make(map[uuid.UUID]chan struct{}),
	}
}

func (l *MemoryRoomLocker) slot(roomID uuid.UUID) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[roomID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[roomID] = ch
	}
	return ch
}

// Acquire blocks until the room lock is held or the context is done.
func (l *MemoryRoomLocker) Acquire(ctx context.Context, roomID uuid.UUID) (func(), error) {
	ch := l.slot(roomID)
	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() { <-ch })
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
