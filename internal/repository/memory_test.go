package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoomLocker_AcquireAndRelease(t *testing.T) {
	locker := NewMemoryRoomLocker()
	roomID := uuid.New()

	release, err := locker.Acquire(context.Background(), roomID)
	require.NoError(t, err)

	// A second acquire on the same room blocks until release.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(ctx, roomID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()

	release2, err := locker.Acquire(context.Background(), roomID)
	require.NoError(t, err)
	release2()
}

func TestMemoryRoomLocker_RoomsIndependent(t *testing.T) {
	locker := NewMemoryRoomLocker()

	releaseA, err := locker.Acquire(context.Background(), uuid.New())
	require.NoError(t, err)
	defer releaseA()

	// Holding one room never blocks another.
	releaseB, err := locker.Acquire(context.Background(), uuid.New())
	require.NoError(t, err)
	releaseB()
}

func TestMemoryRoomLocker_ReleaseIdempotent(t *testing.T) {
	locker := NewMemoryRoomLocker()
	roomID := uuid.New()

	release, err := locker.Acquire(context.Background(), roomID)
	require.NoError(t, err)

	release()
	release() // double release must not unlock someone else's hold

	release2, err := locker.Acquire(context.Background(), roomID)
	require.NoError(t, err)
	defer release2()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(ctx, roomID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryRoomLocker_Serializes(t *testing.T) {
	locker := NewMemoryRoomLocker()
	roomID := uuid.New()

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Acquire(context.Background(), roomID)
			if err != nil {
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}
