package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.New(os.Stdout)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	return db
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func createTestRoom(t *testing.T, db *DB, number string) *models.Room {
	t.Helper()
	room := &models.Room{
		RoomNumber: number,
		Capacity:   2,
	}
	require.NoError(t, db.CreateRoom(context.Background(), room))
	return room
}

func testReservation(roomID uuid.UUID, checkIn, checkOut time.Time) *models.Reservation {
	return &models.Reservation{
		ID:           uuid.New(),
		RoomID:       roomID,
		GuestName:    "Ivan Petrov",
		PhoneNumber:  "+359888123456",
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       models.StatusScheduled,
	}
}

func TestCreateReservationGuarded(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	room := createTestRoom(t, db, "101")

	r := testReservation(room.ID, day(t, "2025-06-10"), day(t, "2025-06-15"))
	require.NoError(t, db.CreateReservationGuarded(ctx, r))
	assert.False(t, r.CreatedAt.IsZero())

	got, err := db.GetReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, room.ID, got.RoomID)
	assert.Equal(t, "Ivan Petrov", got.GuestName)
	assert.Equal(t, "+359888123456", got.PhoneNumber)
	assert.True(t, got.CheckInDate.Equal(day(t, "2025-06-10")))
	assert.True(t, got.CheckOutDate.Equal(day(t, "2025-06-15")))
	assert.Equal(t, models.StatusScheduled, got.Status)
}

func TestCreateReservationGuarded_Conflict(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	room := createTestRoom(t, db, "101")

	first := testReservation(room.ID, day(t, "2025-06-10"), day(t, "2025-06-15"))
	require.NoError(t, db.CreateReservationGuarded(ctx, first))

	overlapping := testReservation(room.ID, day(t, "2025-06-12"), day(t, "2025-06-18"))
	err := db.CreateReservationGuarded(ctx, overlapping)
	assert.ErrorIs(t, err, ErrConflict)

	// The rejected reservation must not be stored.
	_, err = db.GetReservation(ctx, overlapping.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCreateReservationGuarded_BackToBack(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	room := createTestRoom(t, db, "101")

	first := testReservation(room.ID, day(t, "2025-06-10"), day(t, "2025-06-15"))
	require.NoError(t, db.CreateReservationGuarded(ctx, first))

	// Same-day turnover is not an overlap.
	next := testReservation(room.ID, day(t, "2025-06-15"), day(t, "2025-06-20"))
	assert.NoError(t, db.CreateReservationGuarded(ctx, next))
}

func TestCreateReservationGuarded_CancelledIgnored(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	room := createTestRoom(t, db, "101")

	cancelled := testReservation(room.ID, day(t, "2025-06-10"), day(t, "2025-06-15"))
	cancelled.Status = models.StatusCancelled
	require.NoError(t, db.SaveReservation(ctx, cancelled))

	replacement := testReservation(room.ID, day(t, "2025-06-10"), day(t, "2025-06-15"))
	assert.NoError(t, db.CreateReservationGuarded(ctx, replacement))
}

func TestCreateReservationGuarded_OtherRoomIndependent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	roomA := createTestRoom(t, db, "101")
	roomB := createTestRoom(t, db, "102")

	require.NoError(t, db.CreateReservationGuarded(ctx, testReservation(roomA.ID, day(t, "2025-06-10"), day(t, "2025-06-15"))))
	assert.NoError(t, db.CreateReservationGuarded(ctx, testReservation(roomB.ID, day(t, "2025-06-10"), day(t, "2025-06-15"))))
}

func TestSaveReservation_Upsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	room := createTestRoom(t, db, "101")

	r := testReservation(room.ID, day(t, "2025-06-10"), day(t, "2025-06-15"))
	require.NoError(t, db.SaveReservation(ctx, r))

	r.GuestName = "Maria Dimitrova"
	r.CheckOutDate = day(t, "2025-06-17")
	require.NoError(t, db.SaveReservation(ctx, r))

	got, err := db.GetReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Dimitrova", got.GuestName)
	assert.True(t, got.CheckOutDate.Equal(day(t, "2025-06-17")))

	all, err := db.AllReservations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetReservation_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetReservation(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestDeleteReservation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	room := createTestRoom(t, db, "101")

	r := testReservation(room.ID, day(t, "2025-06-10"), day(t, "2025-06-15"))
	require.NoError(t, db.SaveReservation(ctx, r))

	require.NoError(t, db.DeleteReservation(ctx, r.ID))
	_, err := db.GetReservation(ctx, r.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	// Deleting an unknown id reports not found.
	assert.ErrorIs(t, db.DeleteReservation(ctx, uuid.New()), ErrReservationNotFound)
}

func TestUpdateReservationStatus(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	room := createTestRoom(t, db, "101")

	r := testReservation(room.ID, day(t, "2025-06-10"), day(t, "2025-06-15"))
	require.NoError(t, db.SaveReservation(ctx, r))

	require.NoError(t, db.UpdateReservationStatus(ctx, r.ID, models.StatusCompleted))

	got, err := db.GetReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestReservationsForRoom(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	roomA := createTestRoom(t, db, "101")
	roomB := createTestRoom(t, db, "102")

	later := testReservation(roomA.ID, day(t, "2025-07-01"), day(t, "2025-07-05"))
	earlier := testReservation(roomA.ID, day(t, "2025-06-10"), day(t, "2025-06-15"))
	other := testReservation(roomB.ID, day(t, "2025-06-10"), day(t, "2025-06-15"))
	for _, r := range []*models.Reservation{later, earlier, other} {
		require.NoError(t, db.SaveReservation(ctx, r))
	}

	got, err := db.ReservationsForRoom(ctx, roomA.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ordered by check-in.
	assert.Equal(t, earlier.ID, got[0].ID)
	assert.Equal(t, later.ID, got[1].ID)
}

func TestScanReservation_NullOptionalFields(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	room := createTestRoom(t, db, "101")

	_, err := db.ExecContext(ctx, `INSERT INTO reservations
        (id, room_id, guest_name, phone_number, notes, check_in, check_out, status, created_at, updated_at)
        VALUES (?, ?, ?, NULL, NULL, ?, ?, ?, ?, ?)`,
		uuid.New().String(), room.ID.String(), "Guest", "2025-06-10", "2025-06-15",
		models.StatusScheduled, time.Now(), time.Now())
	require.NoError(t, err)

	all, err := db.AllReservations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].PhoneNumber)
	assert.Empty(t, all[0].Notes)
}
