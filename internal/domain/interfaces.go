package domain

import (
	"context"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/google/uuid"
)

// ReservationStore supplies and persists reservations. The engine itself
// never mutates storage; the orchestrating service applies its decisions
// through this interface.
type ReservationStore interface {
	GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	CreateReservationGuarded(ctx context.Context, r *models.Reservation) error
	SaveReservation(ctx context.Context, r *models.Reservation) error
	DeleteReservation(ctx context.Context, id uuid.UUID) error
	UpdateReservationStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) error
	ReservationsForRoom(ctx context.Context, roomID uuid.UUID) ([]models.Reservation, error)
	AllReservations(ctx context.Context) ([]models.Reservation, error)
}

// RoomStore resolves and manages rooms.
type RoomStore interface {
	GetRoomByNumber(ctx context.Context, roomNumber string) (*models.Room, error)
	GetRoomByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	SeedRooms(ctx context.Context, rooms []models.Room) error
}

// RoomLocker serializes check-plus-write sequences per room. Cross-room
// operations are independent and take distinct locks.
type RoomLocker interface {
	Acquire(ctx context.Context, roomID uuid.UUID) (release func(), err error)
}

// EventPublisher fans out domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// ExportScheduler queues occupancy report rebuilds.
type ExportScheduler interface {
	EnqueueRebuild(ctx context.Context, from, to time.Time) error
}

// ReservationService is the orchestrating surface the transport layer calls.
type ReservationService interface {
	CreateReservation(ctx context.Context, input CreateReservationInput) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, input UpdateReservationInput) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, id uuid.UUID) error
	GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	ListReservations(ctx context.Context, filter ListInput) ([]models.Reservation, error)
	CheckAvailability(ctx context.Context, roomNumber string, checkIn, checkOut time.Time) (bool, error)
}

// CreateReservationInput carries the caller-validated fields of a new
// reservation. The room is addressed by its human-facing number.
type CreateReservationInput struct {
	RoomNumber   string
	GuestName    string
	PhoneNumber  string
	Notes        string
	CheckInDate  time.Time
	CheckOutDate time.Time
}

// UpdateReservationInput carries an edit. Status may only be set to
// Scheduled or Cancelled; Current and Completed are always derived.
type UpdateReservationInput struct {
	ID           uuid.UUID
	RoomNumber   string
	GuestName    string
	PhoneNumber  string
	Notes        string
	CheckInDate  time.Time
	CheckOutDate time.Time
	Status       models.ReservationStatus
}

// ListInput narrows and pages a listing.
type ListInput struct {
	CheckInFrom   *time.Time
	CheckOutUntil *time.Time
}
