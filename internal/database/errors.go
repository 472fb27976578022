package database

import "errors"

var (
	// ErrRoomNotFound is returned when a room number or id does not resolve.
	ErrRoomNotFound = errors.New("room not found")

	// ErrReservationNotFound is returned when a reservation id does not resolve.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrConflict is returned when a reservation range overlaps an existing
	// non-cancelled reservation for the same room. It is a normal decision
	// outcome, not a storage fault.
	ErrConflict = errors.New("room is already reserved for part of the requested period")

	// ErrDuplicateRoom is returned when creating a room whose number is taken.
	ErrDuplicateRoom = errors.New("room number already exists")
)
