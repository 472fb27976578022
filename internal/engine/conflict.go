package engine

import (
	"errors"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/google/uuid"
)

// ErrInvalidRange is returned when a check-out date is not strictly after
// the check-in date. Zero-length ranges are rejected too.
var ErrInvalidRange = errors.New("check-out date must be after check-in date")

// ConflictResult reports whether a candidate date range collides with an
// existing reservation. When several reservations overlap the candidate,
// which one is reported is not significant; only Conflict is.
type ConflictResult struct {
	Conflict bool
	With     *models.Reservation
}

// Overlaps reports whether the half-open intervals [aIn, aOut) and
// [bIn, bOut) intersect. Abutting intervals do not overlap, so the
// check-out day of one stay is free for the check-in of the next.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// CheckConflict decides whether a candidate range for a room collides with
// any of the room's existing reservations. Cancelled reservations never
// hold the room, and the reservation with excludeID is skipped so an edit
// does not conflict with its own stored interval. The caller supplies the
// reservations; the check itself is pure and performs no I/O.
func CheckConflict(existing []models.Reservation, checkIn, checkOut time.Time, excludeID uuid.UUID) (ConflictResult, error) {
	if !checkOut.After(checkIn) {
		return ConflictResult{}, ErrInvalidRange
	}

	for i := range existing {
		r := &existing[i]
		if r.Status == models.StatusCancelled {
			continue
		}
		if excludeID != uuid.Nil && r.ID == excludeID {
			continue
		}
		if Overlaps(r.CheckInDate, r.CheckOutDate, checkIn, checkOut) {
			return ConflictResult{Conflict: true, With: r}, nil
		}
	}

	return ConflictResult{}, nil
}
