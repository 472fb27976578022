package engine

import (
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/models"
)

// DeriveStatus computes the status a reservation should have on the given
// day. Cancelled is sticky: once set, no automatic derivation changes it.
// For a well-formed range exactly one of the remaining three applies:
// the checkout day itself counts as departed.
func DeriveStatus(checkIn, checkOut time.Time, current models.ReservationStatus, today time.Time) models.ReservationStatus {
	if current == models.StatusCancelled {
		return models.StatusCancelled
	}
	if !today.Before(checkOut) {
		return models.StatusCompleted
	}
	if !today.Before(checkIn) {
		return models.StatusCurrent
	}
	return models.StatusScheduled
}

// ReconcileStatus recomputes the status from the dates and reports whether
// the stored value needs correcting. It never mutates its argument; the
// caller persists the returned copy. Reconciliation is idempotent, so a
// lost write is repaired on the next read.
func ReconcileStatus(r models.Reservation, today time.Time) (bool, models.Reservation) {
	derived := DeriveStatus(r.CheckInDate, r.CheckOutDate, r.Status, today)
	if derived == r.Status {
		return false, r
	}
	r.Status = derived
	return true, r
}
