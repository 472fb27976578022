package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a stay of a single guest party in a single room over a
// half-open date interval [CheckInDate, CheckOutDate). Time of day is
// ignored; both dates are stored truncated to midnight UTC.
type Reservation struct {
	ID           uuid.UUID         `json:"id"`
	RoomID       uuid.UUID         `json:"room_id"`
	GuestName    string            `json:"guest_name"`
	PhoneNumber  string            `json:"phone_number"`
	Notes        string            `json:"notes,omitempty"`
	CheckInDate  time.Time         `json:"check_in_date"`
	CheckOutDate time.Time         `json:"check_out_date"`
	Status       ReservationStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Nights returns the length of the stay in nights.
func (r Reservation) Nights() int {
	return int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
}

// Covers reports whether the given date falls inside the stay.
func (r Reservation) Covers(date time.Time) bool {
	return !date.Before(r.CheckInDate) && date.Before(r.CheckOutDate)
}
