package models

import "fmt"

// ReservationStatus is the lifecycle state of a reservation.
// Scheduled, Current and Completed are derived from the dates;
// Cancelled is terminal and only ever set by an explicit edit.
type ReservationStatus string

const (
	StatusScheduled ReservationStatus = "scheduled"
	StatusCurrent   ReservationStatus = "current"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// statusSortOrder fixes the display ordering of statuses. It is used only
// for sorting listings, never for business rules.
var statusSortOrder = map[ReservationStatus]int{
	StatusScheduled: 0,
	StatusCurrent:   1,
	StatusCompleted: 2,
	StatusCancelled: 3,
}

// SortRank returns the position of the status in the display order.
// Unknown statuses sort last.
func (s ReservationStatus) SortRank() int {
	rank, ok := statusSortOrder[s]
	if !ok {
		return len(statusSortOrder)
	}
	return rank
}

// Valid reports whether s is one of the four declared statuses.
func (s ReservationStatus) Valid() bool {
	_, ok := statusSortOrder[s]
	return ok
}

func (s ReservationStatus) String() string {
	return string(s)
}

// ParseStatus converts a raw string into a ReservationStatus.
func ParseStatus(raw string) (ReservationStatus, error) {
	s := ReservationStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown reservation status: %q", raw)
	}
	return s, nil
}
