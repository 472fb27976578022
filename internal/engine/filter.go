package engine

import (
	"sort"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/models"
)

// ListFilter narrows a reservation listing by date bounds. Nil bounds
// match everything.
type ListFilter struct {
	CheckInFrom   *time.Time
	CheckOutUntil *time.Time
}

// Matches reports whether a reservation passes the filter.
func (f ListFilter) Matches(r models.Reservation) bool {
	if f.CheckInFrom != nil && r.CheckInDate.Before(*f.CheckInFrom) {
		return false
	}
	if f.CheckOutUntil != nil && r.CheckOutDate.After(*f.CheckOutUntil) {
		return false
	}
	return true
}

// FilterReservations returns the reservations matching the filter,
// preserving input order.
func FilterReservations(reservations []models.Reservation, filter ListFilter) []models.Reservation {
	out := make([]models.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortForDisplay orders reservations by (status rank, check-in, check-out)
// ascending. The sort is stable and carries no business meaning beyond
// deterministic display.
func SortForDisplay(reservations []models.Reservation) {
	sort.SliceStable(reservations, func(i, j int) bool {
		a, b := reservations[i], reservations[j]
		if a.Status.SortRank() != b.Status.SortRank() {
			return a.Status.SortRank() < b.Status.SortRank()
		}
		if !a.CheckInDate.Equal(b.CheckInDate) {
			return a.CheckInDate.Before(b.CheckInDate)
		}
		return a.CheckOutDate.Before(b.CheckOutDate)
	})
}
