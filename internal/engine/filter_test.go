package engine

import (
	"testing"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d := date(t, s)
	return &d
}

func TestListFilter_Matches(t *testing.T) {
	r := reservation(t, "2025-06-10", "2025-06-15", models.StatusScheduled)

	tests := []struct {
		name   string
		filter ListFilter
		want   bool
	}{
		{"no bounds", ListFilter{}, true},
		{"from before check-in", ListFilter{CheckInFrom: datePtr(t, "2025-06-01")}, true},
		{"from equals check-in", ListFilter{CheckInFrom: datePtr(t, "2025-06-10")}, true},
		{"from after check-in", ListFilter{CheckInFrom: datePtr(t, "2025-06-11")}, false},
		{"until after check-out", ListFilter{CheckOutUntil: datePtr(t, "2025-06-20")}, true},
		{"until equals check-out", ListFilter{CheckOutUntil: datePtr(t, "2025-06-15")}, true},
		{"until before check-out", ListFilter{CheckOutUntil: datePtr(t, "2025-06-14")}, false},
		{"both bounds containing", ListFilter{CheckInFrom: datePtr(t, "2025-06-01"), CheckOutUntil: datePtr(t, "2025-06-30")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(r))
		})
	}
}

func TestFilterReservations_PreservesOrder(t *testing.T) {
	a := reservation(t, "2025-06-01", "2025-06-05", models.StatusCompleted)
	b := reservation(t, "2025-06-10", "2025-06-15", models.StatusScheduled)
	c := reservation(t, "2025-07-01", "2025-07-05", models.StatusScheduled)

	got := FilterReservations([]models.Reservation{a, b, c}, ListFilter{CheckInFrom: datePtr(t, "2025-06-10")})
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, c.ID, got[1].ID)
}

func TestSortForDisplay(t *testing.T) {
	cancelled := reservation(t, "2025-06-01", "2025-06-03", models.StatusCancelled)
	completed := reservation(t, "2025-05-01", "2025-05-05", models.StatusCompleted)
	current := reservation(t, "2025-06-10", "2025-06-15", models.StatusCurrent)
	scheduledLater := reservation(t, "2025-07-01", "2025-07-05", models.StatusScheduled)
	scheduledSooner := reservation(t, "2025-06-20", "2025-06-25", models.StatusScheduled)

	list := []models.Reservation{cancelled, completed, scheduledLater, current, scheduledSooner}
	SortForDisplay(list)

	got := make([]models.ReservationStatus, 0, len(list))
	for _, r := range list {
		got = append(got, r.Status)
	}
	assert.Equal(t, []models.ReservationStatus{
		models.StatusScheduled,
		models.StatusScheduled,
		models.StatusCurrent,
		models.StatusCompleted,
		models.StatusCancelled,
	}, got)

	// Within the same status, earlier check-in comes first.
	assert.Equal(t, scheduledSooner.ID, list[0].ID)
	assert.Equal(t, scheduledLater.ID, list[1].ID)
}

func TestSortForDisplay_TiesBrokenByCheckOut(t *testing.T) {
	short := reservation(t, "2025-06-10", "2025-06-12", models.StatusScheduled)
	long := reservation(t, "2025-06-10", "2025-06-20", models.StatusScheduled)

	list := []models.Reservation{long, short}
	SortForDisplay(list)

	assert.Equal(t, short.ID, list[0].ID)
	assert.Equal(t, long.ID, list[1].ID)
}
