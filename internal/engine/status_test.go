package engine

import (
	"testing"

	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		current  models.ReservationStatus
		today    string
		want     models.ReservationStatus
	}{
		{"before check-in", "2025-06-10", "2025-06-15", models.StatusScheduled, "2025-06-01", models.StatusScheduled},
		{"day before check-in", "2025-06-10", "2025-06-15", models.StatusScheduled, "2025-06-09", models.StatusScheduled},
		{"check-in day", "2025-06-10", "2025-06-15", models.StatusScheduled, "2025-06-10", models.StatusCurrent},
		{"mid stay", "2025-06-10", "2025-06-15", models.StatusScheduled, "2025-06-12", models.StatusCurrent},
		{"last night", "2025-06-10", "2025-06-15", models.StatusCurrent, "2025-06-14", models.StatusCurrent},
		{"check-out day is departed", "2025-06-10", "2025-06-15", models.StatusCurrent, "2025-06-15", models.StatusCompleted},
		{"long after check-out", "2025-06-10", "2025-06-15", models.StatusScheduled, "2025-07-01", models.StatusCompleted},
		{"cancelled is sticky before stay", "2025-06-10", "2025-06-15", models.StatusCancelled, "2025-06-01", models.StatusCancelled},
		{"cancelled is sticky during stay", "2025-06-10", "2025-06-15", models.StatusCancelled, "2025-06-12", models.StatusCancelled},
		{"cancelled is sticky after stay", "2025-06-10", "2025-06-15", models.StatusCancelled, "2025-07-01", models.StatusCancelled},
		{"stale scheduled corrected to completed", "2025-05-01", "2025-05-05", models.StatusScheduled, "2025-06-01", models.StatusCompleted},
		{"stale current corrected to completed", "2025-05-01", "2025-05-05", models.StatusCurrent, "2025-06-01", models.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(date(t, tt.checkIn), date(t, tt.checkOut), tt.current, date(t, tt.today))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveStatus_SingleNightStay(t *testing.T) {
	checkIn := date(t, "2025-06-10")
	checkOut := date(t, "2025-06-11")

	assert.Equal(t, models.StatusScheduled, DeriveStatus(checkIn, checkOut, models.StatusScheduled, date(t, "2025-06-09")))
	assert.Equal(t, models.StatusCurrent, DeriveStatus(checkIn, checkOut, models.StatusScheduled, date(t, "2025-06-10")))
	assert.Equal(t, models.StatusCompleted, DeriveStatus(checkIn, checkOut, models.StatusScheduled, date(t, "2025-06-11")))
}

func TestReconcileStatus(t *testing.T) {
	r := reservation(t, "2025-06-10", "2025-06-15", models.StatusScheduled)

	changed, updated := ReconcileStatus(r, date(t, "2025-06-12"))
	assert.True(t, changed)
	assert.Equal(t, models.StatusCurrent, updated.Status)
	// The input is never mutated.
	assert.Equal(t, models.StatusScheduled, r.Status)

	// Reconciling the corrected copy again is a no-op.
	changed, again := ReconcileStatus(updated, date(t, "2025-06-12"))
	assert.False(t, changed)
	assert.Equal(t, updated, again)
}

func TestReconcileStatus_NoChangeWhenAccurate(t *testing.T) {
	r := reservation(t, "2025-06-10", "2025-06-15", models.StatusScheduled)

	changed, updated := ReconcileStatus(r, date(t, "2025-06-01"))
	assert.False(t, changed)
	assert.Equal(t, r, updated)
}

func TestReconcileStatus_CancelledNeverRevived(t *testing.T) {
	r := reservation(t, "2025-06-10", "2025-06-15", models.StatusCancelled)

	for _, today := range []string{"2025-06-01", "2025-06-12", "2025-07-01"} {
		changed, updated := ReconcileStatus(r, date(t, today))
		assert.False(t, changed, "today=%s", today)
		assert.Equal(t, models.StatusCancelled, updated.Status)
	}
}
