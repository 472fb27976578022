package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	r := Reservation{
		CheckInDate:  day(2025, time.June, 10),
		CheckOutDate: day(2025, time.June, 15),
	}
	assert.Equal(t, 5, r.Nights())

	single := Reservation{
		CheckInDate:  day(2025, time.June, 10),
		CheckOutDate: day(2025, time.June, 11),
	}
	assert.Equal(t, 1, single.Nights())
}

func TestCovers(t *testing.T) {
	r := Reservation{
		CheckInDate:  day(2025, time.June, 10),
		CheckOutDate: day(2025, time.June, 15),
	}

	assert.False(t, r.Covers(day(2025, time.June, 9)))
	assert.True(t, r.Covers(day(2025, time.June, 10)))
	assert.True(t, r.Covers(day(2025, time.June, 14)))
	// Check-out day is not part of the stay.
	assert.False(t, r.Covers(day(2025, time.June, 15)))
}
