package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []ReservationStatus{StatusScheduled, StatusCurrent, StatusCompleted, StatusCancelled} {
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStatus("checked_in")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)

	// Parsing is case-sensitive; statuses are stored lowercase.
	_, err = ParseStatus("Scheduled")
	assert.Error(t, err)
}

func TestSortRank(t *testing.T) {
	assert.Less(t, StatusScheduled.SortRank(), StatusCurrent.SortRank())
	assert.Less(t, StatusCurrent.SortRank(), StatusCompleted.SortRank())
	assert.Less(t, StatusCompleted.SortRank(), StatusCancelled.SortRank())

	// Unknown statuses sort after everything declared.
	assert.Greater(t, ReservationStatus("bogus").SortRank(), StatusCancelled.SortRank())
}

func TestValid(t *testing.T) {
	assert.True(t, StatusScheduled.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, ReservationStatus("deleted").Valid())
}
