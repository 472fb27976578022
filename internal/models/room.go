package models

import (
	"time"

	"github.com/google/uuid"
)

// Room is a bookable unit of the guest house. RoomNumber is the
// human-facing key used in all user-facing operations.
type Room struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	RoomNumber  string    `json:"room_number" yaml:"room_number"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Capacity    int       `json:"capacity" yaml:"capacity"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
}
