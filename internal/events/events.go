package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/google/uuid"
)

const (
	EventReservationCreated   = "reservation_created"
	EventReservationUpdated   = "reservation_updated"
	EventReservationCancelled = "reservation_cancelled"
	EventReservationDeleted   = "reservation_deleted"
	EventStatusReconciled     = "status_reconciled"
)

// ReservationEventPayload is the reservation snapshot delivered to
// event consumers.
type ReservationEventPayload struct {
	ReservationID uuid.UUID                `json:"reservation_id"`
	RoomID        uuid.UUID                `json:"room_id"`
	RoomNumber    string                   `json:"room_number,omitempty"`
	GuestName     string                   `json:"guest_name"`
	CheckInDate   time.Time                `json:"check_in_date"`
	CheckOutDate  time.Time                `json:"check_out_date"`
	Status        models.ReservationStatus `json:"status"`
	PrevStatus    models.ReservationStatus `json:"prev_status,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
