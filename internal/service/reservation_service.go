package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/database"
	"github.com/AykutYamak/MyGuestRooms/internal/domain"
	"github.com/AykutYamak/MyGuestRooms/internal/engine"
	"github.com/AykutYamak/MyGuestRooms/internal/events"
	"github.com/AykutYamak/MyGuestRooms/internal/metrics"
	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrStatusNotAllowed is returned when an edit tries to set a status other
// than Scheduled or Cancelled. Current and Completed are always derived
// from the dates, never set by hand.
var ErrStatusNotAllowed = errors.New("status can only be set to scheduled or cancelled")

// ReservationService orchestrates the conflict check and status
// derivation around the store. The engine decides; this service applies.
type ReservationService struct {
	store   domain.ReservationStore
	rooms   domain.RoomStore
	locker  domain.RoomLocker
	clock   engine.Clock
	events  domain.EventPublisher
	exports domain.ExportScheduler
	logger  *zerolog.Logger
}

func NewReservationService(
	store domain.ReservationStore,
	rooms domain.RoomStore,
	locker domain.RoomLocker,
	clock engine.Clock,
	eventBus domain.EventPublisher,
	exports domain.ExportScheduler,
	logger *zerolog.Logger,
) *ReservationService {
	if clock == nil {
		clock = engine.SystemClock()
	}
	return &ReservationService{
		store:   store,
		rooms:   rooms,
		locker:  locker,
		clock:   clock,
		events:  eventBus,
		exports: exports,
		logger:  logger,
	}
}

// CreateReservation checks the candidate range against the room's
// existing reservations and writes it when free. The per-room lock plus
// the store's in-transaction re-check close the race between two
// concurrent creates for the same room.
func (s *ReservationService) CreateReservation(ctx context.Context, input domain.CreateReservationInput) (*models.Reservation, error) {
	checkIn, checkOut, err := normalizeRange(input.CheckInDate, input.CheckOutDate)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetRoomByNumber(ctx, input.RoomNumber)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("acquire room lock: %w", err)
	}
	defer release()

	existing, err := s.store.ReservationsForRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	result, err := engine.CheckConflict(existing, checkIn, checkOut, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if result.Conflict {
		metrics.IncConflictDetected()
		return nil, conflictError(room.RoomNumber, checkIn, checkOut)
	}

	reservation := &models.Reservation{
		ID:           uuid.New(),
		RoomID:       room.ID,
		GuestName:    input.GuestName,
		PhoneNumber:  input.PhoneNumber,
		Notes:        input.Notes,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       models.StatusScheduled,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.store.CreateReservationGuarded(ctx, reservation); err != nil {
		if errors.Is(err, database.ErrConflict) {
			metrics.IncConflictDetected()
			return nil, conflictError(room.RoomNumber, checkIn, checkOut)
		}
		return nil, err
	}

	metrics.IncReservationCreated()
	s.publishEvent(events.EventReservationCreated, *reservation, room.RoomNumber, "")
	s.enqueueExport(ctx)

	return reservation, nil
}

// UpdateReservation applies an edit. Manual status changes are limited
// to Scheduled and Cancelled; setting Scheduled on past dates is allowed
// and will be overridden by the next reconciliation pass.
func (s *ReservationService) UpdateReservation(ctx context.Context, input domain.UpdateReservationInput) (*models.Reservation, error) {
	current, err := s.store.GetReservation(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	checkIn, checkOut, err := normalizeRange(input.CheckInDate, input.CheckOutDate)
	if err != nil {
		return nil, err
	}

	if input.Status != "" && input.Status != models.StatusScheduled && input.Status != models.StatusCancelled {
		return nil, ErrStatusNotAllowed
	}

	room, err := s.rooms.GetRoomByNumber(ctx, input.RoomNumber)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("acquire room lock: %w", err)
	}
	defer release()

	existing, err := s.store.ReservationsForRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	result, err := engine.CheckConflict(existing, checkIn, checkOut, input.ID)
	if err != nil {
		return nil, err
	}
	if result.Conflict {
		metrics.IncConflictDetected()
		return nil, conflictError(room.RoomNumber, checkIn, checkOut)
	}

	prevStatus := current.Status
	updated := *current
	updated.RoomID = room.ID
	updated.GuestName = input.GuestName
	updated.PhoneNumber = input.PhoneNumber
	updated.Notes = input.Notes
	updated.CheckInDate = checkIn
	updated.CheckOutDate = checkOut
	if input.Status != "" {
		updated.Status = input.Status
	}

	if err := s.store.SaveReservation(ctx, &updated); err != nil {
		return nil, err
	}

	eventType := events.EventReservationUpdated
	if updated.Status == models.StatusCancelled && prevStatus != models.StatusCancelled {
		eventType = events.EventReservationCancelled
	}
	s.publishEvent(eventType, updated, room.RoomNumber, prevStatus)
	s.enqueueExport(ctx)

	return &updated, nil
}

// CancelReservation marks a reservation cancelled. Cancelled is terminal:
// no automatic derivation ever changes it back.
func (s *ReservationService) CancelReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	current, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == models.StatusCancelled {
		return current, nil
	}

	prevStatus := current.Status
	updated := *current
	updated.Status = models.StatusCancelled
	if err := s.store.SaveReservation(ctx, &updated); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventReservationCancelled, updated, "", prevStatus)
	s.enqueueExport(ctx)

	return &updated, nil
}

// DeleteReservation removes a reservation permanently.
func (s *ReservationService) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	current, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteReservation(ctx, id); err != nil {
		return err
	}

	s.publishEvent(events.EventReservationDeleted, *current, "", "")
	s.enqueueExport(ctx)
	return nil
}

// GetReservation returns a single reservation with its status
// reconciled against today.
func (s *ReservationService) GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	current, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	reconciled := s.reconcile(ctx, *current)
	return &reconciled, nil
}

// ListReservations reconciles every reservation against today, persists
// corrections opportunistically, then filters and sorts for display.
func (s *ReservationService) ListReservations(ctx context.Context, filter domain.ListInput) ([]models.Reservation, error) {
	all, err := s.store.AllReservations(ctx)
	if err != nil {
		return nil, err
	}

	for i := range all {
		all[i] = s.reconcile(ctx, all[i])
	}

	listed := engine.FilterReservations(all, engine.ListFilter{
		CheckInFrom:   filter.CheckInFrom,
		CheckOutUntil: filter.CheckOutUntil,
	})
	engine.SortForDisplay(listed)

	return listed, nil
}

// CheckAvailability reports whether the range is free for the room.
func (s *ReservationService) CheckAvailability(ctx context.Context, roomNumber string, checkIn, checkOut time.Time) (bool, error) {
	in, out, err := normalizeRange(checkIn, checkOut)
	if err != nil {
		return false, err
	}

	room, err := s.rooms.GetRoomByNumber(ctx, roomNumber)
	if err != nil {
		return false, err
	}

	existing, err := s.store.ReservationsForRoom(ctx, room.ID)
	if err != nil {
		return false, err
	}

	result, err := engine.CheckConflict(existing, in, out, uuid.Nil)
	if err != nil {
		return false, err
	}
	return !result.Conflict, nil
}

// reconcile corrects a stale status and persists the fix. A lost write
// is harmless: recomputing from the dates always yields the same answer,
// so the next read repairs it.
func (s *ReservationService) reconcile(ctx context.Context, r models.Reservation) models.Reservation {
	changed, updated := engine.ReconcileStatus(r, s.clock.Today())
	if !changed {
		return r
	}

	if err := s.store.UpdateReservationStatus(ctx, updated.ID, updated.Status); err != nil {
		s.logger.Warn().Err(err).Str("reservation_id", updated.ID.String()).Msg("persist status correction failed")
	}
	metrics.IncStatusCorrection()
	s.publishEvent(events.EventStatusReconciled, updated, "", r.Status)

	return updated
}

func (s *ReservationService) publishEvent(eventType string, r models.Reservation, roomNumber string, prevStatus models.ReservationStatus) {
	if s.events == nil {
		return
	}

	payload := events.ReservationEventPayload{
		ReservationID: r.ID,
		RoomID:        r.RoomID,
		RoomNumber:    roomNumber,
		GuestName:     r.GuestName,
		CheckInDate:   r.CheckInDate,
		CheckOutDate:  r.CheckOutDate,
		Status:        r.Status,
		PrevStatus:    prevStatus,
	}

	if err := s.events.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("reservation_id", r.ID.String()).Msg("publish event error")
	}
}

func (s *ReservationService) enqueueExport(ctx context.Context) {
	if s.exports == nil {
		return
	}

	today := s.clock.Today()
	from := today.AddDate(0, -models.DefaultExportRangeMonthsBefore, 0)
	to := today.AddDate(0, models.DefaultExportRangeMonthsAfter, 0)
	if err := s.exports.EnqueueRebuild(ctx, from, to); err != nil {
		s.logger.Error().Err(err).Msg("export enqueue error")
	}
}

// normalizeRange truncates both dates to calendar days and enforces the
// strict check-out after check-in rule.
func normalizeRange(checkIn, checkOut time.Time) (time.Time, time.Time, error) {
	in := engine.DateOnly(checkIn)
	out := engine.DateOnly(checkOut)
	if !out.After(in) {
		return time.Time{}, time.Time{}, engine.ErrInvalidRange
	}
	return in, out, nil
}

func conflictError(roomNumber string, checkIn, checkOut time.Time) error {
	return fmt.Errorf("room %s is reserved for part of %s to %s, choose other dates: %w",
		roomNumber, engine.FormatDate(checkIn), engine.FormatDate(checkOut), database.ErrConflict)
}
