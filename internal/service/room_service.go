package service

import (
	"context"

	"github.com/AykutYamak/MyGuestRooms/internal/domain"
	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RoomService is a thin read layer over the room store.
type RoomService struct {
	rooms  domain.RoomStore
	logger *zerolog.Logger
}

func NewRoomService(rooms domain.RoomStore, logger *zerolog.Logger) *RoomService {
	return &RoomService{rooms: rooms, logger: logger}
}

func (s *RoomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.rooms.ListRooms(ctx)
}

func (s *RoomService) GetRoomByNumber(ctx context.Context, number string) (*models.Room, error) {
	return s.rooms.GetRoomByNumber(ctx, number)
}

func (s *RoomService) GetRoomByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return s.rooms.GetRoomByID(ctx, id)
}

// SeedRooms inserts configured rooms that are not yet present. Existing
// rooms are left untouched, so it is safe to run on every startup.
func (s *RoomService) SeedRooms(ctx context.Context, rooms []models.Room) error {
	if err := s.rooms.SeedRooms(ctx, rooms); err != nil {
		return err
	}
	s.logger.Info().Int("rooms", len(rooms)).Msg("room seed pass done")
	return nil
}
