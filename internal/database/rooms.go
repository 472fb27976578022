package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/google/uuid"
)

// CreateRoom inserts a new room. Room numbers are unique.
func (db *DB) CreateRoom(ctx context.Context, room *models.Room) error {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	query := `INSERT INTO rooms (id, room_number, description, capacity) VALUES (?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, room.ID.String(), room.RoomNumber, room.Description, room.Capacity)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateRoom
		}
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// GetRoomByNumber resolves a room by its human-facing number.
func (db *DB) GetRoomByNumber(ctx context.Context, roomNumber string) (*models.Room, error) {
	query := `SELECT id, room_number, description, capacity, created_at FROM rooms WHERE room_number = ?`
	return db.getRoom(ctx, query, roomNumber)
}

// GetRoomByID resolves a room by id.
func (db *DB) GetRoomByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	query := `SELECT id, room_number, description, capacity, created_at FROM rooms WHERE id = ?`
	return db.getRoom(ctx, query, id.String())
}

func (db *DB) getRoom(ctx context.Context, query string, arg any) (*models.Room, error) {
	var (
		room  models.Room
		idStr string
	)
	err := db.QueryRowContext(ctx, query, arg).Scan(
		&idStr, &room.RoomNumber, &room.Description, &room.Capacity, &room.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if room.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("failed to parse room id %s: %w", idStr, err)
	}
	return &room, nil
}

// ListRooms returns all rooms ordered by room number.
func (db *DB) ListRooms(ctx context.Context) ([]models.Room, error) {
	query := `SELECT id, room_number, description, capacity, created_at FROM rooms ORDER BY room_number ASC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var (
			room  models.Room
			idStr string
		)
		if err := rows.Scan(&idStr, &room.RoomNumber, &room.Description, &room.Capacity, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		if room.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("failed to parse room id %s: %w", idStr, err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// SeedRooms inserts configured rooms that do not exist yet, keyed by room
// number. Existing rooms are left untouched.
func (db *DB) SeedRooms(ctx context.Context, rooms []models.Room) error {
	for i := range rooms {
		room := rooms[i]
		_, err := db.GetRoomByNumber(ctx, room.RoomNumber)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrRoomNotFound) {
			return err
		}
		if err := db.CreateRoom(ctx, &room); err != nil {
			return fmt.Errorf("failed to seed room %s: %w", room.RoomNumber, err)
		}
		db.logger.Info().Str("room_number", room.RoomNumber).Msg("seeded room")
	}
	return nil
}
