package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/google/uuid"
)

const reservationColumns = `id, room_id, guest_name, phone_number, notes,
                 date(check_in), date(check_out), status, created_at, updated_at`

// CreateReservationGuarded inserts a reservation after re-checking the
// overlap rule inside the same transaction. The outer service performs
// the user-facing conflict check first; this guard closes the window
// between that check and the write.
func (db *DB) CreateReservationGuarded(ctx context.Context, r *models.Reservation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var overlapping int
	queryCount := `SELECT COUNT(*) FROM reservations
                   WHERE room_id = ? AND status != ?
                     AND date(check_in) < date(?) AND date(check_out) > date(?)`
	err = tx.QueryRowContext(ctx, queryCount, r.RoomID.String(), models.StatusCancelled,
		r.CheckOutDate.Format("2006-01-02"), r.CheckInDate.Format("2006-01-02")).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("failed to check overlap in tx: %w", err)
	}
	if overlapping > 0 {
		return ErrConflict
	}

	now := time.Now()
	queryInsert := `INSERT INTO reservations (
                id, room_id, guest_name, phone_number, notes,
                check_in, check_out, status, created_at, updated_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, queryInsert,
		r.ID.String(),
		r.RoomID.String(),
		r.GuestName,
		r.PhoneNumber,
		r.Notes,
		r.CheckInDate.Format("2006-01-02"),
		r.CheckOutDate.Format("2006-01-02"),
		r.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation in tx: %w", err)
	}
	r.CreatedAt = now
	r.UpdatedAt = now

	return tx.Commit()
}

// SaveReservation upserts a reservation by id.
func (db *DB) SaveReservation(ctx context.Context, r *models.Reservation) error {
	now := time.Now()
	query := `INSERT INTO reservations (
                id, room_id, guest_name, phone_number, notes,
                check_in, check_out, status, created_at, updated_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
            ON CONFLICT(id) DO UPDATE SET
                room_id = excluded.room_id,
                guest_name = excluded.guest_name,
                phone_number = excluded.phone_number,
                notes = excluded.notes,
                check_in = excluded.check_in,
                check_out = excluded.check_out,
                status = excluded.status,
                updated_at = excluded.updated_at`
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	_, err := db.ExecContext(ctx, query,
		r.ID.String(),
		r.RoomID.String(),
		r.GuestName,
		r.PhoneNumber,
		r.Notes,
		r.CheckInDate.Format("2006-01-02"),
		r.CheckOutDate.Format("2006-01-02"),
		r.Status,
		createdAt,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to save reservation: %w", err)
	}
	r.CreatedAt = createdAt
	r.UpdatedAt = now
	return nil
}

// GetReservation returns a reservation by id.
func (db *DB) GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	row := db.QueryRowContext(ctx, query, id.String())

	r, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return r, nil
}

// DeleteReservation removes a reservation permanently.
func (db *DB) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	result, err := db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// UpdateReservationStatus overwrites only the status column. Used to
// persist reconciliation corrections; last write wins.
func (db *DB) UpdateReservationStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) error {
	query := `UPDATE reservations SET status = ?, updated_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, status, time.Now(), id.String())
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	return nil
}

// ReservationsForRoom returns every reservation referencing the room.
func (db *DB) ReservationsForRoom(ctx context.Context, roomID uuid.UUID) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
              WHERE room_id = ? ORDER BY check_in ASC`
	rows, err := db.QueryContext(ctx, query, roomID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations for room: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

// AllReservations returns every stored reservation.
func (db *DB) AllReservations(ctx context.Context) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY check_in ASC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*models.Reservation, error) {
	var (
		r                 models.Reservation
		idStr, roomIDStr  string
		checkIn, checkOut string
		phone, notes      sql.NullString
	)
	err := row.Scan(&idStr, &roomIDStr, &r.GuestName, &phone, &notes,
		&checkIn, &checkOut, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if r.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("failed to parse reservation id %s: %w", idStr, err)
	}
	if r.RoomID, err = uuid.Parse(roomIDStr); err != nil {
		return nil, fmt.Errorf("failed to parse room id %s: %w", roomIDStr, err)
	}
	if r.CheckInDate, err = time.Parse("2006-01-02", checkIn); err != nil {
		return nil, fmt.Errorf("failed to parse check-in date %s: %w", checkIn, err)
	}
	if r.CheckOutDate, err = time.Parse("2006-01-02", checkOut); err != nil {
		return nil, fmt.Errorf("failed to parse check-out date %s: %w", checkOut, err)
	}
	r.PhoneNumber = phone.String
	r.Notes = notes.String

	return &r, nil
}

func collectReservations(rows *sql.Rows) ([]models.Reservation, error) {
	var reservations []models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}
