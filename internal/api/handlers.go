package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/AykutYamak/MyGuestRooms/internal/database"
	"github.com/AykutYamak/MyGuestRooms/internal/domain"
	"github.com/AykutYamak/MyGuestRooms/internal/engine"
	"github.com/AykutYamak/MyGuestRooms/internal/models"
	"github.com/AykutYamak/MyGuestRooms/internal/service"

	"github.com/google/uuid"
)

type reservationRequest struct {
	RoomNumber   string `json:"room_number"`
	GuestName    string `json:"guest_name"`
	PhoneNumber  string `json:"phone_number"`
	Notes        string `json:"notes"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Status       string `json:"status,omitempty"`
}

type reservationResponse struct {
	ID           string `json:"id"`
	RoomNumber   string `json:"room_number"`
	GuestName    string `json:"guest_name"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Nights       int    `json:"nights"`
	Status       string `json:"status"`
}

func (s *Server) handleReservations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listReservations(w, r)
	case http.MethodPost:
		s.createReservation(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listReservations(w http.ResponseWriter, r *http.Request) {
	var filter domain.ListInput

	if raw := strings.TrimSpace(r.URL.Query().Get("check_in_from")); raw != "" {
		date, err := engine.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid check_in_from; expected YYYY-MM-DD")
			return
		}
		filter.CheckInFrom = &date
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("check_out_until")); raw != "" {
		date, err := engine.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid check_out_until; expected YYYY-MM-DD")
			return
		}
		filter.CheckOutUntil = &date
	}

	reservations, err := s.reservations.ListReservations(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	out := make([]reservationResponse, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, s.toResponse(r, res))
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": out})
}

func (s *Server) createReservation(w http.ResponseWriter, r *http.Request) {
	var body reservationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	input, err := body.toCreateInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reservation, err := s.reservations.CreateReservation(r.Context(), input)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, s.toResponse(r, *reservation))
}

func (s *Server) handleReservationByID(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/v1/reservations/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)

	if idStr, ok := strings.CutSuffix(rest, "/cancel"); ok {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.cancelReservation(w, r, idStr)
		return
	}

	if rest == "" || strings.Contains(rest, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	id, err := uuid.Parse(rest)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		reservation, err := s.reservations.GetReservation(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.toResponse(r, *reservation))
	case http.MethodPut:
		s.updateReservation(w, r, id)
	case http.MethodDelete:
		if err := s.reservations.DeleteReservation(r.Context(), id); err != nil {
			s.writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) updateReservation(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var body reservationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	input, err := body.toUpdateInput(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reservation, err := s.reservations.UpdateReservation(r.Context(), input)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.toResponse(r, *reservation))
}

func (s *Server) cancelReservation(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	reservation, err := s.reservations.CancelReservation(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.toResponse(r, *reservation))
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rooms, err := s.rooms.ListRooms(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	type roomResponse struct {
		ID          string `json:"id"`
		RoomNumber  string `json:"room_number"`
		Description string `json:"description,omitempty"`
		Capacity    int    `json:"capacity"`
	}

	out := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, roomResponse{
			ID:          room.ID.String(),
			RoomNumber:  room.RoomNumber,
			Description: room.Description,
			Capacity:    room.Capacity,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": out})
}

// handleRoomAvailability serves GET /api/v1/rooms/{number}/availability.
func (s *Server) handleRoomAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	const prefix = "/api/v1/rooms/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	roomNumber, ok := strings.CutSuffix(rest, "/availability")
	if !ok || roomNumber == "" || strings.Contains(roomNumber, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	checkIn, err := engine.ParseDate(strings.TrimSpace(r.URL.Query().Get("check_in")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid check_in; expected YYYY-MM-DD")
		return
	}
	checkOut, err := engine.ParseDate(strings.TrimSpace(r.URL.Query().Get("check_out")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid check_out; expected YYYY-MM-DD")
		return
	}

	available, err := s.reservations.CheckAvailability(r.Context(), roomNumber, checkIn, checkOut)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"room_number": roomNumber,
		"check_in":    engine.FormatDate(checkIn),
		"check_out":   engine.FormatDate(checkOut),
		"available":   available,
	})
}

func (b reservationRequest) toCreateInput() (domain.CreateReservationInput, error) {
	if strings.TrimSpace(b.RoomNumber) == "" {
		return domain.CreateReservationInput{}, errors.New("room_number is required")
	}
	if strings.TrimSpace(b.GuestName) == "" {
		return domain.CreateReservationInput{}, errors.New("guest_name is required")
	}

	checkIn, err := engine.ParseDate(b.CheckInDate)
	if err != nil {
		return domain.CreateReservationInput{}, errors.New("invalid check_in_date; expected YYYY-MM-DD")
	}
	checkOut, err := engine.ParseDate(b.CheckOutDate)
	if err != nil {
		return domain.CreateReservationInput{}, errors.New("invalid check_out_date; expected YYYY-MM-DD")
	}

	return domain.CreateReservationInput{
		RoomNumber:   strings.TrimSpace(b.RoomNumber),
		GuestName:    strings.TrimSpace(b.GuestName),
		PhoneNumber:  strings.TrimSpace(b.PhoneNumber),
		Notes:        strings.TrimSpace(b.Notes),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	}, nil
}

func (b reservationRequest) toUpdateInput(id uuid.UUID) (domain.UpdateReservationInput, error) {
	create, err := b.toCreateInput()
	if err != nil {
		return domain.UpdateReservationInput{}, err
	}

	var reqStatus models.ReservationStatus
	if raw := strings.TrimSpace(b.Status); raw != "" {
		parsed, err := models.ParseStatus(raw)
		if err != nil {
			return domain.UpdateReservationInput{}, err
		}
		reqStatus = parsed
	}

	return domain.UpdateReservationInput{
		ID:           id,
		RoomNumber:   create.RoomNumber,
		GuestName:    create.GuestName,
		PhoneNumber:  create.PhoneNumber,
		Notes:        create.Notes,
		CheckInDate:  create.CheckInDate,
		CheckOutDate: create.CheckOutDate,
		Status:       reqStatus,
	}, nil
}

func (s *Server) toResponse(r *http.Request, res models.Reservation) reservationResponse {
	roomNumber := ""
	if room, err := s.rooms.GetRoomByID(r.Context(), res.RoomID); err == nil {
		roomNumber = room.RoomNumber
	}

	return reservationResponse{
		ID:           res.ID.String(),
		RoomNumber:   roomNumber,
		GuestName:    res.GuestName,
		PhoneNumber:  res.PhoneNumber,
		Notes:        res.Notes,
		CheckInDate:  engine.FormatDate(res.CheckInDate),
		CheckOutDate: engine.FormatDate(res.CheckOutDate),
		Nights:       res.Nights(),
		Status:       string(res.Status),
	}
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStatusNotAllowed):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, database.ErrRoomNotFound), errors.Is(err, database.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
