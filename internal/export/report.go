package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/domain"
	"github.com/AykutYamak/MyGuestRooms/internal/engine"
	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ReportWriter renders occupancy reports as xlsx files: one row per room,
// one column per date, guest names in occupied cells.
type ReportWriter struct {
	rooms        domain.RoomStore
	reservations domain.ReservationStore
	path         string
}

func NewReportWriter(rooms domain.RoomStore, reservations domain.ReservationStore, path string) *ReportWriter {
	return &ReportWriter{
		rooms:        rooms,
		reservations: reservations,
		path:         path,
	}
}

// BuildReport writes the occupancy grid for [from, to] and returns the
// file path.
func (w *ReportWriter) BuildReport(ctx context.Context, from, to time.Time) (string, error) {
	if err := os.MkdirAll(w.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	rooms, err := w.rooms.ListRooms(ctx)
	if err != nil {
		return "", fmt.Errorf("error getting rooms: %w", err)
	}

	reservations, err := w.reservations.AllReservations(ctx)
	if err != nil {
		return "", fmt.Errorf("error getting reservations: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Occupancy"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Period: %s - %s",
		engine.FormatDate(from), engine.FormatDate(to)))

	days := w.writeDateHeaders(f, sheetName, from, to)
	w.writeRoomRows(f, sheetName, rooms, reservations, from, days)

	_ = f.SetColWidth(sheetName, "A", "A", 12)
	lastCol, _ := excelize.ColumnNumberToName(days + 1)
	_ = f.SetColWidth(sheetName, "B", lastCol, 18)
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", style)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("occupancy_%s_to_%s.xlsx", engine.FormatDate(from), engine.FormatDate(to))
	fullPath := filepath.Join(w.path, fileName)
	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("error saving report: %w", err)
	}

	return fullPath, nil
}

// writeDateHeaders fills row 2 with one column per date and returns the
// number of days covered.
func (w *ReportWriter) writeDateHeaders(f *excelize.File, sheet string, from, to time.Time) int {
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	for i := 0; i < days; i++ {
		col, _ := excelize.ColumnNumberToName(i + 2)
		date := from.AddDate(0, 0, i)
		_ = f.SetCellValue(sheet, col+"2", date.Format("02.01"))
	}
	_ = f.SetCellValue(sheet, "A2", "Room")
	return days
}

func (w *ReportWriter) writeRoomRows(f *excelize.File, sheet string, rooms []models.Room, reservations []models.Reservation, from time.Time, days int) {
	for rowIdx, room := range rooms {
		row := rowIdx + 3
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), room.RoomNumber)

		for i := 0; i < days; i++ {
			date := from.AddDate(0, 0, i)
			guest := occupant(reservations, room.ID, date)
			if guest == "" {
				continue
			}
			col, _ := excelize.ColumnNumberToName(i + 2)
			_ = f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), guest)
		}
	}
}

// occupant returns the guest holding the room on the date, if any.
// Cancelled reservations never occupy a room.
func occupant(reservations []models.Reservation, roomID uuid.UUID, date time.Time) string {
	for _, r := range reservations {
		if r.Status == models.StatusCancelled {
			continue
		}
		if r.RoomID == roomID && r.Covers(date) {
			return r.GuestName
		}
	}
	return ""
}
