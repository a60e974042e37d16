package utils

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ruei-yu/activity-checkin-points/models"
)

// CSVHeader is the fixed column order of the exported log.
var CSVHeader = []string{"event_id", "category", "participant_name", "date", "timestamp", "points", "note"}

// utf8BOM makes spreadsheet software detect the encoding so non-ASCII
// names survive a double-click open.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCheckInCSV streams the records as a UTF-8 CSV with a BOM and header
// row, preserving the given order.
func WriteCheckInCSV(w io.Writer, records []models.CheckIn) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for i := range records {
		r := &records[i]
		row := []string{
			r.EventID,
			r.Category,
			r.ParticipantName,
			r.DateString(),
			r.CheckedInAt.Format("2006-01-02 15:04:05"),
			strconv.Itoa(r.Points),
			r.Note,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
