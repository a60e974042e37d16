package controllers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruei-yu/activity-checkin-points/storage"
	"github.com/ruei-yu/activity-checkin-points/utils"
)

func TestListRecordsWithFilters(t *testing.T) {
	r, store := setupTestRouter(t)

	seedStoreRecord(t, store, "summer-fest", "keynote", "Alice", "2024-05-01", 10)
	seedStoreRecord(t, store, "summer-fest", "workshop", "Bob", "2024-05-02", 10)
	seedStoreRecord(t, store, "winter-camp", "keynote", "Alice", "2024-12-01", 10)

	w := doJSON(t, r, "GET", "/api/v1/checkins", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeResponse(t, w).Data["total"])

	w = doJSON(t, r, "GET", "/api/v1/checkins?event=summer-fest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeResponse(t, w).Data["total"])

	w = doJSON(t, r, "GET", "/api/v1/checkins?date=2024-05-02", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeResponse(t, w).Data["total"])

	w = doJSON(t, r, "GET", "/api/v1/checkins?from=2024-05-02&to=2024-12-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeResponse(t, w).Data["total"])

	w = doJSON(t, r, "GET", "/api/v1/checkins?keyword=winter", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeResponse(t, w).Data["total"])

	w = doJSON(t, r, "GET", "/api/v1/checkins?date=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportCSVRoundTrip(t *testing.T) {
	r, store := setupTestRouter(t)

	seedStoreRecord(t, store, "summer-fest", "志工", "王小明", "2024-05-01", 1)
	seedStoreRecord(t, store, "summer-fest", "keynote", "Alice", "2024-05-01", 10)

	w := doJSON(t, r, "GET", "/api/v1/checkins/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "checkins.csv")

	body := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}), "export must start with a UTF-8 BOM")

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(body, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, utils.CSVHeader, rows[0])

	// insertion order preserved, non-ASCII names intact
	assert.Equal(t, "王小明", rows[1][2])
	assert.Equal(t, "志工", rows[1][1])
	assert.Equal(t, "2024-05-01", rows[1][3])
	assert.Equal(t, "1", rows[1][5])

	assert.Equal(t, "Alice", rows[2][2])
	assert.Equal(t, "10", rows[2][5])

	records, err := store.Query(storage.Filter{})
	require.NoError(t, err)
	require.Len(t, records, len(rows)-1)
	for i, rec := range records {
		row := rows[i+1]
		assert.Equal(t, rec.EventID, row[0])
		assert.Equal(t, rec.Category, row[1])
		assert.Equal(t, rec.ParticipantName, row[2])
		assert.Equal(t, rec.DateString(), row[3])
	}
}

func TestExportFilteredByEvent(t *testing.T) {
	r, store := setupTestRouter(t)

	seedStoreRecord(t, store, "summer-fest", "志工", "Alice", "2024-05-01", 1)
	seedStoreRecord(t, store, "winter-camp", "志工", "Bob", "2024-12-01", 1)

	w := doJSON(t, r, "GET", "/api/v1/checkins/export?event=winter-camp", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := bytes.TrimPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF})
	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bob", rows[1][2])
}
