package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardEndpointOrdering(t *testing.T) {
	r, store := setupTestRouter(t)

	// Alice 10, then Bob 15, then Alice 5: tie at 15, Bob reached it first.
	seedStoreRecord(t, store, "E1", "keynote", "Alice", "2024-05-01", 10)
	seedStoreRecord(t, store, "E2", "keynote", "Bob", "2024-05-02", 15)
	seedStoreRecord(t, store, "E3", "keynote", "Alice", "2024-05-03", 5)

	w := doJSON(t, r, "GET", "/api/v1/leaderboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)

	entries, ok := resp.Data["entries"].([]interface{})
	require.True(t, ok)
	require.Len(t, entries, 2)

	first := entries[0].(map[string]interface{})
	second := entries[1].(map[string]interface{})
	assert.Equal(t, "Bob", first["participant_name"])
	assert.Equal(t, float64(15), first["total_points"])
	assert.Equal(t, "Alice", second["participant_name"])
	assert.Equal(t, float64(15), second["total_points"])
}

func TestLeaderboardLimitParam(t *testing.T) {
	r, store := setupTestRouter(t)

	seedStoreRecord(t, store, "E1", "keynote", "Alice", "2024-05-01", 10)
	seedStoreRecord(t, store, "E1", "keynote", "Bob", "2024-05-02", 5)

	w := doJSON(t, r, "GET", "/api/v1/leaderboard?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeResponse(t, w).Data["entries"].([]interface{})
	assert.Len(t, entries, 1)

	w = doJSON(t, r, "GET", "/api/v1/leaderboard?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStats(t *testing.T) {
	r, store := setupTestRouter(t)

	seedStoreRecord(t, store, "E1", "keynote", "Alice", "2024-05-01", 10)
	seedStoreRecord(t, store, "E1", "workshop", "Alice", "2024-05-01", 10)
	seedStoreRecord(t, store, "E1", "keynote", "Bob", "2024-05-01", 10)

	w := doJSON(t, r, "GET", "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, float64(3), resp.Data["checkin_count"])
	assert.Equal(t, float64(2), resp.Data["participant_count"])
}

func TestConfigEndpoints(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, "GET", "/api/v1/config/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cats := decodeResponse(t, w).Data["categories"].([]interface{})
	assert.Len(t, cats, 3)

	w = doJSON(t, r, "GET", "/api/v1/config/rewards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rewards := decodeResponse(t, w).Data["rewards"].([]interface{})
	require.Len(t, rewards, 4)
	first := rewards[0].(map[string]interface{})
	assert.Equal(t, float64(3), first["threshold"])
}
