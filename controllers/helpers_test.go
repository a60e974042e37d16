package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ruei-yu/activity-checkin-points/config"
	"github.com/ruei-yu/activity-checkin-points/models"
	"github.com/ruei-yu/activity-checkin-points/storage"
	"github.com/ruei-yu/activity-checkin-points/utils"
)

func testConfig() config.AppConfig {
	return config.AppConfig{
		AppPort: "8080",
		BaseURL: "http://checkin.local",
		Categories: []config.CategoryConfig{
			{Category: "keynote", Points: 10},
			{Category: "workshop", Points: 10},
			{Category: "志工", Points: 1, Tips: "參與志工活動"},
		},
		Rewards: []config.RewardTier{
			{Threshold: 3, Reward: "晚餐免費"},
			{Threshold: 6, Reward: "手搖飲料"},
			{Threshold: 10, Reward: "活動免費"},
			{Threshold: 20, Reward: "志工慶功宴"},
		},
	}
}

func setupTestRouter(t *testing.T) (*gin.Engine, *storage.GormCheckInStore) {
	t.Helper()

	utils.Logger = zap.NewNop()
	utils.Sugar = utils.Logger.Sugar()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "checkins.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.CheckIn{}))

	store := storage.NewGormCheckInStore(db)
	cfg := testConfig()

	checkinController := NewCheckinController(store, cfg)
	recordsController := NewRecordsController(store)
	participantController := NewParticipantController(store, cfg)
	statsController := NewStatsController(store, cfg)
	eventController := NewEventController(cfg)
	configController := NewConfigController(cfg)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/checkins", checkinController.Create)
	api.GET("/checkins", recordsController.List)
	api.GET("/checkins/export", recordsController.Export)
	api.GET("/participants/:name/summary", participantController.Summary)
	api.GET("/leaderboard", statsController.Leaderboard)
	api.GET("/stats", statsController.GetStats)
	api.POST("/events/links", eventController.CreateLink)
	api.GET("/events/:id/qr", eventController.QR)
	api.GET("/config/categories", configController.GetCategories)
	api.GET("/config/rewards", configController.GetRewards)

	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type apiResponse struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func stringSlice(t *testing.T, v interface{}) []string {
	t.Helper()

	raw, ok := v.([]interface{})
	require.True(t, ok, "expected array, got %T", v)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		require.True(t, ok, "expected string element, got %T", item)
		out = append(out, s)
	}
	return out
}
