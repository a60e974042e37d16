package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ruei-yu/activity-checkin-points/config"
	"github.com/ruei-yu/activity-checkin-points/storage"
	"github.com/ruei-yu/activity-checkin-points/utils"
)

// StatsController provides the leaderboard and overall counters.
type StatsController struct {
	store storage.CheckInStore
	cfg   config.AppConfig
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(store storage.CheckInStore, cfg config.AppConfig) *StatsController {
	return &StatsController{store: store, cfg: cfg}
}

// Leaderboard returns participants ranked by total points, descending;
// ties go to the earlier first check-in. The limit query parameter
// overrides the configured default (0 = everyone).
func (s *StatsController) Leaderboard(ctx *gin.Context) {
	limit := s.cfg.LeaderboardLimit
	if v := ctx.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			utils.Error(ctx, http.StatusBadRequest, 40008, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := s.store.Leaderboard(limit)
	if err != nil {
		utils.Sugar.Errorf("leaderboard query failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50005, "failed to compute leaderboard")
		return
	}

	utils.Success(ctx, gin.H{"entries": entries})
}

// GetStats returns aggregate counters for the dashboard header.
func (s *StatsController) GetStats(ctx *gin.Context) {
	total, err := s.store.Count()
	if err != nil {
		total = 0
	}

	participants := 0
	if entries, err := s.store.Leaderboard(0); err == nil {
		participants = len(entries)
	}

	today := storage.DateOnly(time.Now())
	todayCount := 0
	if records, err := s.store.Query(storage.Filter{From: &today, To: &today}); err == nil {
		todayCount = len(records)
	}

	utils.Success(ctx, gin.H{
		"checkin_count":     total,
		"participant_count": participants,
		"today_count":       todayCount,
	})
}
