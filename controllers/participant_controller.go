package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ruei-yu/activity-checkin-points/config"
	"github.com/ruei-yu/activity-checkin-points/storage"
	"github.com/ruei-yu/activity-checkin-points/utils"
)

// ParticipantController serves the personal history view.
type ParticipantController struct {
	store storage.CheckInStore
	cfg   config.AppConfig
}

// NewParticipantController creates a new controller instance.
func NewParticipantController(store storage.CheckInStore, cfg config.AppConfig) *ParticipantController {
	return &ParticipantController{store: store, cfg: cfg}
}

// Summary returns one participant's total points, matching records (newest
// first, optionally bounded by from/to dates) and reward-tier progress.
func (pc *ParticipantController) Summary(ctx *gin.Context) {
	name := strings.TrimSpace(ctx.Param("name"))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40007, "participant name is required")
		return
	}

	filter, ok := filterFromQuery(ctx)
	if !ok {
		return
	}
	filter.Name = name
	filter.NewestFirst = true

	records, err := pc.store.Query(filter)
	if err != nil {
		utils.Sugar.Errorf("personal history query failed for %s: %v", name, err)
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to load history")
		return
	}

	total, err := pc.store.TotalPoints(name, filter)
	if err != nil {
		utils.Sugar.Errorf("total points query failed for %s: %v", name, err)
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to load history")
		return
	}

	tiers := pc.cfg.SortedRewards()
	utils.Success(ctx, gin.H{
		"participant_name": name,
		"total_points":     total,
		"records":          records,
		"rewards_unlocked": utils.UnlockedRewards(total, tiers),
		"reward_text":      utils.RewardText(total, tiers),
		"next_hint":        utils.NextRewardHint(total, tiers),
	})
}
