package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ruei-yu/activity-checkin-points/config"
	"github.com/ruei-yu/activity-checkin-points/models"
	"github.com/ruei-yu/activity-checkin-points/storage"
	"github.com/ruei-yu/activity-checkin-points/utils"
)

// CheckinController handles on-site check-in submissions.
type CheckinController struct {
	store storage.CheckInStore
	cfg   config.AppConfig
}

// NewCheckinController creates a new controller instance.
func NewCheckinController(store storage.CheckInStore, cfg config.AppConfig) *CheckinController {
	return &CheckinController{store: store, cfg: cfg}
}

type checkinRequest struct {
	EventID  string `json:"event_id" binding:"required"`
	Category string `json:"category" binding:"required"`
	// Names accepts several participants at once, separated by whitespace
	// or (fullwidth) commas. ParticipantName is the single-name variant.
	Names           string `json:"names"`
	ParticipantName string `json:"participant_name"`
	Note            string `json:"note"`
	// Date is the activity date in YYYY-MM-DD; empty means today.
	Date string `json:"date"`
}

// Create records check-ins for one or more participants. Names already
// checked in under the same event/category/date are reported back instead
// of being written twice.
func (cc *CheckinController) Create(ctx *gin.Context) {
	var req checkinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	points, ok := cc.cfg.CategoryPoints()[req.Category]
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40002, "unknown category; rebuild the check-in link")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40003, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	raw := req.Names
	if raw == "" {
		raw = req.ParticipantName
	}
	names := utils.SplitNames(utils.Sanitize(raw))
	if len(names) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40004, "at least one participant name is required")
		return
	}

	eventID := strings.TrimSpace(utils.Sanitize(req.EventID))
	if eventID == "" {
		utils.Error(ctx, http.StatusBadRequest, 40005, "event_id cannot be empty")
		return
	}
	note := strings.TrimSpace(utils.Sanitize(req.Note))

	now := time.Now()
	checkedIn := make([]string, 0, len(names))
	duplicates := make([]string, 0)

	for _, name := range names {
		record := models.CheckIn{
			EventID:         eventID,
			Category:        req.Category,
			ParticipantName: name,
			ActivityDate:    storage.DateOnly(date),
			CheckedInAt:     now,
			Points:          points,
			Note:            note,
		}
		if err := cc.store.Append(&record); err != nil {
			if errors.Is(err, storage.ErrDuplicateCheckIn) {
				duplicates = append(duplicates, name)
				continue
			}
			utils.Sugar.Errorf("check-in append failed for %s: %v", name, err)
			utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to record check-in")
			return
		}
		checkedIn = append(checkedIn, name)
	}

	if len(checkedIn) == 0 {
		utils.Respond(ctx, http.StatusConflict, 40901, "already checked in", gin.H{
			"duplicates": duplicates,
		})
		return
	}

	utils.Success(ctx, gin.H{
		"checked_in":  checkedIn,
		"duplicates":  duplicates,
		"points_each": points,
	})
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
