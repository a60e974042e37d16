package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ruei-yu/activity-checkin-points/config"
	"github.com/ruei-yu/activity-checkin-points/utils"
)

// EventController generates check-in links and their QR codes. It holds no
// state: the link fully encodes the event.
type EventController struct {
	cfg config.AppConfig
}

// NewEventController creates a new controller instance.
func NewEventController(cfg config.AppConfig) *EventController {
	return &EventController{cfg: cfg}
}

type createLinkRequest struct {
	EventID  string `json:"event_id"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

// CreateLink builds the check-in URL for an event. An empty event_id gets a
// generated one so organizers do not have to invent identifiers.
func (e *EventController) CreateLink(ctx *gin.Context) {
	var req createLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	eventID := strings.TrimSpace(utils.Sanitize(req.EventID))
	if eventID == "" {
		eventID = "event-" + uuid.NewString()[:8]
	}

	if req.Category != "" {
		if _, ok := e.cfg.CategoryPoints()[req.Category]; !ok {
			utils.Error(ctx, http.StatusBadRequest, 40002, "unknown category")
			return
		}
	}
	if req.Date != "" {
		if _, err := parseDate(req.Date); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40003, "invalid date, expected YYYY-MM-DD")
			return
		}
	}

	link := utils.CheckinURL(e.cfg.BaseURL, eventID, req.Category, req.Date)
	utils.Success(ctx, gin.H{
		"event_id": eventID,
		"url":      link,
		"qr_path":  "/api/v1/events/" + eventID + "/qr",
	})
}

// QR answers the PNG QR image for an event's check-in URL. category and
// date query parameters are carried into the encoded link.
func (e *EventController) QR(ctx *gin.Context) {
	eventID := strings.TrimSpace(ctx.Param("id"))
	if eventID == "" {
		utils.Error(ctx, http.StatusBadRequest, 40005, "event_id cannot be empty")
		return
	}

	link := utils.CheckinURL(e.cfg.BaseURL, eventID, ctx.Query("category"), ctx.Query("date"))
	png, err := utils.QRPNG(link)
	if err != nil {
		utils.Sugar.Warnf("qr generation failed: %v", err)
		utils.Error(ctx, http.StatusUnprocessableEntity, 42201, "failed to generate QR code")
		return
	}

	ctx.Header("Content-Disposition", `inline; filename="checkin_`+eventID+`.png"`)
	ctx.Data(http.StatusOK, "image/png", png)
}
