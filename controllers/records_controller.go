package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruei-yu/activity-checkin-points/storage"
	"github.com/ruei-yu/activity-checkin-points/utils"
)

// RecordsController serves the full log and its CSV export.
type RecordsController struct {
	store storage.CheckInStore
}

// NewRecordsController creates a new controller instance.
func NewRecordsController(store storage.CheckInStore) *RecordsController {
	return &RecordsController{store: store}
}

// List returns check-in records, optionally filtered by event, category,
// participant, date or date range, and an event-id keyword.
func (rc *RecordsController) List(ctx *gin.Context) {
	filter, ok := filterFromQuery(ctx)
	if !ok {
		return
	}

	records, err := rc.store.Query(filter)
	if err != nil {
		utils.Sugar.Errorf("record query failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to load records")
		return
	}

	utils.Success(ctx, gin.H{
		"total":   len(records),
		"records": records,
	})
}

// Export streams the (filtered) log as a CSV download.
func (rc *RecordsController) Export(ctx *gin.Context) {
	filter, ok := filterFromQuery(ctx)
	if !ok {
		return
	}
	// Exports always keep insertion order so re-imports line up.
	filter.NewestFirst = false

	records, err := rc.store.Query(filter)
	if err != nil {
		utils.Sugar.Errorf("record query for export failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to load records")
		return
	}

	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Header("Content-Disposition", `attachment; filename="checkins.csv"`)
	ctx.Status(http.StatusOK)
	if err := utils.WriteCheckInCSV(ctx.Writer, records); err != nil {
		utils.Sugar.Errorf("csv export failed: %v", err)
	}
}

// filterFromQuery builds a storage filter from shared query parameters.
// It answers the request itself on invalid dates and returns ok=false.
func filterFromQuery(ctx *gin.Context) (storage.Filter, bool) {
	filter := storage.Filter{
		EventID:     ctx.Query("event"),
		Category:    ctx.Query("category"),
		Name:        ctx.Query("name"),
		Keyword:     ctx.Query("keyword"),
		NewestFirst: ctx.Query("order") == "newest",
	}

	if v := ctx.Query("date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40006, "invalid date, expected YYYY-MM-DD")
			return storage.Filter{}, false
		}
		filter.From = &d
		filter.To = &d
	}
	if v := ctx.Query("from"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40006, "invalid from date, expected YYYY-MM-DD")
			return storage.Filter{}, false
		}
		filter.From = &d
	}
	if v := ctx.Query("to"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40006, "invalid to date, expected YYYY-MM-DD")
			return storage.Filter{}, false
		}
		filter.To = &d
	}
	return filter, true
}
