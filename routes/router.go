package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ruei-yu/activity-checkin-points/config"
	"github.com/ruei-yu/activity-checkin-points/controllers"
	"github.com/ruei-yu/activity-checkin-points/middleware"
	"github.com/ruei-yu/activity-checkin-points/storage"
	"github.com/ruei-yu/activity-checkin-points/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log goes to its own rolling file so it stays out of the app log
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type"},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}))

	r.Static("/static", "./static")
	r.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	store := storage.NewGormCheckInStore(db)
	checkinController := controllers.NewCheckinController(store, cfg)
	recordsController := controllers.NewRecordsController(store)
	participantController := controllers.NewParticipantController(store, cfg)
	statsController := controllers.NewStatsController(store, cfg)
	eventController := controllers.NewEventController(cfg)
	configController := controllers.NewConfigController(cfg)

	api := r.Group("/api/v1")

	writes := api.Group("")
	writes.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
	writes.POST("/checkins", checkinController.Create)
	writes.POST("/events/links", eventController.CreateLink)

	api.GET("/checkins", recordsController.List)
	api.GET("/checkins/export", recordsController.Export)
	api.GET("/participants/:name/summary", participantController.Summary)
	api.GET("/leaderboard", statsController.Leaderboard)
	api.GET("/stats", statsController.GetStats)
	api.GET("/events/:id/qr", eventController.QR)
	api.GET("/config/categories", configController.GetCategories)
	api.GET("/config/rewards", configController.GetRewards)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		// Anything else falls back to the single-page form
		ctx.Status(http.StatusOK)
		ctx.File("./static/index.html")
	})

	return r
}
