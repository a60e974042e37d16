package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/ruei-yu/activity-checkin-points/config"
	"github.com/ruei-yu/activity-checkin-points/utils"
)

// ConfigController exposes the points scheme to the form frontend.
type ConfigController struct {
	cfg config.AppConfig
}

func NewConfigController(cfg config.AppConfig) *ConfigController {
	return &ConfigController{cfg: cfg}
}

// GetCategories returns the configured categories with points and tips.
func (c *ConfigController) GetCategories(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"categories": c.cfg.Categories})
}

// GetRewards returns the reward tiers in ascending threshold order.
func (c *ConfigController) GetRewards(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"rewards": c.cfg.SortedRewards()})
}
