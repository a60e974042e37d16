package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// CategoryConfig maps a check-in category to the points it awards and a
// short description shown on the form.
type CategoryConfig struct {
	Category string `json:"category"`
	Points   int    `json:"points"`
	Tips     string `json:"tips"`
}

// RewardTier is a point threshold that unlocks a reward.
type RewardTier struct {
	Threshold int    `json:"threshold"`
	Reward    string `json:"reward"`
}

// AppConfig holds file and environment driven configuration values.
type AppConfig struct {
	AppPort string
	// BaseURL is the public URL embedded into check-in links and QR codes.
	BaseURL string
	GinMode string
	GinPath string

	// Database. Driver is "sqlite" (file-backed, the default) or "mysql".
	DBDriver    string
	DBPath      string
	DatabaseURI string

	RateLimitPerMinute int
	LeaderboardLimit   int

	Categories []CategoryConfig
	Rewards    []RewardTier

	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

// fileConfig mirrors config/config.json. Grouped sections keep the file
// readable; every key is optional.
type fileConfig struct {
	App *struct {
		AppPort            string `json:"AppPort"`
		BaseURL            string `json:"BaseURL"`
		GinMode            string `json:"GinMode"`
		GinPath            string `json:"GinPath"`
		RateLimitPerMinute int    `json:"RateLimitPerMinute"`
		LeaderboardLimit   int    `json:"LeaderboardLimit"`
	} `json:"app"`
	Database *struct {
		Driver      string `json:"Driver"`
		Path        string `json:"Path"`
		DatabaseURI string `json:"DatabaseURI"`
	} `json:"database"`
	Points *struct {
		Categories []CategoryConfig `json:"Categories"`
		Rewards    []RewardTier     `json:"Rewards"`
	} `json:"points"`
	Log *struct {
		Level      string `json:"Level"`
		Path       string `json:"Path"`
		MaxSizeMB  int    `json:"MaxSizeMB"`
		MaxBackups int    `json:"MaxBackups"`
		MaxAgeDays int    `json:"MaxAgeDays"`
		Compress   bool   `json:"Compress"`
	} `json:"log"`
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during
// boot. Precedence: config/config.json -> defaults -> environment overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	if err := loadJSONConfig(filepath.Join("config", "config.json"), &cfg); err != nil {
		log.Fatalf("invalid config/config.json: %v", err)
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// loadJSONConfig reads the JSON file into out if present. A missing file is
// not an error; invalid JSON is.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var raw fileConfig
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	if app := raw.App; app != nil {
		out.AppPort = app.AppPort
		out.BaseURL = app.BaseURL
		out.GinMode = app.GinMode
		out.GinPath = app.GinPath
		out.RateLimitPerMinute = app.RateLimitPerMinute
		out.LeaderboardLimit = app.LeaderboardLimit
	}
	if dbs := raw.Database; dbs != nil {
		out.DBDriver = dbs.Driver
		out.DBPath = dbs.Path
		out.DatabaseURI = dbs.DatabaseURI
	}
	if pt := raw.Points; pt != nil {
		out.Categories = pt.Categories
		out.Rewards = pt.Rewards
	}
	if lg := raw.Log; lg != nil {
		out.LogLevel = lg.Level
		out.LogPath = lg.Path
		out.LogMaxSizeMB = lg.MaxSizeMB
		out.LogMaxBackups = lg.MaxBackups
		out.LogMaxAgeDays = lg.MaxAgeDays
		out.LogCompress = lg.Compress
	}
	return nil
}

// applyDefaults sets sane defaults for zero-value fields. Category and
// reward defaults mirror the stock points scheme the tool ships with.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:" + c.AppPort
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/go_gin.log"
	}
	if c.DBDriver == "" {
		c.DBDriver = "sqlite"
	}
	if c.DBPath == "" {
		c.DBPath = "data/checkins.db"
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 60
	}
	// LeaderboardLimit 0 means all participants; keep it as the default.
	if len(c.Categories) == 0 {
		c.Categories = []CategoryConfig{
			{Category: "志工", Points: 1, Tips: "參與志工活動、擔任出隊籌備人員、帶朋友參與志工活動"},
			{Category: "美食", Points: 1, Tips: "擔任廚師、協助送餐、參與／帶動美食 DIY 社課"},
			{Category: "中華文化", Points: 2, Tips: "獻供、辦道、參與心靈成長營、讀書會"},
		}
	}
	if len(c.Rewards) == 0 {
		c.Rewards = []RewardTier{
			{Threshold: 3, Reward: "晚餐免費"},
			{Threshold: 6, Reward: "手搖飲料"},
			{Threshold: 10, Reward: "活動免費"},
			{Threshold: 20, Reward: "志工慶功宴（崇德發）"},
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) {
	if v := getEnv("APP_PORT", ""); v != "" {
		c.AppPort = v
	}
	if v := getEnv("BASE_URL", ""); v != "" {
		c.BaseURL = v
	}
	if v := getEnv("GIN_MODE", ""); v != "" {
		c.GinMode = v
	}
	if v := getEnv("GIN_PATH", ""); v != "" {
		c.GinPath = v
	}
	if v := getEnv("DB_DRIVER", ""); v != "" {
		c.DBDriver = strings.ToLower(v)
	}
	if v := getEnv("DB_PATH", ""); v != "" {
		c.DBPath = v
	}
	if v := getEnv("DATABASE_URI", ""); v != "" {
		c.DatabaseURI = v
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		c.RateLimitPerMinute = mustParseInt(v)
	}
	if v := getEnv("LEADERBOARD_LIMIT", ""); v != "" {
		c.LeaderboardLimit = mustParseInt(v)
	}
	if v := getEnv("LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := getEnv("LOG_PATH", ""); v != "" {
		c.LogPath = v
	}
	if v := getEnv("LOG_MAX_SIZE_MB", ""); v != "" {
		c.LogMaxSizeMB = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_BACKUPS", ""); v != "" {
		c.LogMaxBackups = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_AGE_DAYS", ""); v != "" {
		c.LogMaxAgeDays = mustParseInt(v)
	}
	if v := getEnv("LOG_COMPRESS", ""); v != "" {
		c.LogCompress = v == "true"
	}
}

// CategoryPoints returns the category -> points lookup used when awarding
// check-ins. Categories without a name are skipped.
func (c AppConfig) CategoryPoints() map[string]int {
	m := make(map[string]int, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Category != "" {
			m[cat.Category] = cat.Points
		}
	}
	return m
}

// SortedRewards returns reward tiers ordered by ascending threshold.
func (c AppConfig) SortedRewards() []RewardTier {
	tiers := make([]RewardTier, len(c.Rewards))
	copy(tiers, c.Rewards)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Threshold < tiers[j].Threshold })
	return tiers
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func mustParseInt(val string) int {
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid integer value %s: %v", val, err)
	}
	return i
}
