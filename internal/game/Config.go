package game

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	GameTickDuration = 33 * time.Millisecond
	RoundDuration    = 180 * time.Second

	DefaultMoveSpeed        = 1.0
	DefaultBoostFactor      = 2.0
	DefaultMaxBoost         = 2.0
	DefaultWallCheck        = 0.5
	DefaultSafetyMargin     = 0.05
	DefaultWallCooldown     = 0.5
	DefaultFallbackStep     = 0.2
	DefaultBaseExtent       = 0.25
	DefaultMaxExtent        = 1.5
	DefaultMinChange        = 4.0
	DefaultMaxChange        = 8.0
	DefaultPlayerGrowth     = 5.0
	DefaultBotGrowth        = 10.0
	DefaultMinBotSize       = 1
	DefaultMaxBotSize       = 5
	DefaultBotCount         = 5
	DefaultSpawnExclusion   = 0.5
	DefaultFoodInterval     = 3.0
	DefaultMaxFood          = 8
	DefaultArenaHalfWidth   = 20.0
	DefaultArenaHalfHeight  = 10.0
	DefaultWallThickness    = 0.5
	maxSpawnAttempts        = 100
	maxDirectionDraws       = 100
	probeBackOffset         = 0.1
	probeBoxScale           = 0.8
	overlapRadiusScale      = 0.9
	overlapEpsilon          = 0.001
	foodRadius              = 0.15
	passageFill             = 0.6
	envPrefix               = "ARENA_"
	defaultPlayerName       = "Player"
	defaultRoundSeconds     = float64(RoundDuration / time.Second)
	defaultBotScriptTimeout = 50 * time.Millisecond
)

// Config carries every tuning knob of the simulation. Zero values are not
// meaningful; start from DefaultConfig.
type Config struct {
	MoveSpeed             float64
	BoostFactor           float64
	MaxBoost              float64
	WallCheckDistance     float64
	SafetyMargin          float64
	WallCooldown          float64
	FallbackStep          float64
	BaseExtent            float64
	MaxExtent             float64
	MinChangeInterval     float64
	MaxChangeInterval     float64
	PlayerGrowthInterval  float64
	BotGrowthInterval     float64
	MinBotSize            int
	MaxBotSize            int
	BotCount              int
	SpawnExclusion        float64
	FoodInterval          float64
	MaxFood               int
	ArenaHalfWidth        float64
	ArenaHalfHeight       float64
	WallThickness         float64
	RoundSeconds          float64
	TieRule               TieRule
	BotScript             string
	PlayerName            string
	Seed                  int64
	BotScriptCallDeadline time.Duration
}

func DefaultConfig() Config {
	return Config{
		MoveSpeed:             DefaultMoveSpeed,
		BoostFactor:           DefaultBoostFactor,
		MaxBoost:              DefaultMaxBoost,
		WallCheckDistance:     DefaultWallCheck,
		SafetyMargin:          DefaultSafetyMargin,
		WallCooldown:          DefaultWallCooldown,
		FallbackStep:          DefaultFallbackStep,
		BaseExtent:            DefaultBaseExtent,
		MaxExtent:             DefaultMaxExtent,
		MinChangeInterval:     DefaultMinChange,
		MaxChangeInterval:     DefaultMaxChange,
		PlayerGrowthInterval:  DefaultPlayerGrowth,
		BotGrowthInterval:     DefaultBotGrowth,
		MinBotSize:            DefaultMinBotSize,
		MaxBotSize:            DefaultMaxBotSize,
		BotCount:              DefaultBotCount,
		SpawnExclusion:        DefaultSpawnExclusion,
		FoodInterval:          DefaultFoodInterval,
		MaxFood:               DefaultMaxFood,
		ArenaHalfWidth:        DefaultArenaHalfWidth,
		ArenaHalfHeight:       DefaultArenaHalfHeight,
		WallThickness:         DefaultWallThickness,
		RoundSeconds:          defaultRoundSeconds,
		TieRule:               TieLowerIDWins,
		PlayerName:            defaultPlayerName,
		BotScriptCallDeadline: defaultBotScriptTimeout,
	}
}

// LoadConfig starts from DefaultConfig and applies ARENA_* overrides. Process
// environment wins over the optional dotenv file.
func LoadConfig(envFile string) (Config, error) {
	cfg := DefaultConfig()

	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		if err != nil {
			return cfg, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
		fileVars = vars
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			return v, true
		}
		v, ok := fileVars[envPrefix+key]
		return v, ok
	}

	floats := map[string]*float64{
		"MOVE_SPEED":             &cfg.MoveSpeed,
		"BOOST_FACTOR":           &cfg.BoostFactor,
		"MAX_BOOST":              &cfg.MaxBoost,
		"WALL_CHECK_DISTANCE":    &cfg.WallCheckDistance,
		"SAFETY_MARGIN":          &cfg.SafetyMargin,
		"WALL_COOLDOWN":          &cfg.WallCooldown,
		"FALLBACK_STEP":          &cfg.FallbackStep,
		"BASE_EXTENT":            &cfg.BaseExtent,
		"MAX_EXTENT":             &cfg.MaxExtent,
		"MIN_CHANGE_INTERVAL":    &cfg.MinChangeInterval,
		"MAX_CHANGE_INTERVAL":    &cfg.MaxChangeInterval,
		"PLAYER_GROWTH_INTERVAL": &cfg.PlayerGrowthInterval,
		"BOT_GROWTH_INTERVAL":    &cfg.BotGrowthInterval,
		"SPAWN_EXCLUSION":        &cfg.SpawnExclusion,
		"FOOD_INTERVAL":          &cfg.FoodInterval,
		"ARENA_HALF_WIDTH":       &cfg.ArenaHalfWidth,
		"ARENA_HALF_HEIGHT":      &cfg.ArenaHalfHeight,
		"WALL_THICKNESS":         &cfg.WallThickness,
		"ROUND_SECONDS":          &cfg.RoundSeconds,
	}
	for key, dst := range floats {
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s%s=%q: %w", envPrefix, key, raw, err)
		}
		*dst = v
	}

	ints := map[string]*int{
		"MIN_BOT_SIZE": &cfg.MinBotSize,
		"MAX_BOT_SIZE": &cfg.MaxBotSize,
		"BOT_COUNT":    &cfg.BotCount,
		"MAX_FOOD":     &cfg.MaxFood,
	}
	for key, dst := range ints {
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return cfg, fmt.Errorf("invalid %s%s=%q: %w", envPrefix, key, raw, err)
		}
		*dst = v
	}

	if raw, ok := lookup("SEED"); ok {
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %sSEED=%q: %w", envPrefix, raw, err)
		}
		cfg.Seed = v
	}
	if raw, ok := lookup("TIE_RULE"); ok {
		rule, err := ParseTieRule(raw)
		if err != nil {
			return cfg, err
		}
		cfg.TieRule = rule
	}
	if raw, ok := lookup("BOT_SCRIPT"); ok {
		cfg.BotScript = strings.TrimSpace(raw)
	}
	if raw, ok := lookup("PLAYER_NAME"); ok && strings.TrimSpace(raw) != "" {
		cfg.PlayerName = strings.TrimSpace(raw)
	}

	return cfg, nil
}

// Sanitize replaces out-of-range values with their defaults. It never fails:
// a bad knob degrades to the default and is reported through the logger.
func (c Config) Sanitize(logger *log.Logger) Config {
	if logger == nil {
		logger = log.Default()
	}
	def := DefaultConfig()

	positive := []struct {
		name string
		v    *float64
		d    float64
	}{
		{"move speed", &c.MoveSpeed, def.MoveSpeed},
		{"boost factor", &c.BoostFactor, def.BoostFactor},
		{"max boost", &c.MaxBoost, def.MaxBoost},
		{"wall check distance", &c.WallCheckDistance, def.WallCheckDistance},
		{"wall cooldown", &c.WallCooldown, def.WallCooldown},
		{"fallback step", &c.FallbackStep, def.FallbackStep},
		{"base extent", &c.BaseExtent, def.BaseExtent},
		{"max extent", &c.MaxExtent, def.MaxExtent},
		{"min change interval", &c.MinChangeInterval, def.MinChangeInterval},
		{"max change interval", &c.MaxChangeInterval, def.MaxChangeInterval},
		{"player growth interval", &c.PlayerGrowthInterval, def.PlayerGrowthInterval},
		{"bot growth interval", &c.BotGrowthInterval, def.BotGrowthInterval},
		{"food interval", &c.FoodInterval, def.FoodInterval},
		{"arena half width", &c.ArenaHalfWidth, def.ArenaHalfWidth},
		{"arena half height", &c.ArenaHalfHeight, def.ArenaHalfHeight},
		{"wall thickness", &c.WallThickness, def.WallThickness},
		{"round seconds", &c.RoundSeconds, def.RoundSeconds},
	}
	for _, p := range positive {
		if !(*p.v > 0) {
			logger.Warn("Invalid config value, using default", "key", p.name, "value", *p.v, "default", p.d)
			*p.v = p.d
		}
	}

	if c.SafetyMargin < 0 {
		logger.Warn("Invalid config value, using default", "key", "safety margin", "value", c.SafetyMargin)
		c.SafetyMargin = def.SafetyMargin
	}
	if c.SpawnExclusion < 0 {
		logger.Warn("Invalid config value, using default", "key", "spawn exclusion", "value", c.SpawnExclusion)
		c.SpawnExclusion = def.SpawnExclusion
	}
	if c.MinChangeInterval > c.MaxChangeInterval {
		logger.Warn("Direction change interval inverted, swapping", "min", c.MinChangeInterval, "max", c.MaxChangeInterval)
		c.MinChangeInterval, c.MaxChangeInterval = c.MaxChangeInterval, c.MinChangeInterval
	}
	if c.MinBotSize < 1 {
		c.MinBotSize = def.MinBotSize
	}
	if c.MaxBotSize < c.MinBotSize {
		c.MaxBotSize = c.MinBotSize
	}
	if c.BotCount < 0 {
		c.BotCount = 0
	}
	if c.MaxFood < 0 {
		c.MaxFood = 0
	}
	if c.PlayerName == "" {
		c.PlayerName = defaultPlayerName
	}
	if c.BotScriptCallDeadline <= 0 {
		c.BotScriptCallDeadline = def.BotScriptCallDeadline
	}
	return c
}
