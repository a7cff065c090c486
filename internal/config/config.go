// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"tilecaster/internal/game"
)

// Config holds every tunable the binaries read at startup.
type Config struct {
	TileSize  int
	TileCount int

	PlayerRadius float64
	TurnSpeed    float64
	WalkSpeed    float64
	StrafeSpeed  float64

	ScreenWidth  int
	ScreenHeight int
	FOV          float64

	TickRate   int
	HoldFrames int

	MapPath   string
	AtlasPath string

	SSHAddr   string
	HTTPAddr  string
	HostKey   string
	Telemetry bool

	CORSOrigins []string
}

// Load reads .env files (missing files are fine) and then the environment.
// Unparseable numbers fall back to their defaults.
func Load(envFiles ...string) Config {
	if err := godotenv.Load(envFiles...); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	cfg := Config{
		TileSize:     parseInt(getEnv("TILECASTER_TILE_SIZE", ""), 64),
		TileCount:    parseInt(getEnv("TILECASTER_TILE_COUNT", ""), 8),
		PlayerRadius: parseFloat(getEnv("TILECASTER_PLAYER_RADIUS", ""), game.DefaultTuning.PlayerRadius),
		TurnSpeed:    parseFloat(getEnv("TILECASTER_TURN_SPEED", ""), game.DefaultTuning.TurnSpeed),
		WalkSpeed:    parseFloat(getEnv("TILECASTER_WALK_SPEED", ""), game.DefaultTuning.WalkSpeed),
		StrafeSpeed:  parseFloat(getEnv("TILECASTER_STRAFE_SPEED", ""), game.DefaultTuning.StrafeSpeed),
		ScreenWidth:  parseInt(getEnv("TILECASTER_SCREEN_WIDTH", ""), 320),
		ScreenHeight: parseInt(getEnv("TILECASTER_SCREEN_HEIGHT", ""), 200),
		FOV:          parseFloat(getEnv("TILECASTER_FOV", ""), 60),
		TickRate:     parseInt(getEnv("TILECASTER_TICK_RATE", ""), game.DefaultTickRate),
		HoldFrames:   parseInt(getEnv("TILECASTER_HOLD_FRAMES", ""), 4),
		MapPath:      getEnv("TILECASTER_MAP", "assets/maps/room.json"),
		AtlasPath:    os.Getenv("TILECASTER_ATLAS"),
		SSHAddr:      getEnv("TILECASTER_SSH_ADDR", ":2222"),
		HTTPAddr:     getEnv("TILECASTER_HTTP_ADDR", ":8080"),
		HostKey:      getEnv("TILECASTER_HOST_KEY", "host_key"),
		Telemetry:    getEnv("TILECASTER_TELEMETRY", "false") == "true",
		CORSOrigins:  splitList(getEnv("TILECASTER_CORS_ORIGINS", "*")),
	}
	// An explicitly empty TILECASTER_ATLAS selects flat colors.
	if _, set := os.LookupEnv("TILECASTER_ATLAS"); !set {
		cfg.AtlasPath = "assets/textures/atlas.png"
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.SSHAddr = ":" + port
	}
	return cfg
}

// Validate rejects settings the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.TileSize > 0, "tile size must be positive, got %d", c.TileSize)
	check(c.TileCount > 0 && c.TileCount <= 255, "tile count must be in 1..255, got %d", c.TileCount)
	check(c.PlayerRadius >= 0 && c.PlayerRadius < 1, "player radius must be in [0,1), got %v", c.PlayerRadius)
	check(c.TurnSpeed > 0, "turn speed must be positive, got %v", c.TurnSpeed)
	check(c.WalkSpeed > 0, "walk speed must be positive, got %v", c.WalkSpeed)
	check(c.StrafeSpeed > 0, "strafe speed must be positive, got %v", c.StrafeSpeed)
	check(c.ScreenWidth > 0 && c.ScreenHeight > 0, "screen size must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight)
	check(c.FOV > 0 && c.FOV < 180, "fov must be in (0,180), got %v", c.FOV)
	check(c.TickRate > 0, "tick rate must be positive, got %d", c.TickRate)
	check(c.HoldFrames > 0, "hold frames must be positive, got %d", c.HoldFrames)
	return errors.Join(errs...)
}

// Tuning returns the movement constants.
func (c Config) Tuning() game.Tuning {
	return game.Tuning{
		PlayerRadius: c.PlayerRadius,
		TurnSpeed:    c.TurnSpeed,
		WalkSpeed:    c.WalkSpeed,
		StrafeSpeed:  c.StrafeSpeed,
	}
}

// LoopConfig returns the game loop settings.
func (c Config) LoopConfig() game.LoopConfig {
	return game.LoopConfig{
		TickRate:   c.TickRate,
		HoldFrames: c.HoldFrames,
		Tuning:     c.Tuning(),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
