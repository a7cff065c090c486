package config

import (
	"os"
	"path/filepath"
	"testing"

	"tilecaster/internal/game"
)

var allKeys = []string{
	"TILECASTER_TILE_SIZE", "TILECASTER_TILE_COUNT", "TILECASTER_PLAYER_RADIUS",
	"TILECASTER_TURN_SPEED", "TILECASTER_WALK_SPEED", "TILECASTER_STRAFE_SPEED",
	"TILECASTER_SCREEN_WIDTH", "TILECASTER_SCREEN_HEIGHT", "TILECASTER_FOV",
	"TILECASTER_TICK_RATE", "TILECASTER_HOLD_FRAMES", "TILECASTER_MAP",
	"TILECASTER_ATLAS", "TILECASTER_SSH_ADDR", "TILECASTER_HTTP_ADDR",
	"TILECASTER_HOST_KEY", "TILECASTER_TELEMETRY", "TILECASTER_CORS_ORIGINS", "PORT",
}

// clearEnv unsets every key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	cfg := FromEnv()

	if cfg.TileSize != 64 || cfg.TileCount != 8 {
		t.Errorf("tiles = %d x %d", cfg.TileSize, cfg.TileCount)
	}
	if cfg.Tuning() != game.DefaultTuning {
		t.Errorf("tuning = %+v, want %+v", cfg.Tuning(), game.DefaultTuning)
	}
	if cfg.ScreenWidth != 320 || cfg.ScreenHeight != 200 || cfg.FOV != 60 {
		t.Errorf("screen = %dx%d fov %v", cfg.ScreenWidth, cfg.ScreenHeight, cfg.FOV)
	}
	if cfg.TickRate != 30 || cfg.HoldFrames != 4 {
		t.Errorf("tick %d hold %d", cfg.TickRate, cfg.HoldFrames)
	}
	if cfg.MapPath != "assets/maps/room.json" || cfg.AtlasPath != "assets/textures/atlas.png" {
		t.Errorf("paths = %q %q", cfg.MapPath, cfg.AtlasPath)
	}
	if cfg.SSHAddr != ":2222" || cfg.HTTPAddr != ":8080" || cfg.HostKey != "host_key" || cfg.Telemetry {
		t.Errorf("server settings = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TILECASTER_TILE_SIZE", "32")
	t.Setenv("TILECASTER_WALK_SPEED", "0.1")
	t.Setenv("TILECASTER_TURN_SPEED", "not-a-number")
	t.Setenv("TILECASTER_ATLAS", "")
	t.Setenv("TILECASTER_TELEMETRY", "true")
	t.Setenv("PORT", "4000")

	cfg := FromEnv()
	if cfg.TileSize != 32 {
		t.Errorf("tile size = %d", cfg.TileSize)
	}
	if cfg.WalkSpeed != 0.1 {
		t.Errorf("walk speed = %v", cfg.WalkSpeed)
	}
	if cfg.TurnSpeed != game.DefaultTuning.TurnSpeed {
		t.Errorf("bad number should fall back, got %v", cfg.TurnSpeed)
	}
	if cfg.AtlasPath != "" {
		t.Errorf("empty atlas setting should select flat colors, got %q", cfg.AtlasPath)
	}
	if !cfg.Telemetry {
		t.Error("telemetry not enabled")
	}
	if cfg.SSHAddr != ":4000" {
		t.Errorf("PORT should override ssh addr, got %q", cfg.SSHAddr)
	}
	if lc := cfg.LoopConfig(); lc.Tuning.WalkSpeed != 0.1 || lc.TickRate != 30 {
		t.Errorf("loop config = %+v", lc)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("TILECASTER_FOV=75\nTILECASTER_MAP=maps/maze.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path)
	if cfg.FOV != 75 || cfg.MapPath != "maps/maze.json" {
		t.Errorf("cfg = %+v", cfg)
	}

	// A missing file is not an error.
	clearEnv(t)
	if cfg := Load(filepath.Join(t.TempDir(), "missing.env")); cfg.FOV != 60 {
		t.Errorf("fov = %v", cfg.FOV)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tile size", func(c *Config) { c.TileSize = 0 }},
		{"tile count", func(c *Config) { c.TileCount = 300 }},
		{"radius", func(c *Config) { c.PlayerRadius = 1 }},
		{"turn speed", func(c *Config) { c.TurnSpeed = 0 }},
		{"walk speed", func(c *Config) { c.WalkSpeed = -1 }},
		{"strafe speed", func(c *Config) { c.StrafeSpeed = 0 }},
		{"screen", func(c *Config) { c.ScreenHeight = 0 }},
		{"fov", func(c *Config) { c.FOV = 180 }},
		{"tick rate", func(c *Config) { c.TickRate = 0 }},
		{"hold frames", func(c *Config) { c.HoldFrames = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FromEnv()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCORSOrigins(t *testing.T) {
	clearEnv(t)
	if got := FromEnv().CORSOrigins; len(got) != 1 || got[0] != "*" {
		t.Errorf("default origins = %v", got)
	}
	t.Setenv("TILECASTER_CORS_ORIGINS", " http://a.example , ,http://b.example")
	got := FromEnv().CORSOrigins
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Errorf("origins = %v", got)
	}
}
