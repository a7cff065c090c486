// Command snapshot renders one frame of a room from a given pose and writes it
// as a PPM image.
package main

import (
	"flag"
	"fmt"
	"log"

	"tilecaster/internal/config"
	"tilecaster/internal/game"
	"tilecaster/internal/raycast"
	"tilecaster/internal/render"
	"tilecaster/internal/world"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	cfg := config.Load()
	mapPath := flag.String("map", cfg.MapPath, "map JSON file")
	atlasPath := flag.String("atlas", cfg.AtlasPath, "texture atlas; empty for flat colors")
	x := flag.Float64("x", -1, "camera x (default: map spawn)")
	y := flag.Float64("y", -1, "camera y (default: map spawn)")
	angle := flag.Float64("angle", -1, "camera angle in degrees (default: map spawn)")
	width := flag.Int("w", cfg.ScreenWidth, "image width")
	height := flag.Int("h", cfg.ScreenHeight, "image height")
	fov := flag.Float64("fov", cfg.FOV, "field of view in degrees")
	out := flag.String("out", "snapshot.ppm", "output PPM file")
	flag.Parse()

	cfg.ScreenWidth, cfg.ScreenHeight, cfg.FOV = *width, *height, *fov
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	w, err := game.LoadWorld(*mapPath, *atlasPath, cfg.TileSize, cfg.TileCount)
	if err != nil {
		log.Fatalf("Failed to load room: %v", err)
	}

	pose, err := cameraPose(w, *x, *y, *angle)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fb := render.NewFramebuffer(cfg.ScreenWidth, cfg.ScreenHeight)
	raycast.NewCaster(cfg.FOV).Render(fb, w.Room, pose)
	if err := fb.WritePPM(*out); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %s (%dx%d) from %.2f,%.2f facing %.0f", *out, fb.Width(), fb.Height(),
		pose.Position.X, pose.Position.Y, pose.Angle)
}

// cameraPose overrides the spawn pose with any coordinates that were given.
// Negative values mean "use the spawn".
func cameraPose(w *game.World, x, y, angle float64) (world.Pose, error) {
	pose := w.SpawnPoint()
	pos := pose.Position
	if x >= 0 {
		pos.X = x
	}
	if y >= 0 {
		pos.Y = y
	}
	if angle >= 0 {
		pose.Angle = angle
	}
	if !pos.Finite() {
		return world.Pose{}, fmt.Errorf("camera position must be finite")
	}
	cx, cy := pos.Cell()
	if _, err := w.Room.Lookup(cx, cy); err != nil {
		return world.Pose{}, fmt.Errorf("camera position: %w", err)
	}
	return world.NewPose(pos, pose.Angle), nil
}
