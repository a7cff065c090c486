package game

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"go.opentelemetry.io/otel/attribute"

	"tilecaster/internal/maps"
	"tilecaster/internal/telemetry"
	"tilecaster/internal/world"
)

// World pairs the shared room with its spawn pose.
type World struct {
	Name  string
	Room  *world.Room
	Spawn world.Pose
}

// NewWorld builds the room from a decoded map and optional atlas. A nil atlas
// leaves the room on flat colors.
func NewWorld(m *maps.Map, atlas *maps.Atlas, tileSize, tileCount int) (*World, error) {
	var wa *world.Atlas
	if atlas != nil {
		wa = &world.Atlas{Width: atlas.Width, Height: atlas.Height, Pix: atlas.Pix}
	}
	room, err := world.NewRoom(m.Width, m.Height, m.Tiles, wa, tileSize, tileCount)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", m.Name, err)
	}
	x, y := m.Spawn.Cell()
	if room.IsWall(x, y) {
		return nil, fmt.Errorf("map %q: spawn (%.2f,%.2f) is inside a wall", m.Name, m.Spawn.X, m.Spawn.Y)
	}
	return &World{
		Name:  m.Name,
		Room:  room,
		Spawn: world.NewPose(m.Spawn, m.SpawnAngle),
	}, nil
}

// SpawnPoint returns the pose new players start at.
func (w *World) SpawnPoint() world.Pose {
	return w.Spawn
}

// LoadWorld reads the map and atlas from disk and builds the world. A missing
// map file falls back to the built-in default room; an empty atlasPath means
// flat colors. Any other load failure is returned.
func LoadWorld(mapPath, atlasPath string, tileSize, tileCount int) (*World, error) {
	_, span := telemetry.Tracer("game").Start(context.Background(), "world.load")
	defer span.End()
	span.SetAttributes(
		attribute.String("map.path", mapPath),
		attribute.String("atlas.path", atlasPath),
	)

	m, err := maps.LoadMap(mapPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Map %s not found, using default room", mapPath)
		m = maps.DefaultMap()
	} else if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var atlas *maps.Atlas
	if atlasPath != "" {
		if atlas, err = maps.LoadAtlas(atlasPath, tileSize, tileCount); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}
	w, err := NewWorld(m, atlas, tileSize, tileCount)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	log.Printf("Room loaded: %s (%dx%d, textured=%t)", w.Name, w.Room.Width(), w.Room.Height(), w.Room.HasAtlas())
	return w, nil
}
