package game

import (
	"tilecaster/internal/input"
	"tilecaster/internal/world"
)

// InputEvent carries a key press into the game loop.
type InputEvent struct {
	PlayerID string
	Binding  input.Binding
}

// Player holds the game state for a connected player.
type Player struct {
	ID   string
	Name string
	Pose world.Pose

	hold        *input.HoldTracker
	LastOutcome Outcome
	Steps       uint64 // ticks on which the position changed
}

// PlayerSnapshot is a read-only copy of player state for rendering.
type PlayerSnapshot struct {
	ID      string
	Name    string
	Pose    world.Pose
	Outcome Outcome
	Steps   uint64
}

// Snapshot returns a read-only copy of the player.
func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID:      p.ID,
		Name:    p.Name,
		Pose:    p.Pose,
		Outcome: p.LastOutcome,
		Steps:   p.Steps,
	}
}
