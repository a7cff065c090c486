package game

import (
	"tilecaster/internal/geom"
	"tilecaster/internal/input"
	"tilecaster/internal/world"
)

// Tuning holds the movement constants applied every frame.
type Tuning struct {
	PlayerRadius float64 // tiles
	TurnSpeed    float64 // degrees per frame
	WalkSpeed    float64 // tiles per frame
	StrafeSpeed  float64 // tiles per frame
}

// DefaultTuning matches the stock configuration.
var DefaultTuning = Tuning{
	PlayerRadius: 0.25,
	TurnSpeed:    3,
	WalkSpeed:    0.05,
	StrafeSpeed:  0.035,
}

// Outcome describes what happened to the translation part of a step.
type Outcome int

const (
	// OutcomeIdle means no translation was requested.
	OutcomeIdle Outcome = iota
	// OutcomeOutOfBounds means the candidate left the room and was discarded.
	OutcomeOutOfBounds
	// OutcomeBlocked means walls cancelled the whole move.
	OutcomeBlocked
	// OutcomeSlid means one axis was cancelled and the other applied.
	OutcomeSlid
	// OutcomeMoved means the move was applied unchanged.
	OutcomeMoved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeOutOfBounds:
		return "out-of-bounds"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeSlid:
		return "slid"
	case OutcomeMoved:
		return "moved"
	}
	return "unknown"
}

// Changed reports whether the outcome changed the position.
func (o Outcome) Changed() bool {
	return o == OutcomeSlid || o == OutcomeMoved
}

// Step advances a pose by one frame of input. Rotation is applied first and
// always takes effect; translation then goes through ResolveMove using the
// rotated facing.
func Step(pose world.Pose, in input.Source, room *world.Room, t Tuning) (world.Pose, Outcome) {
	if in.IsDown(input.TurnLeft) {
		pose.TurnLeft(t.TurnSpeed)
	} else if in.IsDown(input.TurnRight) {
		pose.TurnRight(t.TurnSpeed)
	}

	dx := geom.Zero
	if in.IsDown(input.MoveForward) {
		dx = pose.MoveForward(t.WalkSpeed)
	} else if in.IsDown(input.MoveBack) {
		dx = pose.MoveBack(t.WalkSpeed)
	}

	dy := geom.Zero
	if in.IsDown(input.StrafeLeft) {
		dy = pose.StrafeLeft(t.StrafeSpeed)
	} else if in.IsDown(input.StrafeRight) {
		dy = pose.StrafeRight(t.StrafeSpeed)
	}

	to, outcome := ResolveMove(pose.Position, dx.Add(dy), room, t.PlayerRadius)
	return pose.WithPosition(to), outcome
}

// ResolveMove validates a displacement dt from position from. A candidate
// outside the room is discarded whole. Otherwise a probe point radius tiles
// past the candidate along dt is tested once per axis, and each axis that
// would put the probe in a wall (or outside the grid) is cancelled. Both axis
// tests share the same probe.
func ResolveMove(from, dt geom.Vec, room *world.Room, radius float64) (geom.Vec, Outcome) {
	if dt.IsZero() {
		return from, OutcomeIdle
	}

	to := from.Add(dt)
	if to.X < 0 || to.Y < 0 || to.X >= float64(room.Width()) || to.Y >= float64(room.Height()) {
		return from, OutcomeOutOfBounds
	}

	probe := geom.Translate(to).Then(geom.Rotate(dt.Angle())).Apply(geom.V(radius, 0))
	fromX, fromY := from.Cell()
	probeX, probeY := probe.Cell()

	cancelled := false
	if solid(room, probeX, fromY) {
		to.X = from.X
		cancelled = true
	}
	if solid(room, fromX, probeY) {
		to.Y = from.Y
		cancelled = true
	}

	if !cancelled {
		return to, OutcomeMoved
	}
	if to == from {
		return from, OutcomeBlocked
	}
	return to, OutcomeSlid
}

// solid treats cells outside the grid as walls.
func solid(room *world.Room, x, y int) bool {
	return !room.Contains(x, y) || room.IsWall(x, y)
}
