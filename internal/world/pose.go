package world

import "tilecaster/internal/geom"

// Pose is a position in tile units and a facing angle in degrees, [0,360).
// The y axis points down, so turning right increases the angle.
type Pose struct {
	Position geom.Vec
	Angle    float64
}

// NewPose creates a pose with a normalized angle.
func NewPose(pos geom.Vec, angle float64) Pose {
	return Pose{Position: pos, Angle: geom.NormalizeAngle(angle)}
}

// Facing returns the unit vector the pose looks along.
func (p Pose) Facing() geom.Vec {
	return geom.FromAngle(p.Angle)
}

// MoveForward returns the displacement of speed units along the facing.
func (p Pose) MoveForward(speed float64) geom.Vec {
	return geom.FromAngle(p.Angle).Scale(speed)
}

// MoveBack returns the displacement of speed units against the facing.
func (p Pose) MoveBack(speed float64) geom.Vec {
	return geom.FromAngle(p.Angle + 180).Scale(speed)
}

// StrafeLeft returns the displacement of speed units to the left of the facing.
func (p Pose) StrafeLeft(speed float64) geom.Vec {
	return geom.FromAngle(p.Angle - 90).Scale(speed)
}

// StrafeRight returns the displacement of speed units to the right of the facing.
func (p Pose) StrafeRight(speed float64) geom.Vec {
	return geom.FromAngle(p.Angle + 90).Scale(speed)
}

// TurnLeft rotates the facing counter-clockwise by deg degrees.
func (p *Pose) TurnLeft(deg float64) {
	p.Angle = geom.NormalizeAngle(p.Angle - deg)
}

// TurnRight rotates the facing clockwise by deg degrees.
func (p *Pose) TurnRight(deg float64) {
	p.Angle = geom.NormalizeAngle(p.Angle + deg)
}

// WithPosition returns a copy of p moved to pos.
func (p Pose) WithPosition(pos geom.Vec) Pose {
	p.Position = pos
	return p
}
