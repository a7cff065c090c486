// Package raycast draws a first-person view of a room into a framebuffer, one
// ray per screen column.
package raycast

import (
	"math"

	"tilecaster/internal/geom"
	"tilecaster/internal/render"
	"tilecaster/internal/world"
)

// Side is the grid line a ray crossed when it hit a wall.
type Side int

const (
	SideX Side = iota // a vertical grid line (the wall faces east or west)
	SideY             // a horizontal grid line (the wall faces north or south)
)

// Hit describes where a ray met a wall.
type Hit struct {
	Tile         byte
	CellX, CellY int
	Side         Side
	Distance     float64 // along the ray, in tiles
	Point        geom.Vec
	LocalX       int // texture column, [0,TileSize)
}

// DefaultFOV is the horizontal field of view in degrees.
const DefaultFOV = 60

var (
	DefaultCeiling = render.RGB(56, 56, 56)
	DefaultFloor   = render.RGB(112, 112, 112)
)

// Caster renders views of a room. It keeps a scratch column buffer, so a
// Caster must not be shared between goroutines.
type Caster struct {
	FOV     float64
	Ceiling render.Color
	Floor   render.Color

	column []render.Color
}

// NewCaster creates a caster with the given field of view in degrees.
func NewCaster(fov float64) *Caster {
	if fov <= 0 || fov >= 180 {
		fov = DefaultFOV
	}
	return &Caster{FOV: fov, Ceiling: DefaultCeiling, Floor: DefaultFloor}
}

// CastRay walks the grid from origin along angle with a DDA and returns the
// first wall cell it enters. ok is false if the ray leaves the grid first.
func CastRay(room *world.Room, origin geom.Vec, angle float64) (hit Hit, ok bool) {
	dir := geom.FromAngle(angle)
	mapX, mapY := origin.Cell()
	if !room.Contains(mapX, mapY) {
		return Hit{}, false
	}

	stepX, sideX, deltaX := axisStep(origin.X, mapX, dir.X)
	stepY, sideY, deltaY := axisStep(origin.Y, mapY, dir.Y)

	var side Side
	for {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			side = SideX
		} else {
			sideY += deltaY
			mapY += stepY
			side = SideY
		}
		if !room.Contains(mapX, mapY) {
			return Hit{}, false
		}
		if room.IsWall(mapX, mapY) {
			break
		}
	}

	dist := sideY - deltaY
	if side == SideX {
		dist = sideX - deltaX
	}
	point := origin.Add(dir.Scale(dist))

	var frac float64
	if side == SideX {
		frac = point.Y - math.Floor(point.Y)
	} else {
		frac = point.X - math.Floor(point.X)
	}
	ts := room.TileSize()
	localX := min(int(frac*float64(ts)), ts-1)
	// Keep textures reading left to right as seen by the viewer.
	if (side == SideX && dir.X < 0) || (side == SideY && dir.Y > 0) {
		localX = ts - 1 - localX
	}

	return Hit{
		Tile:     room.TileAt(mapX, mapY),
		CellX:    mapX,
		CellY:    mapY,
		Side:     side,
		Distance: dist,
		Point:    point,
		LocalX:   localX,
	}, true
}

// axisStep returns the DDA step direction, the ray length to the first grid
// line on this axis, and the ray length between grid lines.
func axisStep(pos float64, cell int, d float64) (step int, first, delta float64) {
	if d == 0 {
		return 1, math.Inf(1), math.Inf(1)
	}
	delta = math.Abs(1 / d)
	if d < 0 {
		return -1, (pos - float64(cell)) * delta, delta
	}
	return 1, (float64(cell) + 1 - pos) * delta, delta
}

// RayAngle returns the angle of the ray through screen column x.
func (c *Caster) RayAngle(pose world.Pose, x, width int) float64 {
	return pose.Angle - c.FOV/2 + c.FOV*(float64(x)+0.5)/float64(width)
}

// Render draws the view from pose into fb: ceiling and floor, then one wall
// strip per column. Rooms without an atlas use flat tile colors.
func (c *Caster) Render(fb *render.Framebuffer, room *world.Room, pose world.Pose) {
	w, h := fb.Width(), fb.Height()
	for x := 0; x < w; x++ {
		fb.FillColumn(x, 0, h/2, c.Ceiling)
		fb.FillColumn(x, h/2, h, c.Floor)

		angle := c.RayAngle(pose, x, w)
		hit, ok := CastRay(room, pose.Position, angle)
		if !ok {
			continue
		}
		c.drawStrip(fb, room, x, hit, angle-pose.Angle)
	}
}

// maxStripScale bounds how tall a strip may be relative to the screen when the
// viewer stands against a wall.
const maxStripScale = 8

func (c *Caster) drawStrip(fb *render.Framebuffer, room *world.Room, x int, hit Hit, rel float64) {
	screenH := fb.Height()
	perp := hit.Distance * math.Cos(rel*math.Pi/180)
	if perp <= 0 {
		perp = math.SmallestNonzeroFloat64
	}
	lineH := int(math.Min(float64(screenH)/perp, float64(screenH*maxStripScale)))
	if lineH <= 0 {
		return
	}
	top := (screenH - lineH) / 2
	y0, y1 := max(top, 0), min(top+lineH, screenH)

	if !room.HasAtlas() {
		fb.FillColumn(x, y0, y1, world.ColorForTile(hit.Tile))
		return
	}

	c.column = room.AppendTextureColumn(c.column[:0], hit.Tile, hit.LocalX, lineH)
	for y := y0; y < y1; y++ {
		fb.Set(x, y, c.column[y-top])
	}
}
