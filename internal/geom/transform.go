package geom

import "math"

// Transform is a 2D affine transform stored as the top two rows of a 3x3 matrix.
type Transform struct {
	a, b, c float64 // x' = a*x + b*y + c
	d, e, f float64 // y' = d*x + e*y + f
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform{a: 1, e: 1}

// Translate returns a transform moving points by v.
func Translate(v Vec) Transform {
	return Transform{a: 1, c: v.X, e: 1, f: v.Y}
}

// Rotate returns a transform rotating points by deg degrees about the origin.
func Rotate(deg float64) Transform {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return Transform{a: cos, b: -sin, d: sin, e: cos}
}

// Then composes t with o so that o is applied first: (t.Then(o)).Apply(p) == t.Apply(o.Apply(p)).
func (t Transform) Then(o Transform) Transform {
	return Transform{
		a: t.a*o.a + t.b*o.d,
		b: t.a*o.b + t.b*o.e,
		c: t.a*o.c + t.b*o.f + t.c,
		d: t.d*o.a + t.e*o.d,
		e: t.d*o.b + t.e*o.e,
		f: t.d*o.c + t.e*o.f + t.f,
	}
}

// Apply maps p through the transform.
func (t Transform) Apply(p Vec) Vec {
	return Vec{
		X: t.a*p.X + t.b*p.Y + t.c,
		Y: t.d*p.X + t.e*p.Y + t.f,
	}
}
