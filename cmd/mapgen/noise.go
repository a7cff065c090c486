package main

import (
	"math"
	"math/rand"
)

// simplex is seeded 2D simplex noise. The same seed always produces the same
// field, so a map and its atlas can be regenerated from one number.
type simplex struct {
	perm [512]uint8
}

func newSimplex(seed int64) *simplex {
	n := &simplex{}
	r := rand.New(rand.NewSource(seed))
	p := r.Perm(256)
	for i := range n.perm {
		n.perm[i] = uint8(p[i&255])
	}
	return n
}

const (
	skew   = 0.3660254037844386  // (sqrt(3) - 1) / 2
	unskew = 0.21132486540518713 // (3 - sqrt(3)) / 6
)

func gradient(hash uint8, x, y float64) float64 {
	h := hash & 7
	u, v := x, y
	if h >= 4 {
		u, v = y, x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// corner is one simplex corner's falloff-weighted contribution.
func corner(hash uint8, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t <= 0 {
		return 0
	}
	t *= t
	return t * t * gradient(hash, x, y)
}

// at returns noise in [-1, 1].
func (n *simplex) at(x, y float64) float64 {
	s := (x + y) * skew
	i, j := math.Floor(x+s), math.Floor(y+s)
	t := (i + j) * unskew
	x0, y0 := x-(i-t), y-(j-t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}
	x1, y1 := x0-float64(i1)+unskew, y0-float64(j1)+unskew
	x2, y2 := x0-1+2*unskew, y0-1+2*unskew

	ii, jj := int(i)&255, int(j)&255
	p := &n.perm
	sum := corner(p[ii+int(p[jj])], x0, y0) +
		corner(p[ii+i1+int(p[jj+j1])], x1, y1) +
		corner(p[ii+1+int(p[jj+1])], x2, y2)
	return 70 * sum
}

// fbm sums octaves of noise, doubling frequency and halving amplitude each
// time, and maps the result to [0, 1].
func (n *simplex) fbm(x, y, freq float64, octaves int) float64 {
	var total, norm float64
	amp := 1.0
	for i := 0; i < octaves; i++ {
		total += n.at(x*freq, y*freq) * amp
		norm += amp
		freq *= 2
		amp *= 0.5
	}
	return (total/norm + 1) / 2
}

// ridged folds each octave around zero, which gives crack and vein lines
// where the field crosses zero. Result in [0, 1].
func (n *simplex) ridged(x, y, freq float64, octaves int) float64 {
	var total, norm float64
	amp := 1.0
	for i := 0; i < octaves; i++ {
		total += (1 - math.Abs(n.at(x*freq, y*freq))) * amp
		norm += amp
		freq *= 2
		amp *= 0.5
	}
	return total / norm
}
