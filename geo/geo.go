package geo

import (
	"fmt"
	"math"
)

// Axis identifies the coordinate dimension used to split points at a
// given tree depth.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	default:
		return fmt.Sprintf("Unknown(%d)", int(a))
	}
}

// AxisForDepth returns the splitting axis at the given tree depth:
// X at even depths, Y at odd depths.
func AxisForDepth(depth int) Axis {
	return Axis(depth & 1)
}

// Point is an immutable pair of real-valued coordinates.
// Equality is coordinate equality.
type Point struct {
	X, Y float64
}

// Coord returns the point's coordinate on the given axis.
func (p Point) Coord(a Axis) float64 {
	if a == AxisX {
		return p.X
	}
	return p.Y
}

// IsFinite reports whether both coordinates are finite (not NaN or ±Inf).
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// SquaredDistance calculates the squared Euclidean distance between two
// points. Squared distances preserve ordering, so the square root is
// never taken on the search hot path.
func SquaredDistance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Rect is an axis-aligned region of the plane.
// Invariant: MinX <= MaxX and MinY <= MaxY.
type Rect struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// BoundingRect returns the smallest Rect containing all points.
// The input must be non-empty (caller's responsibility).
func BoundingRect(points []Point) Rect {
	r := Rect{
		MinX: points[0].X, MaxX: points[0].X,
		MinY: points[0].Y, MaxY: points[0].Y,
	}
	for _, p := range points[1:] {
		r.MinX = math.Min(r.MinX, p.X)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r
}

// Contains reports whether p lies inside the rectangle (bounds inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.MinX >= r.MinX && o.MaxX <= r.MaxX &&
		o.MinY >= r.MinY && o.MaxY <= r.MaxY
}

// ClampMax returns a copy of r with the maximum bound on the given axis
// lowered to v. Used to derive the left child's region from its parent.
func (r Rect) ClampMax(a Axis, v float64) Rect {
	if a == AxisX {
		r.MaxX = v
	} else {
		r.MaxY = v
	}
	return r
}

// ClampMin returns a copy of r with the minimum bound on the given axis
// raised to v. Used to derive the right child's region from its parent.
func (r Rect) ClampMin(a Axis, v float64) Rect {
	if a == AxisX {
		r.MinX = v
	} else {
		r.MinY = v
	}
	return r
}

// SquaredDistance returns the minimum possible squared distance from p
// to any point inside the rectangle: p's coordinates are clamped to the
// rectangle's intervals and the distance to the clamped point is
// measured. A point inside the rectangle yields 0.
func (r Rect) SquaredDistance(p Point) float64 {
	cx := clamp(p.X, r.MinX, r.MaxX)
	cy := clamp(p.Y, r.MinY, r.MaxY)
	return SquaredDistance(p, Point{X: cx, Y: cy})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
