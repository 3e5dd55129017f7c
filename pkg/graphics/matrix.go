// Package graphics holds the 2D primitives shared by the annotation core
// and its drawing surfaces: points, rectangles, affine matrices, paths,
// colors and stroke/text styles.
package graphics

import (
	"math"
)

// Matrix represents a 3x3 affine transformation matrix.
// Only the first two columns are stored since the third is always [0 0 1].
// The matrix is stored as:
//
//	[A B 0]
//	[C D 0]
//	[E F 1]
//
// Where (A,B,C,D) handle scaling/rotation and (E,F) handle translation.
// Points are row vectors: p' = p * M.
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// RotateDeg returns a rotation matrix (angle in degrees).
func RotateDeg(angle float64) Matrix {
	return Rotate(angle * math.Pi / 180)
}

// Multiply returns the matrix that applies m first and then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Transform applies the matrix to a point.
func (m Matrix) Transform(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformPoint applies the matrix to a Point.
func (m Matrix) TransformPoint(p Point) Point {
	x, y := m.Transform(p.X, p.Y)
	return Point{x, y}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Inverse returns the inverse of the matrix. ok is false when the matrix
// is singular (or not finite), in which case the identity is returned.
func (m Matrix) Inverse() (inv Matrix, ok bool) {
	det := m.Determinant()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Identity(), false
	}

	return Matrix{
		m[3] / det,
		-m[1] / det,
		-m[2] / det,
		m[0] / det,
		(m[2]*m[5] - m[3]*m[4]) / det,
		(m[1]*m[4] - m[0]*m[5]) / det,
	}, true
}

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{x, y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Scale scales the point by a factor.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Length returns the distance from origin.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Lerp returns the point at fraction t along the way from p to other.
func (p Point) Lerp(other Point, t float64) Point {
	return Point{p.X + (other.X-p.X)*t, p.Y + (other.Y-p.Y)*t}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Rect represents a rectangle in screen space.
type Rect struct {
	X, Y, Width, Height float64
}

// NewRect creates a rectangle from two corner points.
func NewRect(x1, y1, x2, y2 float64) Rect {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rect{
		X:      x1,
		Y:      y1,
		Width:  x2 - x1,
		Height: y2 - y1,
	}
}

// Right returns the maximum X coordinate.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the maximum Y coordinate.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

// Inset shrinks the rectangle by the given margins.
// The result never has negative size.
func (r Rect) Inset(left, top, right, bottom float64) Rect {
	out := Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  r.Width - left - right,
		Height: r.Height - top - bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects returns true if this rectangle intersects another.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height && r.Y+r.Height > other.Y
}
