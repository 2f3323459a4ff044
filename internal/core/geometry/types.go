package geometry

import "math"

// Point represents a 2D point (or vector) in world space
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p * s
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PolarOffset returns the point at the given length along angle (radians) from origin
func PolarOffset(origin Point, length, angle float64) Point {
	return Point{
		X: length*math.Cos(angle) + origin.X,
		Y: length*math.Sin(angle) + origin.Y,
	}
}

// Hit is an optional intersection point. OK is false when there is no real
// intersection inside the ray's range.
type Hit struct {
	Point Point
	OK    bool
}

// Miss is the empty Hit
var Miss = Hit{}

// Or returns the hit point, or fallback when there is no hit
func (h Hit) Or(fallback Point) Point {
	if h.OK {
		return h.Point
	}
	return fallback
}
