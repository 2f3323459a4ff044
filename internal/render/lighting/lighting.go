package lighting

import (
	"image/color"

	"chosenoffset.com/lightfield/internal/core/geometry"
)

// LightSource is the movable point the light field is cast from.
//
// The input side writes the position between frames and the frame reads it once at
// the start of Draw. Update and Draw never overlap, so no locking is needed.
type LightSource struct {
	X, Y         float64     // World position (in pixels)
	MarkerRadius float64     // Radius of the filled marker drawn at the source
	Color        color.NRGBA // Marker color
}

// NewLightSource creates a light source at the given position
func NewLightSource(x, y, markerRadius float64, col color.NRGBA) *LightSource {
	return &LightSource{
		X:            x,
		Y:            y,
		MarkerRadius: markerRadius,
		Color:        col,
	}
}

// MoveTo updates the light's position (called each frame from cursor input)
func (l *LightSource) MoveTo(x, y float64) {
	l.X = x
	l.Y = y
}

// Origin returns the light's position as a point
func (l *LightSource) Origin() geometry.Point {
	return geometry.Point{X: l.X, Y: l.Y}
}
