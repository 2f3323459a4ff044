// Package obstacle defines the static shapes that block light rays.
//
// Obstacle is a closed variant over Segment and Circle. Callers switch on Kind
// rather than going through an interface, so the sweep's inner loop works on a
// flat slice of values.
package obstacle

import (
	"errors"
	"fmt"
	"math"

	"chosenoffset.com/lightfield/internal/core/geometry"
)

var (
	// ErrDegenerateSegment is returned when a segment's endpoints coincide
	ErrDegenerateSegment = errors.New("segment endpoints must differ")
	// ErrInvalidRadius is returned for a circle with a non-positive radius
	ErrInvalidRadius = errors.New("circle radius must be positive")
)

// Kind identifies the shape held by an Obstacle
type Kind int

const (
	KindSegment Kind = iota
	KindCircle
)

// String returns the lowercase name used in scene files
func (k Kind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindCircle:
		return "circle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Segment is a fixed line segment between two distinct points
type Segment struct {
	P1, P2 geometry.Point
}

// Circle is a circle outline
type Circle struct {
	Center geometry.Point
	Radius float64
}

// Obstacle is a single shape in the scene. Only the field matching Kind is meaningful.
// Width is the stroke width the renderer uses; it plays no part in intersection.
type Obstacle struct {
	Kind    Kind
	Segment Segment
	Circle  Circle
	Width   float64
}

// NewSegment creates a segment obstacle
func NewSegment(p1, p2 geometry.Point, width float64) (Obstacle, error) {
	if p1 == p2 {
		return Obstacle{}, fmt.Errorf("%w: (%g, %g)", ErrDegenerateSegment, p1.X, p1.Y)
	}
	return Obstacle{
		Kind:    KindSegment,
		Segment: Segment{P1: p1, P2: p2},
		Width:   width,
	}, nil
}

// NewCircle creates a circle obstacle
func NewCircle(center geometry.Point, radius, width float64) (Obstacle, error) {
	if !(radius > 0) || math.IsInf(radius, 1) {
		return Obstacle{}, fmt.Errorf("%w: %g", ErrInvalidRadius, radius)
	}
	return Obstacle{
		Kind:   KindCircle,
		Circle: Circle{Center: center, Radius: radius},
		Width:  width,
	}, nil
}

// CandidateCount returns how many candidates Intersect appends for this obstacle
func (o Obstacle) CandidateCount() int {
	if o.Kind == KindCircle {
		return 2
	}
	return 1
}

// Hits returns the raw intersection options of the ray origin->end with this obstacle.
// A segment yields one option, a circle two.
func (o Obstacle) Hits(origin, end geometry.Point) []geometry.Hit {
	switch o.Kind {
	case KindSegment:
		return []geometry.Hit{geometry.SegmentIntersect(origin, end, o.Segment.P1, o.Segment.P2)}
	case KindCircle:
		hits := geometry.CircleIntersect(origin, end, o.Circle.Center, o.Circle.Radius)
		return hits[:]
	default:
		return nil
	}
}

// Intersect appends this obstacle's candidate points for the ray origin->end to dst.
// Misses are replaced with the sentinel far endpoint, so a segment always appends
// exactly one point and a circle exactly two.
func (o Obstacle) Intersect(origin, end geometry.Point, dst []geometry.Point) []geometry.Point {
	switch o.Kind {
	case KindSegment:
		hit := geometry.SegmentIntersect(origin, end, o.Segment.P1, o.Segment.P2)
		return append(dst, hit.Or(end))
	case KindCircle:
		hits := geometry.CircleIntersect(origin, end, o.Circle.Center, o.Circle.Radius)
		return append(dst, hits[0].Or(end), hits[1].Or(end))
	default:
		return dst
	}
}

// Reach returns the farthest distance from p to any point of the obstacle
func (o Obstacle) Reach(p geometry.Point) float64 {
	switch o.Kind {
	case KindSegment:
		return math.Max(geometry.Distance(p, o.Segment.P1), geometry.Distance(p, o.Segment.P2))
	case KindCircle:
		return geometry.Distance(p, o.Circle.Center) + o.Circle.Radius
	default:
		return 0
	}
}
