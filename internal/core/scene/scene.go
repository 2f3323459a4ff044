// Package scene holds the ordered, immutable set of obstacles the light is cast against.
package scene

import (
	"chosenoffset.com/lightfield/internal/core/geometry"
	"chosenoffset.com/lightfield/internal/core/obstacle"
)

// Scene is an ordered collection of obstacles. Order only affects draw order.
// A Scene is never modified after construction and is safe for concurrent reads.
type Scene struct {
	name      string
	obstacles []obstacle.Obstacle
}

// New creates a scene from the given obstacles. The slice is copied.
func New(name string, obstacles ...obstacle.Obstacle) *Scene {
	obs := make([]obstacle.Obstacle, len(obstacles))
	copy(obs, obstacles)
	return &Scene{name: name, obstacles: obs}
}

// Name returns the scene's display name
func (s *Scene) Name() string {
	return s.name
}

// Obstacles returns the scene's obstacles in draw order. Callers must not modify the slice.
func (s *Scene) Obstacles() []obstacle.Obstacle {
	return s.obstacles
}

// Len returns the number of obstacles
func (s *Scene) Len() int {
	return len(s.obstacles)
}

// CandidateCount returns the number of candidate points one ray produces against this scene
func (s *Scene) CandidateCount() int {
	n := 0
	for _, o := range s.obstacles {
		n += o.CandidateCount()
	}
	return n
}

// Reach returns the farthest distance from p to any obstacle, or 0 for an empty scene
func (s *Scene) Reach(p geometry.Point) float64 {
	reach := 0.0
	for _, o := range s.obstacles {
		if r := o.Reach(p); r > reach {
			reach = r
		}
	}
	return reach
}

// MaxReach returns the largest Reach over the given viewpoints.
// Used to check that rays are long enough to touch every obstacle.
func (s *Scene) MaxReach(points ...geometry.Point) float64 {
	reach := 0.0
	for _, p := range points {
		if r := s.Reach(p); r > reach {
			reach = r
		}
	}
	return reach
}
