// Package raycast sweeps rays out from a light source and resolves the nearest
// obstacle hit along each one.
package raycast

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"chosenoffset.com/lightfield/internal/core/geometry"
	"chosenoffset.com/lightfield/internal/core/scene"
)

const (
	// DefaultLength is the ray length. It must exceed the distance from any light
	// position to any obstacle or far obstacles can never be hit.
	DefaultLength = 2000.0
	// DefaultRays is the number of rays per sweep
	DefaultRays = 360
)

// ErrNoCandidates is returned when nearest-hit selection is given nothing to choose from
var ErrNoCandidates = errors.New("no intersection candidates")

// Caster casts a fixed fan of rays against a scene.
// A Caster is immutable once built and can be shared between goroutines.
type Caster struct {
	length     float64
	sweep      Sweep
	workers    int
	directions []geometry.Point
}

// Option configures a Caster
type Option func(*Caster)

// WithLength sets the ray length
func WithLength(length float64) Option {
	return func(c *Caster) { c.length = length }
}

// WithSweep sets how ray indices map to angles
func WithSweep(s Sweep) Option {
	return func(c *Caster) { c.sweep = s }
}

// WithWorkers sets how many goroutines CastAllContext uses. 0 or 1 means sequential.
func WithWorkers(n int) Option {
	return func(c *Caster) { c.workers = n }
}

// New creates a caster for n rays
func New(n int, opts ...Option) (*Caster, error) {
	c := &Caster{
		length: DefaultLength,
		sweep:  SweepRadians,
	}
	for _, opt := range opts {
		opt(c)
	}

	if n <= 0 {
		return nil, fmt.Errorf("ray count must be positive, got %d", n)
	}
	if !(c.length > 0) || math.IsInf(c.length, 1) {
		return nil, fmt.Errorf("ray length must be positive and finite, got %g", c.length)
	}
	if c.workers < 0 {
		return nil, fmt.Errorf("worker count must not be negative, got %d", c.workers)
	}
	if !c.sweep.Valid() {
		return nil, fmt.Errorf("unknown sweep mode %d", int(c.sweep))
	}

	// Precompute the unit direction of every ray
	c.directions = make([]geometry.Point, n)
	for i := range c.directions {
		c.directions[i] = geometry.PolarOffset(geometry.Point{}, 1, c.sweep.Angle(i))
	}

	return c, nil
}

// Default creates a 360-ray caster of length 2000 with the radian sweep
func Default() *Caster {
	c, err := New(DefaultRays)
	if err != nil {
		panic(err)
	}
	return c
}

// Rays returns the number of rays per sweep
func (c *Caster) Rays() int {
	return len(c.directions)
}

// Length returns the ray length
func (c *Caster) Length() float64 {
	return c.length
}

// Sweep returns the caster's sweep mode
func (c *Caster) Sweep() Sweep {
	return c.sweep
}

// Workers returns the configured worker count
func (c *Caster) Workers() int {
	return c.workers
}

// WithSweep returns a copy of the caster using a different sweep mode
func (c *Caster) WithSweep(s Sweep) (*Caster, error) {
	return New(c.Rays(), WithLength(c.length), WithWorkers(c.workers), WithSweep(s))
}

// RayEnd returns the far endpoint of ray i from origin. It equals
// geometry.PolarOffset(origin, Length(), angle of ray i) without redoing the trig.
func (c *Caster) RayEnd(origin geometry.Point, i int) geometry.Point {
	return origin.Add(c.directions[i].Scale(c.length))
}

// CastAll resolves every ray from origin against the scene and returns one endpoint per
// ray in ray order. A ray that hits nothing ends at its far endpoint, so the result
// always has Rays() points, even for an empty scene.
func (c *Caster) CastAll(origin geometry.Point, s *scene.Scene) []geometry.Point {
	out := make([]geometry.Point, len(c.directions))
	candidates := make([]geometry.Point, 0, s.CandidateCount())
	c.castRange(origin, s, out, 0, len(out), candidates)
	return out
}

// CastAllContext is CastAll spread over the caster's workers. Each worker owns a
// contiguous block of ray indices and writes only its own slots, so the output is
// identical to CastAll. It returns ctx.Err() if the context is cancelled.
func (c *Caster) CastAllContext(ctx context.Context, origin geometry.Point, s *scene.Scene) ([]geometry.Point, error) {
	if c.workers <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return c.CastAll(origin, s), nil
	}

	out := make([]geometry.Point, len(c.directions))
	chunk := (len(out) + c.workers - 1) / c.workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(out); start += chunk {
		lo, hi := start, min(start+chunk, len(out))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			candidates := make([]geometry.Point, 0, s.CandidateCount())
			c.castRange(origin, s, out, lo, hi, candidates)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// castRange resolves rays [lo, hi) into out, reusing candidates as scratch space
func (c *Caster) castRange(origin geometry.Point, s *scene.Scene, out []geometry.Point, lo, hi int, candidates []geometry.Point) {
	obstacles := s.Obstacles()

	for i := lo; i < hi; i++ {
		end := c.RayEnd(origin, i)

		// Empty scene: the ray travels its full length
		if len(obstacles) == 0 {
			out[i] = end
			continue
		}

		candidates = candidates[:0]
		for _, o := range obstacles {
			candidates = o.Intersect(origin, end, candidates)
		}

		nearest, err := Nearest(origin, candidates)
		if err != nil {
			out[i] = end
			continue
		}
		out[i] = nearest
	}
}

// Nearest returns the candidate closest to origin. The first of equally close
// candidates wins.
func Nearest(origin geometry.Point, candidates []geometry.Point) (geometry.Point, error) {
	if len(candidates) == 0 {
		return geometry.Point{}, ErrNoCandidates
	}

	best := candidates[0]
	bestDist := geometry.Distance(origin, best)
	for _, p := range candidates[1:] {
		if d := geometry.Distance(origin, p); d < bestDist {
			best = p
			bestDist = d
		}
	}

	return best, nil
}
