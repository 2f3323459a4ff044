package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"chosenoffset.com/lightfield/internal/core/geometry"
	"chosenoffset.com/lightfield/internal/core/obstacle"
)

// File is the on-disk representation of a scene
type File struct {
	Name      string         `json:"name"`
	Obstacles []ObstacleData `json:"obstacles"`
}

// ObstacleData describes one obstacle in a scene file.
// Segments use p1/p2, circles use center/radius.
type ObstacleData struct {
	Kind   string     `json:"kind"` // "segment" or "circle"
	P1     [2]float64 `json:"p1,omitempty"`
	P2     [2]float64 `json:"p2,omitempty"`
	Center [2]float64 `json:"center,omitempty"`
	Radius float64    `json:"radius,omitempty"`
	Width  float64    `json:"width"`
}

// Load reads a scene from a JSON file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file %s: %w", path, err)
	}

	return s, nil
}

// Parse builds a scene from JSON scene data
func Parse(data []byte) (*Scene, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return file.Build()
}

// Build validates every obstacle and assembles the scene
func (f *File) Build() (*Scene, error) {
	obstacles := make([]obstacle.Obstacle, 0, len(f.Obstacles))

	for i, od := range f.Obstacles {
		o, err := od.build()
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		obstacles = append(obstacles, o)
	}

	return New(f.Name, obstacles...), nil
}

func (od ObstacleData) build() (obstacle.Obstacle, error) {
	switch od.Kind {
	case "segment":
		return obstacle.NewSegment(point(od.P1), point(od.P2), od.Width)
	case "circle":
		return obstacle.NewCircle(point(od.Center), od.Radius, od.Width)
	default:
		return obstacle.Obstacle{}, fmt.Errorf("unknown obstacle kind %q", od.Kind)
	}
}

// Encode converts a scene back to its file form
func Encode(s *Scene) File {
	file := File{Name: s.Name()}
	for _, o := range s.Obstacles() {
		od := ObstacleData{Kind: o.Kind.String(), Width: o.Width}
		switch o.Kind {
		case obstacle.KindSegment:
			od.P1 = [2]float64{o.Segment.P1.X, o.Segment.P1.Y}
			od.P2 = [2]float64{o.Segment.P2.X, o.Segment.P2.Y}
		case obstacle.KindCircle:
			od.Center = [2]float64{o.Circle.Center.X, o.Circle.Center.Y}
			od.Radius = o.Circle.Radius
		}
		file.Obstacles = append(file.Obstacles, od)
	}
	return file
}

func point(v [2]float64) geometry.Point {
	return geometry.Point{X: v[0], Y: v[1]}
}
