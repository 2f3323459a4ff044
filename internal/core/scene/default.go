package scene

import "chosenoffset.com/lightfield/internal/core/geometry"

// DefaultFile is the built-in layout for a 1080x720 window: a closed box, two long
// diagonal walls and two circles, in draw order.
var DefaultFile = File{
	Name: "default",
	Obstacles: []ObstacleData{
		{Kind: "segment", P1: [2]float64{700, 400}, P2: [2]float64{700, 500}, Width: 4},
		{Kind: "segment", P1: [2]float64{200, 400}, P2: [2]float64{700, 400}, Width: 4},
		{Kind: "segment", P1: [2]float64{200, 400}, P2: [2]float64{200, 500}, Width: 4},
		{Kind: "segment", P1: [2]float64{200, 500}, P2: [2]float64{700, 500}, Width: 4},
		{Kind: "segment", P1: [2]float64{454, 100}, P2: [2]float64{918, 88}, Width: 4},
		{Kind: "circle", Center: [2]float64{900, 600}, Radius: 50, Width: 2},
		{Kind: "circle", Center: [2]float64{100, 100}, Radius: 100, Width: 2},
		{Kind: "segment", P1: [2]float64{300, 145}, P2: [2]float64{873, 10}, Width: 4},
	},
}

// Default returns the built-in scene
func Default() *Scene {
	s, err := DefaultFile.Build()
	if err != nil {
		// DefaultFile is static data
		panic(err)
	}
	return s
}

// Empty returns a scene with no obstacles
func Empty() *Scene {
	return New("empty")
}

// Corners returns the four corners of a width x height viewport
func Corners(width, height float64) []geometry.Point {
	return []geometry.Point{
		{X: 0, Y: 0},
		{X: width, Y: 0},
		{X: 0, Y: height},
		{X: width, Y: height},
	}
}
