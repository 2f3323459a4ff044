package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrTerminated is returned from Game.Update to end the run loop cleanly
var ErrTerminated = errors.New("terminated")

// Renderer is the main rendering interface that abstracts the underlying
// graphics backend. The light field's geometry never touches a backend directly;
// it hands points and shapes to a Renderer.
type Renderer interface {
	// Vector operations (for drawing shapes)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color, antialias bool)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color)
}

// Image represents a renderable surface that can be drawn to.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Fill operations
	Fill(clr color.Color)
	Clear()
}

// InputManager handles input from the user (keyboard, mouse, etc).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the light field listens to
const (
	KeyEscape Key = iota
	KeyQ          // Quit
	KeyM          // Sweep mode toggle
	KeyF          // Stats overlay toggle
)

// Game represents the game interface that the engine will call.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	// Returning ErrTerminated ends the run loop without error.
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the backend that manages the frame loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// SetTPS sets the number of Update calls per second.
	SetTPS(tps int)

	// ActualTPS reports the measured Update rate.
	ActualTPS() float64

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}

// Backend bundles the pieces a frontend provides
type Backend struct {
	Renderer Renderer
	Input    InputManager
	Engine   Engine
}
