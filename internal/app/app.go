// Package app runs the light field frame loop: input moves the light, and every
// frame the sweep is recomputed and handed to the renderer.
package app

import (
	"context"
	"fmt"
	"log"

	"chosenoffset.com/lightfield/internal/config"
	"chosenoffset.com/lightfield/internal/core/geometry"
	"chosenoffset.com/lightfield/internal/core/raycast"
	"chosenoffset.com/lightfield/internal/core/scene"
	"chosenoffset.com/lightfield/internal/render"
	"chosenoffset.com/lightfield/internal/render/lighting"
)

// App holds the scene, the light and the sweep settings for one run.
type App struct {
	ScreenWidth  int
	ScreenHeight int
	Scene        *scene.Scene
	Caster       *raycast.Caster
	Light        *lighting.LightSource
	Palette      config.Palette

	Renderer render.Renderer
	InputMgr render.InputManager
	Engine   render.Engine

	// Context bounds every sweep. Nil means context.Background; once it is
	// cancelled Update ends the run.
	Context context.Context

	// UI state
	ShowStats bool

	// Debug
	FrameCount int
}

// New builds an App from config and a scene, drawing through the given backend.
func New(cfg *config.Config, s *scene.Scene, backend render.Backend) (*App, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve colors: %w", err)
	}

	sweep, err := raycast.ParseSweep(cfg.Rays.Sweep)
	if err != nil {
		return nil, err
	}

	caster, err := raycast.New(cfg.Rays.Count,
		raycast.WithLength(cfg.Rays.Length),
		raycast.WithSweep(sweep),
		raycast.WithWorkers(cfg.Rays.Workers),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ray caster: %w", err)
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	if reach := s.MaxReach(scene.Corners(float64(w), float64(h))...); reach >= caster.Length() {
		log.Printf("Warning: ray length %.0f does not exceed scene reach %.0f; far obstacles may be missed",
			caster.Length(), reach)
	}

	return &App{
		ScreenWidth:  w,
		ScreenHeight: h,
		Scene:        s,
		Caster:       caster,
		Light:        lighting.NewLightSource(float64(w)/2, float64(h)/2, cfg.Light.MarkerRadius, palette.Light),
		Palette:      palette,
		Renderer:     backend.Renderer,
		InputMgr:     backend.Input,
		Engine:       backend.Engine,
	}, nil
}

// Update handles input. It is the only writer of the light position.
func (a *App) Update() error {
	if err := a.context().Err(); err != nil {
		return render.ErrTerminated
	}

	if a.InputMgr.IsKeyJustPressed(render.KeyEscape) || a.InputMgr.IsKeyJustPressed(render.KeyQ) {
		return render.ErrTerminated
	}

	if a.InputMgr.IsKeyJustPressed(render.KeyM) {
		caster, err := a.Caster.WithSweep(a.Caster.Sweep().Next())
		if err != nil {
			return err
		}
		a.Caster = caster
		log.Printf("Sweep mode: %s", caster.Sweep())
	}

	if a.InputMgr.IsKeyJustPressed(render.KeyF) {
		a.ShowStats = !a.ShowStats
	}

	x, y := a.InputMgr.GetCursorPosition()
	a.Light.MoveTo(float64(x), float64(y))

	return nil
}

// Layout returns the fixed logical screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.ScreenWidth, a.ScreenHeight
}

// Cast computes this frame's sweep from the current light position.
func (a *App) Cast() ([]geometry.Point, error) {
	return a.Caster.CastAllContext(a.context(), a.Light.Origin(), a.Scene)
}

func (a *App) context() context.Context {
	if a.Context == nil {
		return context.Background()
	}
	return a.Context
}
