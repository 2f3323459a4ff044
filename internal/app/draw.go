package app

import (
	"fmt"
	"log"

	"chosenoffset.com/lightfield/internal/core/geometry"
	"chosenoffset.com/lightfield/internal/core/obstacle"
	"chosenoffset.com/lightfield/internal/render"
)

const rayWidth = 2

// Draw renders the frame to the screen.
func (a *App) Draw(screen render.Image) {
	a.FrameCount++

	// Step 1: Clear to the background
	screen.Fill(a.Palette.Background)

	// Step 2: Draw the obstacles
	a.drawObstacles(screen)

	// Step 3: Cast and draw the light field from this frame's origin
	origin := a.Light.Origin()
	endpoints, err := a.Cast()
	if err != nil {
		log.Printf("Sweep failed: %v", err)
	} else {
		a.drawRays(screen, origin, endpoints)
	}
	if a.FrameCount <= 3 {
		log.Printf("DEBUG Frame %d: %d rays from (%.0f, %.0f)", a.FrameCount, len(endpoints), origin.X, origin.Y)
	}

	// Step 4: Draw the light source on top
	a.Renderer.FillCircle(screen,
		float32(origin.X),
		float32(origin.Y),
		float32(a.Light.MarkerRadius),
		a.Light.Color)

	if a.ShowStats {
		a.drawStats(screen)
	}
}

func (a *App) drawObstacles(screen render.Image) {
	for _, o := range a.Scene.Obstacles() {
		switch o.Kind {
		case obstacle.KindSegment:
			a.Renderer.StrokeLine(screen,
				float32(o.Segment.P1.X), float32(o.Segment.P1.Y),
				float32(o.Segment.P2.X), float32(o.Segment.P2.Y),
				float32(o.Width), a.Palette.Segment, true)
		case obstacle.KindCircle:
			a.Renderer.StrokeCircle(screen,
				float32(o.Circle.Center.X), float32(o.Circle.Center.Y),
				float32(o.Circle.Radius), float32(o.Width), a.Palette.Circle)
		}
	}
}

func (a *App) drawRays(screen render.Image, origin geometry.Point, endpoints []geometry.Point) {
	for _, p := range endpoints {
		a.Renderer.StrokeLine(screen,
			float32(origin.X), float32(origin.Y),
			float32(p.X), float32(p.Y),
			rayWidth, a.Palette.Ray, true)
	}
}

func (a *App) drawStats(screen render.Image) {
	tps := 0.0
	if a.Engine != nil {
		tps = a.Engine.ActualTPS()
	}

	lines := []string{
		fmt.Sprintf("TPS: %.1f", tps),
		fmt.Sprintf("Rays: %d (%s)", a.Caster.Rays(), a.Caster.Sweep()),
		fmt.Sprintf("Obstacles: %d", a.Scene.Len()),
		fmt.Sprintf("Light: (%.0f, %.0f)", a.Light.X, a.Light.Y),
	}
	for i, line := range lines {
		a.Renderer.DrawText(screen, line, 8, 8+i*16, a.Palette.Ray)
	}
}
