// Package terminal is a render backend that draws the light field into a terminal
// with tcell. World coordinates are scaled onto the character grid, and mouse
// motion drives the cursor position.
package terminal

import (
	"errors"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"

	"chosenoffset.com/lightfield/internal/render"
)

// maxTPS keeps the tick interval a positive duration
const maxTPS = 1000

const (
	lineRune   = '·'
	circleRune = 'o'
	fillRune   = '█'
)

// Terminal implements render.Renderer, render.InputManager and render.Engine on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	clock  clockwork.Clock
	canvas *Canvas
	tps    int
	title  string

	cursorX, cursorY int
	justPressed      map[render.Key]bool
	quit             bool

	updates    int
	tpsStart   time.Time
	measuredHz float64
}

// New creates a terminal backend on an initialised screen. The frame loop is timed by clock.
func New(screen tcell.Screen, clock clockwork.Clock) *Terminal {
	cols, rows := screen.Size()
	return &Terminal{
		screen:      screen,
		clock:       clock,
		canvas:      &Canvas{screen: screen, cols: cols, rows: rows, width: cols, height: rows},
		tps:         60,
		justPressed: make(map[render.Key]bool),
		tpsStart:    clock.Now(),
	}
}

// NewBackend opens the controlling terminal and returns it as a render backend.
// The returned close function restores the terminal.
func NewBackend() (render.Backend, func(), error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return render.Backend{}, nil, err
	}
	if err := screen.Init(); err != nil {
		return render.Backend{}, nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	t := New(screen, clockwork.NewRealClock())
	return t.Backend(), screen.Fini, nil
}

// Backend returns t as all three backend roles
func (t *Terminal) Backend() render.Backend {
	return render.Backend{Renderer: t, Input: t, Engine: t}
}

// Canvas returns the drawing surface passed to Game.Draw
func (t *Terminal) Canvas() *Canvas {
	return t.canvas
}

// SetWindowSize sets the logical world size mapped onto the terminal.
func (t *Terminal) SetWindowSize(width, height int) {
	t.canvas.width = width
	t.canvas.height = height
}

// SetWindowTitle sets the text shown on the bottom row.
func (t *Terminal) SetWindowTitle(title string) {
	t.title = title
}

// SetWindowResizable is a no-op; the terminal always follows its own size.
func (t *Terminal) SetWindowResizable(resizable bool) {}

// SetTPS sets the number of Update calls per second, capped at 1000.
func (t *Terminal) SetTPS(tps int) {
	if tps > 0 {
		t.tps = min(tps, maxTPS)
	}
}

// ActualTPS reports the measured Update rate.
func (t *Terminal) ActualTPS() float64 {
	return t.measuredHz
}

// RunGame runs the frame loop until the game returns an error or the user quits.
func (t *Terminal) RunGame(game render.Game) error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				// Screen finalised
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := t.clock.NewTicker(t.interval())
	defer ticker.Stop()

	t.tpsStart = t.clock.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			t.HandleEvent(ev)

		case <-ticker.Chan():
			err := t.Step(game)
			if errors.Is(err, render.ErrTerminated) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

// Step runs one Update and Draw and presents the result
func (t *Terminal) Step(game render.Game) error {
	if t.quit {
		return render.ErrTerminated
	}

	err := game.Update()
	clear(t.justPressed)
	if err != nil {
		return err
	}
	t.measure()

	game.Layout(t.canvas.cols, t.canvas.rows)
	game.Draw(t.canvas)
	if t.title != "" {
		t.canvas.text(0, t.canvas.rows-1, t.title, tcell.StyleDefault.Reverse(true))
	}
	t.screen.Show()

	return nil
}

// interval returns the time between ticks
func (t *Terminal) interval() time.Duration {
	return time.Second / time.Duration(t.tps)
}

func (t *Terminal) measure() {
	t.updates++
	elapsed := t.clock.Since(t.tpsStart)
	if elapsed >= time.Second {
		t.measuredHz = float64(t.updates) / elapsed.Seconds()
		t.updates = 0
		t.tpsStart = t.clock.Now()
	}
}

// HandleEvent records one terminal event as input state
func (t *Terminal) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			t.quit = true
		case tcell.KeyEscape:
			t.justPressed[render.KeyEscape] = true
		case tcell.KeyRune:
			if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C') {
				t.quit = true
				return
			}
			switch ev.Rune() {
			case 'q', 'Q':
				t.justPressed[render.KeyQ] = true
			case 'm', 'M':
				t.justPressed[render.KeyM] = true
			case 'f', 'F':
				t.justPressed[render.KeyF] = true
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		t.cursorX, t.cursorY = t.canvas.toWorld(col, row)

	case *tcell.EventResize:
		t.canvas.cols, t.canvas.rows = t.screen.Size()
		t.screen.Sync()
	}
}

// IsKeyPressed reports whether key was pressed since the last Update.
// Terminals do not report key releases, so this matches IsKeyJustPressed.
func (t *Terminal) IsKeyPressed(key render.Key) bool {
	return t.justPressed[key]
}

// IsKeyJustPressed reports whether key was pressed since the last Update.
func (t *Terminal) IsKeyJustPressed(key render.Key) bool {
	return t.justPressed[key]
}

// GetCursorPosition returns the last mouse position in world coordinates.
func (t *Terminal) GetCursorPosition() (x, y int) {
	return t.cursorX, t.cursorY
}

// FillCircle draws a filled circle.
func (t *Terminal) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	c := dst.(*Canvas)
	style := styleFor(clr)

	cx, cy := c.toCell(float64(x), float64(y))
	rc, rr := c.scaleLen(float64(radius))
	// Always at least one cell so small markers stay visible
	c.set(cx, cy, fillRune, style)
	for row := cy - rr; row <= cy+rr; row++ {
		for col := cx - rc; col <= cx+rc; col++ {
			dx := float64(col-cx) / math.Max(float64(rc), 1)
			dy := float64(row-cy) / math.Max(float64(rr), 1)
			if dx*dx+dy*dy <= 1 {
				c.set(col, row, fillRune, style)
			}
		}
	}
}

// StrokeCircle draws a circle outline by sampling its circumference.
func (t *Terminal) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	c := dst.(*Canvas)
	style := styleFor(clr)

	rc, rr := c.scaleLen(float64(radius))
	steps := max(16, 4*(rc+rr))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		px := float64(x) + float64(radius)*math.Cos(a)
		py := float64(y) + float64(radius)*math.Sin(a)
		col, row := c.toCell(px, py)
		c.set(col, row, circleRune, style)
	}
}

// StrokeLine draws a line with Bresenham's algorithm on the cell grid.
func (t *Terminal) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color, antialias bool) {
	c := dst.(*Canvas)
	style := styleFor(clr)

	ch := lineRune
	if strokeWidth >= 3 {
		ch = fillRune
	}

	col0, row0 := c.toCell(float64(x0), float64(y0))
	col1, row1 := c.toCell(float64(x1), float64(y1))
	for _, p := range bresenham(col0, row0, col1, row1, c.cols, c.rows) {
		c.set(p.X, p.Y, ch, style)
	}
}

// DrawText draws text starting at the cell under world position (x, y).
func (t *Terminal) DrawText(dst render.Image, str string, x, y int, clr color.Color) {
	c := dst.(*Canvas)
	col, row := c.toCell(float64(x), float64(y))
	c.text(col, row, str, styleFor(clr))
}

// Canvas is the terminal drawing surface. It reports the logical world size and
// scales drawing coordinates onto its cols x rows grid.
type Canvas struct {
	screen        tcell.Screen
	cols, rows    int
	width, height int
	background    tcell.Style
}

// Bounds returns the logical world bounds.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// Size returns the logical world size.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Fill clears every cell to the given background color.
func (c *Canvas) Fill(clr color.Color) {
	c.background = tcell.StyleDefault.Background(toTcell(clr))
	c.screen.Fill(' ', c.background)
}

// Clear resets every cell to the terminal default.
func (c *Canvas) Clear() {
	c.background = tcell.StyleDefault
	c.screen.Clear()
}

// Grid returns the character grid size.
func (c *Canvas) Grid() (cols, rows int) {
	return c.cols, c.rows
}

func (c *Canvas) toCell(x, y float64) (col, row int) {
	if c.width <= 0 || c.height <= 0 {
		return int(x), int(y)
	}
	col = int(math.Floor(x * float64(c.cols) / float64(c.width)))
	row = int(math.Floor(y * float64(c.rows) / float64(c.height)))
	return col, row
}

func (c *Canvas) toWorld(col, row int) (x, y int) {
	if c.cols <= 0 || c.rows <= 0 {
		return col, row
	}
	x = int((float64(col) + 0.5) * float64(c.width) / float64(c.cols))
	y = int((float64(row) + 0.5) * float64(c.height) / float64(c.rows))
	return x, y
}

// scaleLen converts a world length into cell counts along each axis
func (c *Canvas) scaleLen(l float64) (cols, rows int) {
	if c.width <= 0 || c.height <= 0 {
		return int(l), int(l)
	}
	return int(l * float64(c.cols) / float64(c.width)), int(l * float64(c.rows) / float64(c.height))
}

func (c *Canvas) set(col, row int, ch rune, style tcell.Style) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	_, bg, _ := c.background.Decompose()
	c.screen.SetContent(col, row, ch, nil, style.Background(bg))
}

func (c *Canvas) text(col, row int, s string, style tcell.Style) {
	for _, r := range s {
		if col >= c.cols {
			return
		}
		if col >= 0 && row >= 0 && row < c.rows {
			c.screen.SetContent(col, row, r, nil, style)
		}
		col++
	}
}

func styleFor(clr color.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(toTcell(clr))
}

func toTcell(clr color.Color) tcell.Color {
	r, g, b, _ := clr.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// bresenham returns the on-grid cells of the line from (x0, y0) to (x1, y1).
// Walking stops once the line leaves the grid after having entered it.
func bresenham(x0, y0, x1, y1, cols, rows int) []image.Point {
	var points []image.Point

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		inside := x0 >= 0 && y0 >= 0 && x0 < cols && y0 < rows
		if inside {
			points = append(points, image.Pt(x0, y0))
		} else if len(points) > 0 {
			// Left the grid after entering it
			return points
		}
		if x0 == x1 && y0 == y1 {
			return points
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
