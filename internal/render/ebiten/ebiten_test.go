package ebiten

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"chosenoffset.com/lightfield/internal/render"
)

type stubGame struct {
	err error
}

func (g *stubGame) Update() error              { return g.err }
func (g *stubGame) Draw(screen render.Image)   {}
func (g *stubGame) Layout(w, h int) (int, int) { return w / 2, h / 2 }

func TestAdapterMapsTermination(t *testing.T) {
	a := &gameAdapter{game: &stubGame{err: render.ErrTerminated}}
	if err := a.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Expected ebiten.Termination, got %v", err)
	}
}

func TestAdapterPassesOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	a := &gameAdapter{game: &stubGame{err: boom}}
	if err := a.Update(); !errors.Is(err, boom) {
		t.Errorf("Expected boom, got %v", err)
	}

	a = &gameAdapter{game: &stubGame{}}
	if err := a.Update(); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
}

func TestAdapterLayout(t *testing.T) {
	a := &gameAdapter{game: &stubGame{}}
	if w, h := a.Layout(200, 100); w != 100 || h != 50 {
		t.Errorf("Expected layout 100x50, got %dx%d", w, h)
	}
}

func TestKeyMapping(t *testing.T) {
	tests := map[render.Key]ebiten.Key{
		render.KeyEscape: ebiten.KeyEscape,
		render.KeyQ:      ebiten.KeyQ,
		render.KeyM:      ebiten.KeyM,
		render.KeyF:      ebiten.KeyF,
	}
	for key, want := range tests {
		if got := keyToEbitenKey(key); got != want {
			t.Errorf("Key %d: expected %v, got %v", key, want, got)
		}
	}
}
