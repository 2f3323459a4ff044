package main

import (
	"bytes"
	"io"
	"log"
	"strings"
	"testing"

	"chosenoffset.com/lightfield/internal/config"
	"chosenoffset.com/lightfield/internal/core/geometry"
	"chosenoffset.com/lightfield/internal/core/scene"
)

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("12.5, 40")
	if err != nil {
		t.Fatalf("parsePoint failed: %v", err)
	}
	if p != geometry.Pt(12.5, 40) {
		t.Errorf("Expected (12.5, 40), got %v", p)
	}

	for _, bad := range []string{"", "1", "1,2,3", "a,2", "1,b"} {
		if _, err := parsePoint(bad); err == nil {
			t.Errorf("parsePoint(%q): expected an error", bad)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := applyOverrides(cfg, "data/scenes/pillars.json", "degrees", 4); err != nil {
		t.Fatalf("applyOverrides failed: %v", err)
	}
	if cfg.Scene != "data/scenes/pillars.json" || cfg.Rays.Sweep != "degrees" || cfg.Rays.Workers != 4 {
		t.Errorf("Expected overrides to apply, got scene=%q sweep=%q workers=%d", cfg.Scene, cfg.Rays.Sweep, cfg.Rays.Workers)
	}

	// Unset flags leave the config alone
	cfg = config.DefaultConfig()
	if err := applyOverrides(cfg, "", "", -1); err != nil {
		t.Fatalf("applyOverrides failed: %v", err)
	}
	if cfg.Rays.Sweep != "radians" || cfg.Rays.Workers != 0 {
		t.Errorf("Expected defaults to be kept, got sweep=%q workers=%d", cfg.Rays.Sweep, cfg.Rays.Workers)
	}

	if err := applyOverrides(config.DefaultConfig(), "", "sideways", -1); err == nil {
		t.Error("Expected an error for an unknown sweep")
	}
}

func TestLoadSceneDefault(t *testing.T) {
	s, err := loadScene("")
	if err != nil {
		t.Fatalf("loadScene failed: %v", err)
	}
	if s.Len() != scene.Default().Len() {
		t.Errorf("Expected the built-in scene, got %d obstacles", s.Len())
	}
}

func TestDumpSweep(t *testing.T) {
	var buf bytes.Buffer
	if err := dumpSweep(&buf, config.DefaultConfig(), scene.Default(), "450,300"); err != nil {
		t.Fatalf("dumpSweep failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "origin: (450, 300) sweep: radians rays: 360\n") {
		t.Errorf("Unexpected header: %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, "geometry.Point") {
		t.Error("Expected the dump to list points")
	}
}

func TestListScenes(t *testing.T) {
	var buf bytes.Buffer
	if err := listScenes(&buf, "../../data/scenes"); err != nil {
		t.Fatalf("listScenes failed: %v", err)
	}
	if !strings.Contains(buf.String(), "pillars") || !strings.Contains(buf.String(), "default") {
		t.Errorf("Expected bundled scenes in listing, got %q", buf.String())
	}
}

func TestNewBackendRejectsUnknown(t *testing.T) {
	if _, _, err := newBackend("hologram"); err == nil {
		t.Error("Expected an error for an unknown backend")
	}
}

func TestRunReturnsAppErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Colors.Ray = "not-a-color"

	err := run(cfg, scene.Default(), "window")
	if err == nil || !strings.Contains(err.Error(), "failed to create app") {
		t.Errorf("Expected an app creation error, got %v", err)
	}
}

func TestQuietLogsRestoresOutput(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	restore := quietLogs("terminal")
	if log.Writer() != io.Discard {
		t.Error("Expected logging to be discarded for the terminal backend")
	}
	restore()
	if log.Writer() != &buf {
		t.Error("Expected logging to be restored")
	}

	restore = quietLogs("window")
	if log.Writer() != &buf {
		t.Error("Expected the window backend to keep logging")
	}
	restore()
}
