package scene

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chosenoffset.com/lightfield/internal/core/geometry"
	"chosenoffset.com/lightfield/internal/core/obstacle"
)

func TestParseScene(t *testing.T) {
	jsonData := `{
		"name": "test_scene",
		"obstacles": [
			{"kind": "segment", "p1": [0, 0], "p2": [10, 0], "width": 4},
			{"kind": "circle", "center": [5, 5], "radius": 2, "width": 1}
		]
	}`

	s, err := Parse([]byte(jsonData))
	if err != nil {
		t.Fatalf("Failed to parse scene: %v", err)
	}

	if s.Name() != "test_scene" {
		t.Errorf("Expected name 'test_scene', got '%s'", s.Name())
	}
	if s.Len() != 2 {
		t.Fatalf("Expected 2 obstacles, got %d", s.Len())
	}

	seg := s.Obstacles()[0]
	if seg.Kind != obstacle.KindSegment {
		t.Errorf("Expected first obstacle to be a segment, got %s", seg.Kind)
	}
	if seg.Segment.P2 != geometry.Pt(10, 0) {
		t.Errorf("Expected p2 (10, 0), got %v", seg.Segment.P2)
	}
	if seg.Width != 4 {
		t.Errorf("Expected width 4, got %f", seg.Width)
	}

	circle := s.Obstacles()[1]
	if circle.Kind != obstacle.KindCircle || circle.Circle.Radius != 2 {
		t.Errorf("Expected circle of radius 2, got %+v", circle)
	}

	if s.CandidateCount() != 3 {
		t.Errorf("Expected 3 candidates per ray, got %d", s.CandidateCount())
	}
}

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		wantMsg string
	}{
		{"bad json", `{"obstacles": [`, nil, "failed to parse scene"},
		{"unknown kind", `{"obstacles": [{"kind": "triangle"}]}`, nil, "unknown obstacle kind"},
		{"degenerate segment", `{"obstacles": [{"kind": "segment", "p1": [1, 1], "p2": [1, 1]}]}`, obstacle.ErrDegenerateSegment, "obstacle 0"},
		{"zero radius", `{"obstacles": [
			{"kind": "segment", "p1": [0, 0], "p2": [1, 1]},
			{"kind": "circle", "center": [1, 1], "radius": 0}]}`, obstacle.ErrInvalidRadius, "obstacle 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected error to mention %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestDefaultScene(t *testing.T) {
	s := Default()

	if s.Len() != 8 {
		t.Fatalf("Expected 8 obstacles, got %d", s.Len())
	}

	kinds := []obstacle.Kind{
		obstacle.KindSegment, obstacle.KindSegment, obstacle.KindSegment, obstacle.KindSegment,
		obstacle.KindSegment, obstacle.KindCircle, obstacle.KindCircle, obstacle.KindSegment,
	}
	for i, o := range s.Obstacles() {
		if o.Kind != kinds[i] {
			t.Errorf("Obstacle %d: expected %s, got %s", i, kinds[i], o.Kind)
		}
	}

	// 6 segments + 2 circles
	if s.CandidateCount() != 10 {
		t.Errorf("Expected 10 candidates per ray, got %d", s.CandidateCount())
	}
}

func TestDefaultSceneFitsRayLength(t *testing.T) {
	reach := Default().MaxReach(Corners(1080, 720)...)
	if reach >= 2000 {
		t.Errorf("Expected default scene reach below 2000 from every corner, got %f", reach)
	}
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")

	data, err := json.Marshal(DefaultFile)
	if err != nil {
		t.Fatalf("Failed to marshal default scene: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load scene: %v", err)
	}
	if s.Len() != Default().Len() {
		t.Errorf("Expected %d obstacles, got %d", Default().Len(), s.Len())
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected an error for a missing scene file")
	}
}

func TestBundledSceneFiles(t *testing.T) {
	paths, err := filepath.Glob("../../../data/scenes/*.json")
	if err != nil {
		t.Fatalf("Failed to glob scene files: %v", err)
	}

	for _, path := range paths {
		s, err := Load(path)
		if err != nil {
			t.Errorf("%s: %v", path, err)
			continue
		}
		if s.Len() == 0 {
			t.Errorf("%s: expected at least one obstacle", path)
		}
	}
}

func TestEncodeRoundTripsDefault(t *testing.T) {
	file := Encode(Default())
	rebuilt, err := file.Build()
	if err != nil {
		t.Fatalf("Failed to rebuild encoded scene: %v", err)
	}

	for i, o := range rebuilt.Obstacles() {
		if o != Default().Obstacles()[i] {
			t.Errorf("Obstacle %d: expected %+v, got %+v", i, Default().Obstacles()[i], o)
		}
	}
}

func TestNewCopiesObstacles(t *testing.T) {
	o, _ := obstacle.NewSegment(geometry.Pt(0, 0), geometry.Pt(1, 0), 1)
	obs := []obstacle.Obstacle{o}
	s := New("copy", obs...)

	obs[0].Width = 99
	if s.Obstacles()[0].Width != 1 {
		t.Error("Expected scene to be unaffected by changes to the input slice")
	}
}

func TestEmptySceneReach(t *testing.T) {
	if got := Empty().Reach(geometry.Pt(10, 10)); got != 0 {
		t.Errorf("Expected empty scene reach 0, got %f", got)
	}
}
