package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"chosenoffset.com/lightfield/internal/app"
	"chosenoffset.com/lightfield/internal/config"
	"chosenoffset.com/lightfield/internal/core/geometry"
	"chosenoffset.com/lightfield/internal/core/raycast"
	"chosenoffset.com/lightfield/internal/core/scene"
	"chosenoffset.com/lightfield/internal/render"
	ebitenrender "chosenoffset.com/lightfield/internal/render/ebiten"
	"chosenoffset.com/lightfield/internal/render/terminal"
	"chosenoffset.com/lightfield/internal/scenescanner"
)

func main() {
	// Command-line flags
	configPath := flag.String("config", "config.json", "Config file (defaults are used if it does not exist)")
	scenePath := flag.String("scene", "", "Scene file (overrides the config's scene)")
	backendName := flag.String("backend", "window", "Backend: window or terminal")
	sweepName := flag.String("sweep", "", "Sweep mode: radians or degrees (overrides config)")
	workers := flag.Int("workers", -1, "Goroutines per sweep (overrides config, 0 = sequential)")
	dump := flag.String("dump", "", "Cast once from x,y, print the endpoints and exit")
	list := flag.String("list", "", "List the scene files in a directory and exit (e.g. data/scenes)")
	flag.Parse()

	if *list != "" {
		if err := listScenes(os.Stdout, *list); err != nil {
			log.Fatalf("Failed to list scenes: %v", err)
		}
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := applyOverrides(cfg, *scenePath, *sweepName, *workers); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	s, err := loadScene(cfg.Scene)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	log.Printf("Loaded scene %q with %d obstacles", s.Name(), s.Len())

	if *dump != "" {
		if err := dumpSweep(os.Stdout, cfg, s, *dump); err != nil {
			log.Fatalf("Dump failed: %v", err)
		}
		return
	}

	if err := run(cfg, s, *backendName); err != nil {
		log.Fatal(err)
	}
}

// run drives one session on the named backend. The backend is always closed
// and logging restored before run returns, so errors reach a usable stderr.
func run(cfg *config.Config, s *scene.Scene, backendName string) error {
	backend, closeBackend, err := newBackend(backendName)
	if err != nil {
		return fmt.Errorf("failed to start %s backend: %w", backendName, err)
	}
	defer closeBackend()
	defer quietLogs(backendName)()

	game, err := app.New(cfg, s, backend)
	if err != nil {
		return fmt.Errorf("failed to create app: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	game.Context = ctx

	// Set up the window
	engine := backend.Engine
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)
	engine.SetTPS(cfg.Window.TPS)

	log.Printf("Starting %s backend (%d rays, %s sweep)...", backendName, cfg.Rays.Count, cfg.Rays.Sweep)
	return engine.RunGame(game)
}

// quietLogs silences logging while the terminal backend owns stdout.
// The returned func restores the previous output.
func quietLogs(backendName string) func() {
	if backendName != "terminal" {
		return func() {}
	}
	out := log.Writer()
	log.SetOutput(io.Discard)
	return func() { log.SetOutput(out) }
}

// applyOverrides layers command-line flags over the loaded config
func applyOverrides(cfg *config.Config, scenePath, sweep string, workers int) error {
	if scenePath != "" {
		cfg.Scene = scenePath
	}
	if sweep != "" {
		cfg.Rays.Sweep = sweep
	}
	if workers >= 0 {
		cfg.Rays.Workers = workers
	}
	return cfg.Validate()
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.Default(), nil
	}
	return scene.Load(path)
}

func newBackend(name string) (render.Backend, func(), error) {
	switch name {
	case "window":
		return ebitenrender.NewBackend(), func() {}, nil
	case "terminal":
		return terminal.NewBackend()
	default:
		return render.Backend{}, nil, fmt.Errorf("unknown backend %q (want window or terminal)", name)
	}
}

// listScenes prints every loadable scene in dir
func listScenes(w io.Writer, dir string) error {
	entries, skipped, err := scenescanner.ScanSceneDirectory(dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%-20s %3d obstacles  %s\n", e.Name, e.Obstacles, e.Path)
	}
	for path, err := range skipped {
		log.Printf("Skipping %s: %v", path, err)
	}
	return nil
}

// dumpSweep casts one sweep from the point given as "x,y" and writes it to w
func dumpSweep(w io.Writer, cfg *config.Config, s *scene.Scene, at string) error {
	origin, err := parsePoint(at)
	if err != nil {
		return err
	}

	sweep, err := raycast.ParseSweep(cfg.Rays.Sweep)
	if err != nil {
		return err
	}
	caster, err := raycast.New(cfg.Rays.Count,
		raycast.WithLength(cfg.Rays.Length),
		raycast.WithSweep(sweep),
	)
	if err != nil {
		return err
	}

	endpoints := caster.CastAll(origin, s)

	cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	fmt.Fprintf(w, "origin: (%g, %g) sweep: %s rays: %d\n", origin.X, origin.Y, caster.Sweep(), len(endpoints))
	cs.Fdump(w, endpoints)
	return nil
}

func parsePoint(s string) (geometry.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("point %q must be x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return geometry.Point{X: x, Y: y}, nil
}
