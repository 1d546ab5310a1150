package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/stephanschulz/grid-cube/pkg/engine"
	"github.com/stephanschulz/grid-cube/pkg/field"
	"github.com/stephanschulz/grid-cube/pkg/kernel"
	"github.com/stephanschulz/grid-cube/pkg/kernel/manifold"
	"github.com/stephanschulz/grid-cube/pkg/kernel/sdfx"
	"github.com/stephanschulz/grid-cube/pkg/raster"
	"github.com/stephanschulz/grid-cube/pkg/scene"
	"github.com/stephanschulz/grid-cube/pkg/tessellate"
)

// App is the Wails backend. It exposes methods to the frontend via
// bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel
}

// NewApp creates a new App with a scene engine and a geometry kernel.
// The Manifold backend is preferred when the binary is built with the
// manifold tag; otherwise the pure-Go sdfx backend is used.
func NewApp() *App {
	k, err := manifold.New()
	if err != nil {
		k = sdfx.New()
	}
	return &App{
		engine: engine.New(),
		kernel: k,
	}
}

// startup is called by Wails on app startup. The context is saved so
// we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// BuildResult is the full result returned to the frontend: the clamped
// scene that was built, the point/segment lists, the meshes for the 3D
// view, and any errors or advisory warnings.
type BuildResult struct {
	Scene    scene.Scene        `json:"scene"`
	Field    *field.Field       `json:"field,omitempty"`
	Surface  *kernel.Mesh       `json:"surface,omitempty"`
	Solid    *kernel.Mesh       `json:"solid,omitempty"`
	Errors   []engine.EvalError `json:"errors"`
	Warnings []scene.Warning    `json:"warnings"`
}

// Evaluate takes scene-script source and returns the built field.
// This is the binding called by the frontend editor.
func (a *App) Evaluate(source string) BuildResult {
	sc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout).
		log.Printf("Evaluate fatal error: %v", err)
		return BuildResult{
			Errors:   []engine.EvalError{{Message: err.Error()}},
			Warnings: []scene.Warning{},
		}
	}
	if len(evalErrs) > 0 {
		return BuildResult{Errors: evalErrs, Warnings: []scene.Warning{}}
	}
	return a.materialize(*sc)
}

// Build rebuilds the field for a scene edited directly by the
// frontend widgets. This is the binding behind every slider tick.
func (a *App) Build(sc scene.Scene) BuildResult {
	return a.materialize(sc)
}

// DefaultScene returns the canonical demo scene.
func (a *App) DefaultScene() scene.Scene {
	return scene.Default()
}

// materialize clamps the scene and produces the complete result. The
// whole field is rebuilt from scratch on every call; at these grid
// sizes a rebuild fits comfortably in a frame.
func (a *App) materialize(sc scene.Scene) BuildResult {
	sc.Clamp()

	result := BuildResult{
		Scene:    sc,
		Errors:   []engine.EvalError{},
		Warnings: sc.Validate(),
	}
	if result.Warnings == nil {
		result.Warnings = []scene.Warning{}
	}

	result.Field = sc.Build()
	result.Surface = tessellate.Surface(result.Field)

	solid, err := tessellate.Solid(sc, a.kernel)
	if err != nil {
		log.Printf("solid mesh error: %v", err)
	} else {
		result.Solid = solid
	}
	return result
}

// SaveScene persists a scene to the user config dir.
func (a *App) SaveScene(sc scene.Scene) error {
	sc.Clamp()
	path, err := scenePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	return nil
}

// LoadScene restores the persisted scene, falling back to the default
// scene when none has been saved yet.
func (a *App) LoadScene() (scene.Scene, error) {
	path, err := scenePath()
	if err != nil {
		return scene.Default(), err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return scene.Default(), nil
	}
	if err != nil {
		return scene.Default(), fmt.Errorf("load scene: %w", err)
	}
	var sc scene.Scene
	if err := json.Unmarshal(data, &sc); err != nil {
		return scene.Default(), fmt.Errorf("load scene: %w", err)
	}
	sc.Clamp()
	return sc, nil
}

// ExportImage renders a scene to a PNG snapshot at the given path.
func (a *App) ExportImage(sc scene.Scene, path string, size int) error {
	sc.Clamp()
	opts := raster.DefaultOptions()
	if size > 0 {
		opts.Size = size
	}
	img := raster.Render(sc.Build(), opts)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export image: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("export image: %w", err)
	}
	return nil
}

// scenePath returns the on-disk location of the persisted scene.
func scenePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("scene path: %w", err)
	}
	return filepath.Join(dir, "grid-cube", "scene.json"), nil
}
