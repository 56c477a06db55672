package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/smasonuk/texemit"
	"github.com/smasonuk/texemit/config"
	"github.com/smasonuk/texemit/preview"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	meshPath := flag.String("mesh", "sphere", "PLY file, or \"quad\" / \"sphere\"")
	texturePath := flag.String("texture", "noise", "Emission map image, or \"noise\"")
	outPath := flag.String("out", "-", "CSV output path (\"-\" = stdout, empty = none)")
	configOut := flag.String("config-out", "", "Write the effective config to this path")
	meshOut := flag.String("mesh-out", "", "Write the loaded mesh as PLY to this path")
	showPreview := flag.Bool("preview", false, "Open a preview window")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	verbose := flag.Bool("v", false, "Debug logging")
	seed := flag.Int64("seed", 1, "Seed for the noise emission map")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if *logFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	if err := run(*configPath, *meshPath, *texturePath, *outPath, *configOut, *meshOut, *showPreview, *seed); err != nil {
		slog.Error("texemit failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, meshPath, texturePath, outPath, configOut, meshOut string, showPreview bool, seed int64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if configOut != "" {
		if err := cfg.WriteYAML(configOut); err != nil {
			return err
		}
	}

	slog.Info("Loading mesh...", "mesh", meshPath)
	mesh, err := loadMesh(meshPath)
	if err != nil {
		return err
	}
	slog.Info("mesh loaded", "vertices", len(mesh.Vertices), "triangles", mesh.TriangleCount())
	if meshOut != "" {
		if err := mesh.SavePLYFile(meshOut); err != nil {
			return err
		}
	}

	tex, err := loadTexture(texturePath, seed)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := texemit.NewRegistry()
	emitter := texemit.NewEmitter(cfg.Options(), cfg.Particle, registry)
	emitter.Transform = cfg.EmitterTransform()
	if _, err := emitter.Start(ctx, mesh, tex); err != nil {
		return err
	}

	if err := writePoints(outPath, emitter.Points()); err != nil {
		return err
	}

	if showPreview {
		return preview.Run(preview.NewGame(emitter, mesh, cfg.Preview.Width, cfg.Preview.Height, cfg.Preview.Distance))
	}
	return nil
}

func loadMesh(path string) (*texemit.Mesh, error) {
	switch path {
	case "quad":
		return texemit.NewQuad(1), nil
	case "sphere":
		return texemit.NewUVSphere(0.5, 24, 16), nil
	}
	return texemit.LoadMeshFromPLYFile(path)
}

func loadTexture(path string, seed int64) (*texemit.EmissionMap, error) {
	if path == "noise" {
		return texemit.NewNoiseEmissionMap(256, 256, 0.55, color.NRGBA{R: 255, G: 160, B: 40, A: 255}, seed), nil
	}
	return texemit.LoadEmissionMap(path)
}

func writePoints(path string, points []texemit.EmissionPoint) error {
	if path == "" {
		return nil
	}
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	return texemit.WriteCSV(w, points)
}
