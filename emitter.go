package texemit

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
)

type ScanMode string

const (
	// ScanModeUV walks a uv grid with Options.UVPrecision as the step.
	ScanModeUV ScanMode = "uv"
	// ScanModePixels walks texels with Options.Sample as the stride.
	ScanModePixels ScanMode = "pixels"
)

type NormalMode string

const (
	NormalModeDot     NormalMode = "dot"
	NormalModeNearest NormalMode = "nearest"
)

type Options struct {
	CreateParticles  bool
	Sample           int
	NormalsDirection int
	UVPrecision      float64
	Mode             ScanMode
	Normals          NormalMode
	KeepUnmapped     bool
	// IndexCells enables a uv grid of IndexCells x IndexCells for lookups.
	IndexCells int
	Workers    int
}

func DefaultOptions() Options {
	return Options{
		CreateParticles:  true,
		Sample:           10,
		NormalsDirection: 1,
		UVPrecision:      0.03,
		Mode:             ScanModeUV,
		Normals:          NormalModeDot,
		Workers:          1,
	}
}

// Emitter spawns a particle system on every bright texel of a mesh's
// emission map.
type Emitter struct {
	Options
	// Particle names the particle system prefab to instantiate.
	Particle     string
	Transform    Transform
	Instantiator Instantiator
	Logger       *slog.Logger

	points  []EmissionPoint
	handles []ParticleHandle
}

func NewEmitter(opts Options, particle string, inst Instantiator) *Emitter {
	return &Emitter{
		Options:      opts,
		Particle:     particle,
		Transform:    IdentityTransform(),
		Instantiator: inst,
	}
}

// Start scans the emission map of the provided mesh and, when enabled, spawns
// the particles.
func (e *Emitter) Start(ctx context.Context, provider MeshProvider, tex TextureSampler) (ScanResult, error) {
	if provider == nil || provider.Mesh() == nil {
		return ScanResult{}, fmt.Errorf("%w: emitter has no mesh", ErrInvalidMesh)
	}
	if tex == nil || tex.Width() <= 0 || tex.Height() <= 0 {
		e.logger().Error(ErrNoEmissionMap.Error())
		return ScanResult{}, ErrNoEmissionMap
	}

	result, err := e.Scan(ctx, provider.Mesh(), tex)
	if err != nil {
		return ScanResult{}, err
	}
	if err := e.Instantiate(result.Points); err != nil {
		return result, err
	}
	return result, nil
}

// Scan maps the emission map onto mesh and keeps the points for gizmo drawing.
func (e *Emitter) Scan(ctx context.Context, mesh *Mesh, tex TextureSampler) (ScanResult, error) {
	s := &Sampler{
		Mesh:         mesh,
		Texture:      tex,
		KeepUnmapped: e.KeepUnmapped,
		Workers:      e.Workers,
		Logger:       e.logger(),
	}
	if e.IndexCells > 0 {
		s.Mapper = NewUVIndex(mesh, e.IndexCells)
	}
	switch e.Normals {
	case NormalModeNearest:
		s.Normals = NewNearestNormalLookup(mesh)
	case NormalModeDot, "":
		s.Normals = NewDotNormalLookup(mesh)
	default:
		return ScanResult{}, fmt.Errorf("unknown normal mode %q", e.Normals)
	}

	var (
		result ScanResult
		err    error
	)
	switch e.Mode {
	case ScanModeUV, "":
		result, err = s.ScanUV(ctx, e.UVPrecision)
	case ScanModePixels:
		result, err = s.ScanPixels(ctx, e.Sample)
	default:
		return ScanResult{}, fmt.Errorf("unknown scan mode %q", e.Mode)
	}
	if err != nil {
		return ScanResult{}, fmt.Errorf("scanning emission map: %w", err)
	}

	e.points = result.Points
	e.logger().Info("emission map scanned",
		"mode", string(e.Mode),
		"points", len(result.Points),
		"unmapped", result.Stats.Unmapped,
	)
	return result, nil
}

// Instantiate spawns one particle system per point, parented to the emitter.
// Nothing is spawned when CreateParticles is false. Handles only cover the
// latest call.
func (e *Emitter) Instantiate(points []EmissionPoint) error {
	e.handles = nil
	if !e.CreateParticles {
		return nil
	}
	if e.Instantiator == nil {
		return fmt.Errorf("emitter has no instantiator")
	}

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for i, p := range points {
		dir := e.Transform.TransformDirection(p.Normal.Mul(float64(e.NormalsDirection)))
		spec := ParticleSpec{
			Prefab:     e.Particle,
			Position:   e.Transform.TransformPoint(p.Position),
			Rotation:   LookRotation(dir, upNormal),
			Parent:     &e.Transform,
			StartColor: MinMaxGradient{Min: white, Max: p.Color},
		}
		h, err := e.Instantiator.Instantiate(spec)
		if err != nil {
			return fmt.Errorf("instantiating particle %d of %d: %w", i, len(points), err)
		}
		e.handles = append(e.handles, h)
	}
	e.logger().Info("particles instantiated", "count", len(points), "prefab", e.Particle)
	return nil
}

func (e *Emitter) Points() []EmissionPoint {
	return e.points
}

func (e *Emitter) Handles() []ParticleHandle {
	return e.handles
}

func (e *Emitter) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
