package texemit

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

// EmissionPoint is one bright texel mapped onto the mesh surface.
type EmissionPoint struct {
	TexPosition mgl64.Vec2
	UV          mgl64.Vec2
	Position    mgl64.Vec3
	Normal      mgl64.Vec3
	Color       color.NRGBA
	// Triangle is -1 for points kept without a containing triangle.
	Triangle int
}

type ScanStats struct {
	Samples    int
	Black      int
	Unmapped   int
	Duplicates int
}

type ScanResult struct {
	Points []EmissionPoint
	Stats  ScanStats
}

// Sampler walks an emission map and maps its bright texels onto a mesh.
type Sampler struct {
	Mesh    *Mesh
	Texture TextureSampler
	// Mapper defaults to a linear scan of Mesh.
	Mapper UVMapper
	// Normals defaults to DotNormalLookup over Mesh.
	Normals NormalLookup
	// KeepUnmapped keeps bright texels outside every uv triangle, placed at the origin.
	KeepUnmapped bool
	// Workers is the number of columns scanned concurrently. Values below 2 scan serially.
	Workers int
	Logger  *slog.Logger
}

type sampleStatus int

const (
	sampleEmitted sampleStatus = iota
	sampleBlack
	sampleUnmapped
)

type sample struct {
	point  EmissionPoint
	status sampleStatus
}

// ScanUV samples a regular uv grid from 0 to 1 inclusive with the given step
// and converts every sample to pixel coordinates.
func (s *Sampler) ScanUV(ctx context.Context, step float64) (ScanResult, error) {
	if step <= 0 {
		return ScanResult{}, fmt.Errorf("%w: uv step %v", ErrInvalidStep, step)
	}
	if err := s.checkTexture(); err != nil {
		return ScanResult{}, err
	}
	steps := uvSteps(step)
	w, h := float64(s.Texture.Width()), float64(s.Texture.Height())
	mapper, normals := s.mapper(), s.normals()

	return s.scan(ctx, len(steps), len(steps), func(i, j int) sample {
		uv := mgl64.Vec2{steps[i], steps[j]}
		x, y := uv[0]*w, uv[1]*h
		return s.sampleAt(mapper, normals, uv, mgl64.Vec2{x, y}, int(x), int(y))
	})
}

// ScanPixels visits every stride-th texel in both directions and derives the
// uv from the pixel position.
func (s *Sampler) ScanPixels(ctx context.Context, stride int) (ScanResult, error) {
	if stride <= 0 {
		return ScanResult{}, fmt.Errorf("%w: pixel stride %d", ErrInvalidStep, stride)
	}
	if err := s.checkTexture(); err != nil {
		return ScanResult{}, err
	}
	w, h := s.Texture.Width(), s.Texture.Height()
	cols := (w + stride - 1) / stride
	rows := (h + stride - 1) / stride
	mapper, normals := s.mapper(), s.normals()

	return s.scan(ctx, cols, rows, func(i, j int) sample {
		x, y := i*stride, j*stride
		uv := mgl64.Vec2{float64(x) / float64(w), float64(y) / float64(h)}
		return s.sampleAt(mapper, normals, uv, mgl64.Vec2{float64(x), float64(y)}, x, y)
	})
}

func (s *Sampler) sampleAt(mapper UVMapper, normals NormalLookup, uv, tex mgl64.Vec2, px, py int) sample {
	c := s.Texture.Pixel(px, py)
	if IsBlack(c) {
		return sample{status: sampleBlack}
	}

	p := EmissionPoint{
		TexPosition: tex,
		UV:          uv,
		Color:       c,
		Triangle:    -1,
	}
	sp, ok := mapper.UVTo3D(uv)
	if ok {
		p.Position = sp.Position
		p.Triangle = sp.Triangle
	}
	p.Normal = normals.NormalAt(p.Position)

	if !ok {
		return sample{point: p, status: sampleUnmapped}
	}
	return sample{point: p, status: sampleEmitted}
}

// scan evaluates fn over a cols x rows grid, column-major, and merges the
// samples in that order whatever the number of workers.
func (s *Sampler) scan(ctx context.Context, cols, rows int, fn func(i, j int) sample) (ScanResult, error) {
	columns := make([][]sample, cols)
	scanColumn := func(i int) {
		column := make([]sample, rows)
		for j := range column {
			column[j] = fn(i, j)
		}
		columns[i] = column
	}

	if s.Workers < 2 {
		for i := 0; i < cols; i++ {
			if err := ctx.Err(); err != nil {
				return ScanResult{}, err
			}
			scanColumn(i)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.Workers)
		for i := 0; i < cols; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				scanColumn(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return ScanResult{}, err
		}
	}

	result := s.merge(columns)
	s.logger().Debug("emission scan finished",
		"samples", result.Stats.Samples,
		"points", len(result.Points),
		"black", result.Stats.Black,
		"unmapped", result.Stats.Unmapped,
		"duplicates", result.Stats.Duplicates,
	)
	return result, nil
}

func (s *Sampler) merge(columns [][]sample) ScanResult {
	var result ScanResult
	seen := make(map[EmissionPoint]struct{})
	for _, column := range columns {
		for _, smp := range column {
			result.Stats.Samples++
			switch smp.status {
			case sampleBlack:
				result.Stats.Black++
				continue
			case sampleUnmapped:
				result.Stats.Unmapped++
				if !s.KeepUnmapped {
					continue
				}
			}
			if _, dup := seen[smp.point]; dup {
				result.Stats.Duplicates++
				continue
			}
			seen[smp.point] = struct{}{}
			result.Points = append(result.Points, smp.point)
		}
	}
	return result
}

func (s *Sampler) checkTexture() error {
	if s.Texture == nil {
		return ErrNoEmissionMap
	}
	if s.Texture.Width() <= 0 || s.Texture.Height() <= 0 {
		return fmt.Errorf("%w: %dx%d texture", ErrNoEmissionMap, s.Texture.Width(), s.Texture.Height())
	}
	return nil
}

func (s *Sampler) mapper() UVMapper {
	if s.Mapper != nil {
		return s.Mapper
	}
	return s.Mesh
}

func (s *Sampler) normals() NormalLookup {
	if s.Normals != nil {
		return s.Normals
	}
	return NewDotNormalLookup(s.Mesh)
}

func (s *Sampler) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// uvSteps returns 0, step, 2*step, ... up to and including 1.
func uvSteps(step float64) []float64 {
	var steps []float64
	for i := 0; ; i++ {
		u := float64(i) * step
		if u > 1 {
			break
		}
		steps = append(steps, u)
	}
	return steps
}
