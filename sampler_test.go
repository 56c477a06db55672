package texemit

import (
	"context"
	"errors"
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// halfBlackTexture is black for x < w/2 and white elsewhere.
type halfBlackTexture struct{ w, h int }

func (t halfBlackTexture) Width() int  { return t.w }
func (t halfBlackTexture) Height() int { return t.h }
func (t halfBlackTexture) Pixel(x, y int) color.NRGBA {
	if x < t.w/2 {
		return opaqueBlack
	}
	return white
}

func TestScanUVQuad(t *testing.T) {
	s := &Sampler{Mesh: NewQuad(1), Texture: solidTexture(2, 2, white)}
	result, err := s.ScanUV(context.Background(), 0.5)
	if err != nil {
		t.Fatalf("ScanUV() error: %v", err)
	}
	if result.Stats.Samples != 9 || len(result.Points) != 9 {
		t.Fatalf("got %d samples and %d points, want 9 and 9", result.Stats.Samples, len(result.Points))
	}

	// column major: u is the outer loop
	testCases := []struct {
		index    int
		uv       mgl64.Vec2
		tex      mgl64.Vec2
		position mgl64.Vec3
	}{
		{0, mgl64.Vec2{0, 0}, mgl64.Vec2{0, 0}, mgl64.Vec3{-0.5, -0.5, 0}},
		{1, mgl64.Vec2{0, 0.5}, mgl64.Vec2{0, 1}, mgl64.Vec3{-0.5, 0, 0}},
		{4, mgl64.Vec2{0.5, 0.5}, mgl64.Vec2{1, 1}, mgl64.Vec3{0, 0, 0}},
		{8, mgl64.Vec2{1, 1}, mgl64.Vec2{2, 2}, mgl64.Vec3{0.5, 0.5, 0}},
	}
	for _, tc := range testCases {
		p := result.Points[tc.index]
		if p.UV != tc.uv || p.TexPosition != tc.tex || !vecAlmostEqual(p.Position, tc.position) {
			t.Errorf("point %d = uv %v tex %v pos %v, want uv %v tex %v pos %v",
				tc.index, p.UV, p.TexPosition, p.Position, tc.uv, tc.tex, tc.position)
		}
		if p.Normal != (mgl64.Vec3{0, 0, 1}) || p.Color != white {
			t.Errorf("point %d normal %v colour %v", tc.index, p.Normal, p.Color)
		}
	}
}

func TestScanUVSkipsBlack(t *testing.T) {
	s := &Sampler{Mesh: NewQuad(1), Texture: halfBlackTexture{w: 2, h: 2}}
	result, err := s.ScanUV(context.Background(), 0.5)
	if err != nil {
		t.Fatalf("ScanUV() error: %v", err)
	}
	// u = 0 reads column 0 (black), u = 0.5 and u = 1 read column 1
	if result.Stats.Black != 3 || len(result.Points) != 6 {
		t.Errorf("got %d black and %d points, want 3 and 6", result.Stats.Black, len(result.Points))
	}
	for _, p := range result.Points {
		if p.UV[0] == 0 {
			t.Errorf("black texel at %v was emitted", p.UV)
		}
	}
}

func TestScanUVUnmapped(t *testing.T) {
	testCases := []struct {
		name       string
		keep       bool
		wantPoints int
	}{
		{"dropped", false, 6},
		{"kept at origin", true, 9},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Sampler{Mesh: unitTriangle(), Texture: solidTexture(4, 4, white), KeepUnmapped: tc.keep}
			result, err := s.ScanUV(context.Background(), 0.5)
			if err != nil {
				t.Fatalf("ScanUV() error: %v", err)
			}
			if result.Stats.Unmapped != 3 {
				t.Errorf("Unmapped = %d, want 3", result.Stats.Unmapped)
			}
			if len(result.Points) != tc.wantPoints {
				t.Fatalf("got %d points, want %d", len(result.Points), tc.wantPoints)
			}
			for _, p := range result.Points {
				inside := p.UV[0]+p.UV[1] <= 1
				if inside && p.Triangle != 0 {
					t.Errorf("uv %v should map to triangle 0, got %d", p.UV, p.Triangle)
				}
				if !inside && (p.Triangle != -1 || p.Position != (mgl64.Vec3{})) {
					t.Errorf("uv %v should be unmapped at origin, got %d at %v", p.UV, p.Triangle, p.Position)
				}
			}
		})
	}
}

func TestScanPixels(t *testing.T) {
	s := &Sampler{Mesh: NewQuad(1), Texture: solidTexture(4, 4, white)}
	result, err := s.ScanPixels(context.Background(), 2)
	if err != nil {
		t.Fatalf("ScanPixels() error: %v", err)
	}
	if len(result.Points) != 4 {
		t.Fatalf("got %d points, want 4", len(result.Points))
	}
	want := []mgl64.Vec2{{0, 0}, {0, 0.5}, {0.5, 0}, {0.5, 0.5}}
	for i, p := range result.Points {
		if p.UV != want[i] {
			t.Errorf("point %d uv = %v, want %v", i, p.UV, want[i])
		}
		if p.TexPosition != want[i].Mul(4) {
			t.Errorf("point %d tex = %v, want %v", i, p.TexPosition, want[i].Mul(4))
		}
	}
}

func TestScanParallelMatchesSerial(t *testing.T) {
	mesh := NewUVSphere(1, 16, 12)
	tex := NewNoiseEmissionMap(64, 64, 0.5, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, 3)

	serial := &Sampler{Mesh: mesh, Texture: tex}
	parallel := &Sampler{Mesh: mesh, Texture: tex, Workers: 4, Mapper: NewUVIndex(mesh, 8)}

	want, err := serial.ScanUV(context.Background(), 0.02)
	if err != nil {
		t.Fatalf("serial ScanUV() error: %v", err)
	}
	got, err := parallel.ScanUV(context.Background(), 0.02)
	if err != nil {
		t.Fatalf("parallel ScanUV() error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parallel scan differs: %d points vs %d", len(got.Points), len(want.Points))
	}
}

func TestScanErrors(t *testing.T) {
	s := &Sampler{Mesh: NewQuad(1), Texture: solidTexture(2, 2, white)}

	if _, err := s.ScanUV(context.Background(), 0); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("ScanUV(0) = %v, want ErrInvalidStep", err)
	}
	if _, err := s.ScanPixels(context.Background(), -1); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("ScanPixels(-1) = %v, want ErrInvalidStep", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.ScanUV(ctx, 0.1); !errors.Is(err, context.Canceled) {
		t.Errorf("ScanUV() with cancelled context = %v", err)
	}
	s.Workers = 3
	if _, err := s.ScanUV(ctx, 0.1); !errors.Is(err, context.Canceled) {
		t.Errorf("parallel ScanUV() with cancelled context = %v", err)
	}

	empty := &Sampler{Mesh: NewQuad(1), Texture: NewEmissionMap(image.NewNRGBA(image.Rect(0, 0, 0, 0)))}
	if _, err := empty.ScanUV(context.Background(), 0.1); !errors.Is(err, ErrNoEmissionMap) {
		t.Errorf("ScanUV() on empty texture = %v", err)
	}
}

func TestMergeSkipsDuplicates(t *testing.T) {
	p := EmissionPoint{UV: mgl64.Vec2{0.1, 0.2}, Color: white}
	s := &Sampler{}
	result := s.merge([][]sample{
		{{point: p, status: sampleEmitted}, {status: sampleBlack}},
		{{point: p, status: sampleEmitted}},
	})
	if len(result.Points) != 1 || result.Stats.Duplicates != 1 || result.Stats.Samples != 3 {
		t.Errorf("merge() = %d points, stats %+v", len(result.Points), result.Stats)
	}
}

func TestUVSteps(t *testing.T) {
	testCases := []struct {
		step float64
		want int
	}{
		{0.5, 3},
		{0.25, 5},
		{0.3, 4},
		{2, 1},
	}
	for _, tc := range testCases {
		steps := uvSteps(tc.step)
		if len(steps) != tc.want {
			t.Errorf("uvSteps(%v) has %d steps, want %d", tc.step, len(steps), tc.want)
		}
		if steps[len(steps)-1] > 1 {
			t.Errorf("uvSteps(%v) went past 1: %v", tc.step, steps)
		}
	}
}
