package texemit

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// MinMaxGradient is a particle start colour picked between Min and Max.
type MinMaxGradient struct {
	Min color.NRGBA
	Max color.NRGBA
}

// Evaluate returns the colour at t in [0,1].
func (g MinMaxGradient) Evaluate(t float64) color.NRGBA {
	t = clamp01(t)
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return color.NRGBA{
		R: lerp(g.Min.R, g.Max.R),
		G: lerp(g.Min.G, g.Max.G),
		B: lerp(g.Min.B, g.Max.B),
		A: lerp(g.Min.A, g.Max.A),
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// ParticleSpec describes one particle system instance to spawn.
type ParticleSpec struct {
	// Prefab names the particle system to copy.
	Prefab string
	// Position and Rotation are in world space.
	Position   mgl64.Vec3
	Rotation   mgl64.Quat
	Parent     *Transform
	StartColor MinMaxGradient
}

type ParticleHandle int

// Instantiator spawns particle system instances in the host scene.
type Instantiator interface {
	Instantiate(spec ParticleSpec) (ParticleHandle, error)
}

// Registry is an in-memory Instantiator that records every spawned instance.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	instances []ParticleSpec
	// Limit caps the number of instances; zero means unlimited.
	Limit int
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Instantiate(spec ParticleSpec) (ParticleHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Limit > 0 && len(r.instances) >= r.Limit {
		return -1, fmt.Errorf("particle registry full (%d instances)", r.Limit)
	}
	r.instances = append(r.instances, spec)
	return ParticleHandle(len(r.instances) - 1), nil
}

func (r *Registry) Get(h ParticleHandle) (ParticleSpec, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h < 0 || int(h) >= len(r.instances) {
		return ParticleSpec{}, false
	}
	return r.instances[h], true
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// Instances returns a copy of the spawned instances in spawn order.
func (r *Registry) Instances() []ParticleSpec {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]ParticleSpec, len(r.instances))
	copy(out, r.instances)
	return out
}
