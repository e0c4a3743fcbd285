package simulation

import (
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/geometry"
)

// Perlin generator parameters: smoothness, scale and octaves.
const (
	noiseAlpha = 2.0
	noiseBeta  = 2.0
	noiseN     = 3
)

// NoiseHost is a headless Host whose pointer wanders over the arena along a
// Perlin noise path, standing in for a mouse. Call Advance once per frame.
type NoiseHost struct {
	w, h      float64
	frequency float64
	frame     float64

	noise *perlin.Perlin
	rng   *rand.Rand
}

var _ Host = (*NoiseHost)(nil)

// NewNoiseHost creates a NoiseHost. frequency is how far along the noise
// the pointer moves per frame; one seed drives both the path and Float64.
func NewNoiseHost(width, height, frequency float64, seed int64) *NoiseHost {
	return &NoiseHost{
		w:         width,
		h:         height,
		frequency: frequency,
		noise:     perlin.NewPerlin(noiseAlpha, noiseBeta, noiseN, seed),
		rng:       rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)),
	}
}

// Advance moves the pointer one frame along its path.
func (n *NoiseHost) Advance() {
	n.frame++
}

func (n *NoiseHost) Width() float64   { return n.w }
func (n *NoiseHost) Height() float64  { return n.h }
func (n *NoiseHost) Float64() float64 { return n.rng.Float64() }

// Pointer maps two decorrelated noise samples, roughly in [-1, 1],
// onto the arena and clamps the result inside it.
func (n *NoiseHost) Pointer() geometry.Vector3D {
	t := n.frame * n.frequency
	nx := n.noise.Noise2D(t, 0)
	ny := n.noise.Noise2D(0, t+100)

	return geometry.Vector3D{
		X: clamp(n.w/2+nx*n.w/2, 0, n.w),
		Y: clamp(n.h/2+ny*n.h/2, 0, n.h),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
