package testutil

import (
	"image"
	"image/color"
	"math/rand"
	"sync"
)

// RNG encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float32 in a loop).
func (r *RNG) FillUniform(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float32()
	}
}

// UniformPoints generates num points of the given dimensionality with
// values in [0, 1), in flat row-major layout.
func (r *RNG) UniformPoints(num, dim int) []float32 {
	data := make([]float32, num*dim)
	r.FillUniform(data)
	return data
}

// ClusteredPoints generates perCluster points around each of the given
// centers, jittered by at most spread per channel. The result is a flat
// row-major array of len(centers)*perCluster points, grouped by center.
func (r *RNG) ClusteredPoints(centers [][]float32, perCluster int, spread float32) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(centers) == 0 {
		return nil
	}
	dim := len(centers[0])
	data := make([]float32, 0, len(centers)*perCluster*dim)

	for _, c := range centers {
		for i := 0; i < perCluster; i++ {
			for j := 0; j < dim; j++ {
				data = append(data, c[j]+(r.rand.Float32()*2-1)*spread)
			}
		}
	}

	return data
}

// NoiseImage generates a width x height RGBA image with random colors.
func (r *RNG) NoiseImage(width, height int) *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(r.rand.Intn(256)),
				G: uint8(r.rand.Intn(256)),
				B: uint8(r.rand.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

// BlockImage generates a width x height RGBA image split into vertical
// stripes of the given colors. Every stripe is a solid color, which makes
// the expected palette of a quantization run obvious.
func BlockImage(width, height int, colors []color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if len(colors) == 0 {
		return img
	}

	stripe := width / len(colors)
	if stripe == 0 {
		stripe = 1
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := x / stripe
			if idx >= len(colors) {
				idx = len(colors) - 1
			}
			img.Set(x, y, colors[idx])
		}
	}
	return img
}
