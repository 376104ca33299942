package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Dim is the dimensionality of a color point (R, G, B).
const Dim = 3

var (
	// ErrInvalidCentroids is returned when a centroid slice is empty or not
	// a multiple of Dim.
	ErrInvalidCentroids = errors.New("centroid slice length must be a positive multiple of 3")

	// ErrTooManyColors is returned when a paletted rendering is requested
	// for more than 256 colors.
	ErrTooManyColors = errors.New("paletted images support at most 256 colors")
)

// ErrAssignmentMismatch indicates an assignment slice whose length does not
// match the target bounds, or an assignment value outside the palette.
type ErrAssignmentMismatch struct {
	Len      int
	Expected int
}

func (e *ErrAssignmentMismatch) Error() string {
	return fmt.Sprintf("assignment length %d does not match %d pixels", e.Len, e.Expected)
}

// FromImage flattens an image into RGB points scaled to [0,1], one point
// per pixel in row-major order. The alpha channel is dropped.
func FromImage(img image.Image) []float32 {
	bounds := img.Bounds()
	points := make([]float32, 0, bounds.Dx()*bounds.Dy()*Dim)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			points = append(points,
				float32(r>>8)/255,
				float32(g>>8)/255,
				float32(b>>8)/255,
			)
		}
	}

	return points
}

// Palette is a fixed set of quantized colors derived from trained
// centroids.
type Palette struct {
	centroids []float32
	colors    []color.RGBA
}

// FromCentroids builds a Palette from a flat centroid slice (k*3 values in
// [0,1]). Values outside [0,1] are clamped. Color conversion scales by 255
// and truncates, matching the usual float-image reconstruction.
func FromCentroids(centroids []float32) (*Palette, error) {
	if len(centroids) == 0 || len(centroids)%Dim != 0 {
		return nil, ErrInvalidCentroids
	}

	k := len(centroids) / Dim
	colors := make([]color.RGBA, k)
	for i := 0; i < k; i++ {
		colors[i] = color.RGBA{
			R: channelByte(centroids[i*Dim]),
			G: channelByte(centroids[i*Dim+1]),
			B: channelByte(centroids[i*Dim+2]),
			A: 0xff,
		}
	}

	cloned := make([]float32, len(centroids))
	copy(cloned, centroids)

	return &Palette{centroids: cloned, colors: colors}, nil
}

func channelByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int { return len(p.colors) }

// Color returns the i-th quantized color.
func (p *Palette) Color(i int) color.RGBA { return p.colors[i] }

// Centroid returns the i-th centroid as a [0,1] RGB triple. The returned
// slice aliases internal storage; callers must not modify it.
func (p *Palette) Centroid(i int) []float32 {
	return p.centroids[i*Dim : (i+1)*Dim]
}

// Centroids returns the flat centroid slice backing the palette.
func (p *Palette) Centroids() []float32 { return p.centroids }

// ColorPalette returns the palette as a color.Palette for use with the
// standard image packages.
func (p *Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p.colors))
	for i, c := range p.colors {
		cp[i] = c
	}
	return cp
}

// Render draws the assignment map into an RGBA image of the given bounds,
// coloring each pixel with its assigned palette color. Assignments must be
// in row-major pixel order, one per pixel.
func (p *Palette) Render(assignments []int, bounds image.Rectangle) (*image.RGBA, error) {
	if len(assignments) != bounds.Dx()*bounds.Dy() {
		return nil, &ErrAssignmentMismatch{Len: len(assignments), Expected: bounds.Dx() * bounds.Dy()}
	}

	img := image.NewRGBA(bounds)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := assignments[i]
			if a < 0 || a >= len(p.colors) {
				return nil, fmt.Errorf("assignment %d at pixel %d is outside palette of %d colors", a, i, len(p.colors))
			}
			img.SetRGBA(x, y, p.colors[a])
			i++
		}
	}

	return img, nil
}

// RenderPaletted draws the assignment map into a paletted image, which
// palette-native encoders (GIF, PNG8) can store compactly. The palette must
// hold at most 256 colors.
func (p *Palette) RenderPaletted(assignments []int, bounds image.Rectangle) (*image.Paletted, error) {
	if len(p.colors) > 256 {
		return nil, ErrTooManyColors
	}
	if len(assignments) != bounds.Dx()*bounds.Dy() {
		return nil, &ErrAssignmentMismatch{Len: len(assignments), Expected: bounds.Dx() * bounds.Dy()}
	}

	img := image.NewPaletted(bounds, p.ColorPalette())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := assignments[i]
			if a < 0 || a >= len(p.colors) {
				return nil, fmt.Errorf("assignment %d at pixel %d is outside palette of %d colors", a, i, len(p.colors))
			}
			img.SetColorIndex(x, y, uint8(a))
			i++
		}
	}

	return img, nil
}
