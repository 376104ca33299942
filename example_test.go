package colorquant_test

import (
	"context"
	"fmt"
	"image/color"
	"log"

	"github.com/hupe1980/colorquant"
	"github.com/hupe1980/colorquant/blobstore"
	"github.com/hupe1980/colorquant/testutil"
)

// Example demonstrates quantizing an image down to two colors.
func Example() {
	ctx := context.Background()

	img := testutil.BlockImage(16, 16, []color.RGBA{
		{R: 255, A: 255},
		{B: 255, A: 255},
	})

	q, err := colorquant.New(2, colorquant.WithSeed(42))
	if err != nil {
		log.Fatal(err)
	}

	result, err := q.Quantize(ctx, img, 10)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("palette size: %d\n", result.Palette.Len())
	fmt.Printf("distortion: %.1f\n", result.Distortion)
	// Output:
	// palette size: 2
	// distortion: 0.0
}

// Example_pointSets shows quantization of arbitrary point sets beyond RGB.
func Example_pointSets() {
	ctx := context.Background()

	points := testutil.NewRNG(7).UniformPoints(500, 8)

	q, err := colorquant.New(4, colorquant.WithSeed(7), colorquant.WithParallelism(4))
	if err != nil {
		log.Fatal(err)
	}

	result, err := q.QuantizePixels(ctx, points, 8, 5)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("centroids: %d x %d\n", len(result.Centroids)/result.Dim, result.Dim)
	// Output: centroids: 4 x 8
}

// Example_persistence demonstrates saving and reloading a trained codebook.
func Example_persistence() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	img := testutil.BlockImage(8, 8, []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
	})

	q, err := colorquant.New(2, colorquant.WithSeed(1))
	if err != nil {
		log.Fatal(err)
	}

	result, err := q.Quantize(ctx, img, 10)
	if err != nil {
		log.Fatal(err)
	}

	if err := q.SaveCodebook(ctx, store, "stripes.cqb", result.Codebook("squared-l2")); err != nil {
		log.Fatal(err)
	}

	loaded, err := q.LoadCodebook(ctx, store, "stripes.cqb")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("k=%d dim=%d metric=%s\n", loaded.K, loaded.Dim, loaded.Metric)
	// Output: k=2 dim=3 metric=squared-l2
}
