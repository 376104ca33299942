package colorquant

import (
	"context"
	"fmt"
	"image"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/colorquant/blobstore"
	"github.com/hupe1980/colorquant/codebook"
	"github.com/hupe1980/colorquant/kmeans"
	"github.com/hupe1980/colorquant/palette"
)

// Quantizer reduces images (or arbitrary point sets) to k representative
// colors via iterative centroid refinement. A Quantizer is immutable and
// safe for concurrent use; every run gets its own refiner state.
type Quantizer struct {
	k    int
	opts options
}

// New creates a Quantizer that reduces inputs to k colors.
func New(k int, optFns ...Option) (*Quantizer, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	return &Quantizer{
		k:    k,
		opts: applyOptions(optFns),
	}, nil
}

// K returns the configured color count.
func (q *Quantizer) K() int { return q.k }

// Result holds the outcome of a quantization run.
type Result struct {
	// Palette holds the k representative colors. Nil for point sets whose
	// dimensionality is not RGB.
	Palette *palette.Palette

	// Centroids is the flat row-major centroid matrix after the final
	// recompute step.
	Centroids []float32

	// Assignments maps each input point to its centroid from the last
	// assignment step. The final recompute may move centroids slightly
	// relative to these labels; re-assign against Centroids if exact
	// nearest labels are required.
	Assignments []int

	// Partition groups point indices by cluster.
	Partition *kmeans.Partition

	// Distortion is the summed squared distance between points and their
	// assigned centroids.
	Distortion float64

	// Dim is the point dimensionality of the run.
	Dim int

	// Seed is the RNG seed the run used. Feeding it back via WithSeed
	// reproduces the run exactly.
	Seed int64

	// Iterations is the number of refinement rounds that were run.
	Iterations int

	// Bounds is the source image geometry. Zero for point-set runs.
	Bounds image.Rectangle
}

// Render paints the assignment map with the palette colors, reproducing
// the quantized image.
func (r *Result) Render() (*image.RGBA, error) {
	if r.Palette == nil {
		return nil, fmt.Errorf("colorquant: result has no palette (dim %d)", r.Dim)
	}
	img, err := r.Palette.Render(r.Assignments, r.Bounds)
	return img, translateError(err)
}

// Codebook converts the result into a persistable codebook.
func (r *Result) Codebook(metric string) *codebook.Codebook {
	return &codebook.Codebook{
		K:          len(r.Centroids) / r.Dim,
		Dim:        r.Dim,
		Centroids:  r.Centroids,
		Iterations: r.Iterations,
		Seed:       r.Seed,
		Metric:     metric,
		TrainedAt:  time.Now().UTC(),
	}
}

// Quantize extracts the image's pixels and runs iterations rounds of
// refinement over them in RGB space.
func (q *Quantizer) Quantize(ctx context.Context, img image.Image, iterations int) (*Result, error) {
	points := palette.FromImage(img)

	if q.opts.controller != nil {
		bytes := int64(len(points)) * 4
		if err := q.opts.controller.AcquireMemory(ctx, bytes); err != nil {
			return nil, err
		}
		defer q.opts.controller.ReleaseMemory(bytes)
	}

	result, err := q.QuantizePixels(ctx, points, palette.Dim, iterations)
	if err != nil {
		return nil, err
	}

	result.Bounds = img.Bounds()
	return result, nil
}

// QuantizePixels runs iterations rounds of refinement over a flat
// row-major point set of the given dimensionality. For dim 3 the result
// carries a renderable palette; other dimensionalities yield centroids,
// assignments and partition only.
func (q *Quantizer) QuantizePixels(ctx context.Context, points []float32, dim, iterations int) (*Result, error) {
	start := time.Now()

	result, err := q.run(ctx, points, dim, iterations)

	duration := time.Since(start)
	q.opts.metrics.RecordQuantize(len(points)/max(dim, 1), duration, err)
	q.opts.logger.LogQuantize(ctx, len(points)/max(dim, 1), iterations, err)

	return result, err
}

func (q *Quantizer) run(ctx context.Context, points []float32, dim, iterations int) (*Result, error) {
	seed := q.opts.seed
	if !q.opts.seedSet {
		seed = time.Now().UnixNano()
	}

	refiner, err := kmeans.New(q.k, dim,
		kmeans.WithSeed(seed),
		kmeans.WithMetric(q.opts.metric),
		kmeans.WithParallelism(q.opts.parallelism),
	)
	if err != nil {
		return nil, translateError(err)
	}

	res, err := refiner.Run(ctx, points, iterations)
	if err != nil {
		return nil, translateError(err)
	}

	part, err := kmeans.NewPartition(res.Assignments, q.k)
	if err != nil {
		return nil, translateError(err)
	}

	result := &Result{
		Centroids:   res.Centroids,
		Assignments: res.Assignments,
		Partition:   part,
		Distortion:  refiner.Distortion(points, res.Centroids, res.Assignments),
		Dim:         dim,
		Seed:        seed,
		Iterations:  iterations,
	}

	if dim == palette.Dim {
		pal, err := palette.FromCentroids(res.Centroids)
		if err != nil {
			return nil, translateError(err)
		}
		result.Palette = pal
	}

	return result, nil
}

// BatchResult represents the result of a batch quantization. Results and
// Errors are index-aligned with the input images; exactly one of
// Results[i], Errors[i] is non-nil.
type BatchResult struct {
	Results []*Result
	Errors  []error
}

// Failed returns the number of images that failed.
func (b *BatchResult) Failed() int {
	var n int
	for _, err := range b.Errors {
		if err != nil {
			n++
		}
	}
	return n
}

// QuantizeBatch quantizes several images concurrently. Each image gets an
// independent run; a failure on one image does not abort the others.
// Concurrency is bounded by the resource controller's training slots when
// one is configured.
func (q *Quantizer) QuantizeBatch(ctx context.Context, imgs []image.Image, iterations int) *BatchResult {
	start := time.Now()

	batch := &BatchResult{
		Results: make([]*Result, len(imgs)),
		Errors:  make([]error, len(imgs)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, img := range imgs {
		i, img := i, img
		g.Go(func() error {
			if q.opts.controller != nil {
				if err := q.opts.controller.AcquireTraining(gctx); err != nil {
					batch.Errors[i] = err
					return nil
				}
				defer q.opts.controller.ReleaseTraining()
			}

			result, err := q.Quantize(gctx, img, iterations)
			batch.Results[i], batch.Errors[i] = result, err
			return nil
		})
	}
	_ = g.Wait()

	duration := time.Since(start)
	failed := batch.Failed()
	q.opts.metrics.RecordBatchQuantize(len(imgs), failed, duration)
	q.opts.logger.LogBatchQuantize(ctx, len(imgs), failed)

	return batch
}

// SaveCodebook persists a codebook to the store under name, using the
// Quantizer's codec and compression settings.
func (q *Quantizer) SaveCodebook(ctx context.Context, store blobstore.BlobStore, name string, cb *codebook.Codebook) error {
	start := time.Now()

	// Throttle uploads against the raw centroid payload size.
	if err := q.opts.controller.AcquireIO(ctx, 4*len(cb.Centroids)); err != nil {
		return err
	}

	err := codebook.Save(ctx, store, name, cb,
		codebook.WithCodec(q.opts.codec),
		codebook.WithCompression(q.opts.compression),
	)

	q.opts.metrics.RecordSave(time.Since(start), err)
	q.opts.logger.LogSave(ctx, name, err)
	return err
}

// LoadCodebook reads a codebook previously written with SaveCodebook.
func (q *Quantizer) LoadCodebook(ctx context.Context, store blobstore.BlobStore, name string) (*codebook.Codebook, error) {
	start := time.Now()

	cb, err := codebook.Load(ctx, store, name)

	q.opts.metrics.RecordLoad(time.Since(start), err)
	q.opts.logger.LogLoad(ctx, name, err)
	return cb, err
}
