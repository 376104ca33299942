package kmeans

import (
	"context"
	"math"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/colorquant/distance"
)

// Refiner iteratively refines a set of k centroids over a fixed-dimension
// point set. It is not safe for concurrent use; create one Refiner per run
// or guard it externally.
type Refiner struct {
	k           int
	dim         int
	metric      distance.Metric
	distFn      distance.Func
	rng         *rand.Rand
	parallelism int
}

// Option configures a Refiner.
type Option func(*Refiner)

// WithSeed seeds the random source used for centroid initialization.
// Runs with the same seed, points and iteration count are fully
// deterministic.
func WithSeed(seed int64) Option {
	return func(r *Refiner) {
		r.rng = rand.New(rand.NewSource(seed)) // nolint gosec
	}
}

// WithRand sets an explicit random source, taking precedence over WithSeed.
func WithRand(rng *rand.Rand) Option {
	return func(r *Refiner) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithMetric sets the distance metric used in the Assign step.
// Defaults to MetricSquaredL2.
func WithMetric(m distance.Metric) Option {
	return func(r *Refiner) {
		r.metric = m
	}
}

// WithParallelism bounds the number of goroutines used by Assign.
// Values below 2 keep the assignment step single-threaded (the default).
// Assignments are computed per point, so parallel output is identical to
// serial output.
func WithParallelism(n int) Option {
	return func(r *Refiner) {
		r.parallelism = n
	}
}

// New creates a Refiner for k clusters of dim-dimensional points.
func New(k, dim int, opts ...Option) (*Refiner, error) {
	if k <= 0 {
		return nil, &ErrInvalidClusterCount{K: k, N: -1}
	}
	if dim <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dim, Len: -1}
	}

	r := &Refiner{
		k:      k,
		dim:    dim,
		metric: distance.MetricSquaredL2,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint gosec
	}

	distFn, err := distance.Provider(r.metric)
	if err != nil {
		return nil, err
	}
	r.distFn = distFn

	return r, nil
}

// K returns the configured cluster count.
func (r *Refiner) K() int { return r.k }

// Dim returns the configured point dimension.
func (r *Refiner) Dim() int { return r.dim }

// numPoints validates the flat point layout and returns the point count.
func (r *Refiner) numPoints(points []float32) (int, error) {
	if len(points)%r.dim != 0 {
		return 0, &ErrInvalidDimension{Dimension: r.dim, Len: len(points)}
	}
	return len(points) / r.dim, nil
}

// Initialize samples k distinct points uniformly at random without
// replacement as the initial centroid set. The input is not mutated.
func (r *Refiner) Initialize(points []float32) ([]float32, error) {
	n, err := r.numPoints(points)
	if err != nil {
		return nil, err
	}
	if r.k > n {
		return nil, &ErrInvalidClusterCount{K: r.k, N: n}
	}

	centroids := make([]float32, r.k*r.dim)
	perm := r.rng.Perm(n)
	for i := 0; i < r.k; i++ {
		copy(centroids[i*r.dim:(i+1)*r.dim], points[perm[i]*r.dim:(perm[i]+1)*r.dim])
	}

	return centroids, nil
}

// Assign computes, for each point, the index of the nearest centroid.
// Ties break to the lowest centroid index. The returned slice has one entry
// per point, each in [0, len(centroids)/dim).
func (r *Refiner) Assign(ctx context.Context, points, centroids []float32) ([]int, error) {
	n, err := r.numPoints(points)
	if err != nil {
		return nil, err
	}
	if len(centroids) == 0 || len(centroids)%r.dim != 0 {
		return nil, &ErrInvalidDimension{Dimension: r.dim, Len: len(centroids)}
	}

	k := len(centroids) / r.dim
	assignments := make([]int, n)

	if r.parallelism > 1 && n > 1 {
		if err := r.assignParallel(ctx, points, centroids, assignments, n, k); err != nil {
			return nil, err
		}
		return assignments, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.assignRange(points, centroids, assignments, 0, n, k)

	return assignments, nil
}

// assignRange fills assignments[start:end] serially.
func (r *Refiner) assignRange(points, centroids []float32, assignments []int, start, end, k int) {
	for i := start; i < end; i++ {
		vec := points[i*r.dim : (i+1)*r.dim]
		best := 0
		minDist := float32(math.MaxFloat32)

		for j := 0; j < k; j++ {
			center := centroids[j*r.dim : (j+1)*r.dim]
			// Strict less-than keeps the first (lowest-index) minimum on ties.
			if d := r.distFn(vec, center); d < minDist {
				minDist = d
				best = j
			}
		}

		assignments[i] = best
	}
}

// assignParallel splits the point range into contiguous chunks, one per
// worker. Each worker writes a disjoint region of assignments.
func (r *Refiner) assignParallel(ctx context.Context, points, centroids []float32, assignments []int, n, k int) error {
	workers := r.parallelism
	if workers > n {
		workers = n
	}

	chunk := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.assignRange(points, centroids, assignments, start, end, k)
			return nil
		})
	}

	return g.Wait()
}

// Recompute replaces each centroid with the arithmetic mean of the points
// assigned to it, using a single counting pass over the points. A cluster
// with no assigned points keeps its previous centroid, so the result is
// always finite.
func (r *Refiner) Recompute(points []float32, assignments []int, prev []float32) ([]float32, error) {
	n, err := r.numPoints(points)
	if err != nil {
		return nil, err
	}
	if len(assignments) != n {
		return nil, &ErrInvalidAssignment{Index: -1, Value: len(assignments), K: n}
	}

	sums := make([]float32, r.k*r.dim)
	counts := make([]int, r.k)

	for i, a := range assignments {
		if a < 0 || a >= r.k {
			return nil, &ErrInvalidAssignment{Index: i, Value: a, K: r.k}
		}
		counts[a]++
		vec := points[i*r.dim : (i+1)*r.dim]
		sum := sums[a*r.dim : (a+1)*r.dim]
		for d, v := range vec {
			sum[d] += v
		}
	}

	centroids := make([]float32, r.k*r.dim)
	for j := 0; j < r.k; j++ {
		dst := centroids[j*r.dim : (j+1)*r.dim]
		if counts[j] == 0 {
			// Empty cluster: retain the previous centroid.
			copy(dst, prev[j*r.dim:(j+1)*r.dim])
			continue
		}
		scale := 1 / float32(counts[j])
		src := sums[j*r.dim : (j+1)*r.dim]
		for d := range dst {
			dst[d] = src[d] * scale
		}
	}

	return centroids, nil
}

// Result holds the output of a refinement run.
type Result struct {
	// Centroids is the flat k*dim centroid set after the final Recompute.
	Centroids []float32

	// Assignments maps each point index to a centroid index in [0, k).
	// These are the assignments produced by the final Assign step, which
	// feed the final centroid update - they correspond to the centroids
	// going into that update, not to Centroids. Call Assign with Centroids
	// if you need assignments that match them exactly.
	Assignments []int
}

// Run performs exactly iterations rounds of Assign followed by Recompute,
// starting from a fresh random initialization. Every round runs; there is
// no early termination on stability.
func (r *Refiner) Run(ctx context.Context, points []float32, iterations int) (*Result, error) {
	if iterations < 1 {
		return nil, &ErrInvalidIterations{Iterations: iterations}
	}

	centroids, err := r.Initialize(points)
	if err != nil {
		return nil, err
	}

	var assignments []int
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		assignments, err = r.Assign(ctx, points, centroids)
		if err != nil {
			return nil, err
		}

		centroids, err = r.Recompute(points, assignments, centroids)
		if err != nil {
			return nil, err
		}
	}

	return &Result{Centroids: centroids, Assignments: assignments}, nil
}

// Distortion returns the sum of squared Euclidean distances from each point
// to its assigned centroid. Lower is a better fit.
func (r *Refiner) Distortion(points, centroids []float32, assignments []int) float64 {
	var total float64
	for i, a := range assignments {
		vec := points[i*r.dim : (i+1)*r.dim]
		center := centroids[a*r.dim : (a+1)*r.dim]
		total += float64(distance.SquaredL2(vec, center))
	}

	return total
}
