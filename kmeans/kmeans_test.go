package kmeans

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colorquant/distance"
)

// Two well-separated 2D clusters: {(0,0),(0,1)} and {(10,10),(10,11)}.
var twoClusters = []float32{
	0, 0,
	0, 1,
	10, 10,
	10, 11,
}

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		r, err := New(2, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, r.K())
		assert.Equal(t, 3, r.Dim())
	})

	t.Run("ZeroK", func(t *testing.T) {
		_, err := New(0, 3)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		var icc *ErrInvalidClusterCount
		assert.ErrorAs(t, err, &icc)
	})

	t.Run("NegativeK", func(t *testing.T) {
		_, err := New(-1, 3)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("ZeroDim", func(t *testing.T) {
		_, err := New(2, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("BadMetric", func(t *testing.T) {
		_, err := New(2, 3, WithMetric(distance.Metric(999)))
		assert.Error(t, err)
	})
}

func TestInitialize(t *testing.T) {
	t.Run("SamplesDistinctPoints", func(t *testing.T) {
		r, err := New(4, 2, WithSeed(1))
		require.NoError(t, err)

		centroids, err := r.Initialize(twoClusters)
		require.NoError(t, err)
		require.Len(t, centroids, 4*2)

		// Without replacement: the four sampled centroids must be the four
		// input points, in some order.
		seen := map[[2]float32]int{}
		for i := 0; i < 4; i++ {
			seen[[2]float32{centroids[i*2], centroids[i*2+1]}]++
		}
		assert.Len(t, seen, 4)
	})

	t.Run("KGreaterThanN", func(t *testing.T) {
		r, err := New(5, 2, WithSeed(1))
		require.NoError(t, err)

		_, err = r.Initialize(twoClusters)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		var icc *ErrInvalidClusterCount
		require.ErrorAs(t, err, &icc)
		assert.Equal(t, 5, icc.K)
		assert.Equal(t, 4, icc.N)
	})

	t.Run("RaggedPoints", func(t *testing.T) {
		r, err := New(2, 2, WithSeed(1))
		require.NoError(t, err)

		_, err = r.Initialize([]float32{0, 0, 1})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestAssign(t *testing.T) {
	ctx := context.Background()

	r, err := New(2, 2, WithSeed(1))
	require.NoError(t, err)

	t.Run("Nearest", func(t *testing.T) {
		centroids := []float32{0, 0, 10, 10}
		assignments, err := r.Assign(ctx, twoClusters, centroids)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 1, 1}, assignments)
	})

	t.Run("TieBreaksToLowestIndex", func(t *testing.T) {
		// Both centroids are equidistant from every point.
		centroids := []float32{5, 5, 5, 5}
		assignments, err := r.Assign(ctx, twoClusters, centroids)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0, 0}, assignments)
	})

	t.Run("DuplicateCentroidsPartialTie", func(t *testing.T) {
		centroids := []float32{10, 10, 10, 10}
		assignments, err := r.Assign(ctx, twoClusters, centroids)
		require.NoError(t, err)
		// First minimum encountered wins.
		assert.Equal(t, []int{0, 0, 0, 0}, assignments)
	})

	t.Run("EmptyCentroids", func(t *testing.T) {
		_, err := r.Assign(ctx, twoClusters, nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("Canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.Assign(canceled, twoClusters, []float32{0, 0, 10, 10})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAssignParallelMatchesSerial(t *testing.T) {
	ctx := context.Background()

	serial, err := New(8, 3, WithSeed(42))
	require.NoError(t, err)

	parallel, err := New(8, 3, WithSeed(42), WithParallelism(4))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	points := make([]float32, 1000*3)
	for i := range points {
		points[i] = rng.Float32()
	}

	centroids, err := New(8, 3, WithSeed(7))
	require.NoError(t, err)
	init, err := centroids.Initialize(points)
	require.NoError(t, err)

	want, err := serial.Assign(ctx, points, init)
	require.NoError(t, err)

	got, err := parallel.Assign(ctx, points, init)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestRecompute(t *testing.T) {
	r, err := New(2, 2, WithSeed(1))
	require.NoError(t, err)

	t.Run("Means", func(t *testing.T) {
		prev := []float32{0, 0, 10, 10}
		centroids, err := r.Recompute(twoClusters, []int{0, 0, 1, 1}, prev)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float32{0, 0.5, 10, 10.5}, centroids, 1e-5)
	})

	t.Run("EmptyClusterKeepsPreviousCentroid", func(t *testing.T) {
		prev := []float32{7, 8, 10, 10}
		centroids, err := r.Recompute(twoClusters, []int{1, 1, 1, 1}, prev)
		require.NoError(t, err)

		// Cluster 0 received no points and must keep its previous position.
		assert.Equal(t, []float32{7, 8}, centroids[:2])
		assert.InDeltaSlice(t, []float32{5, 5.5}, centroids[2:], 1e-5)
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := r.Recompute(twoClusters, []int{0, 1}, []float32{0, 0, 10, 10})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("AssignmentOutOfRange", func(t *testing.T) {
		_, err := r.Recompute(twoClusters, []int{0, 0, 1, 2}, []float32{0, 0, 10, 10})
		require.Error(t, err)

		var ia *ErrInvalidAssignment
		require.ErrorAs(t, err, &ia)
		assert.Equal(t, 3, ia.Index)
		assert.Equal(t, 2, ia.Value)
	})
}

func TestRunShapes(t *testing.T) {
	ctx := context.Background()

	for _, k := range []int{1, 2, 3, 4} {
		r, err := New(k, 2, WithSeed(99))
		require.NoError(t, err)

		res, err := r.Run(ctx, twoClusters, 3)
		require.NoError(t, err)

		assert.Len(t, res.Centroids, k*2)
		assert.Len(t, res.Assignments, 4)
		for _, a := range res.Assignments {
			assert.GreaterOrEqual(t, a, 0)
			assert.Less(t, a, k)
		}
	}
}

func TestRunTwoClusters(t *testing.T) {
	ctx := context.Background()

	r, err := New(2, 2, WithSeed(3))
	require.NoError(t, err)

	res, err := r.Run(ctx, twoClusters, 5)
	require.NoError(t, err)

	// The first two points end up together, as do the last two.
	assert.Equal(t, res.Assignments[0], res.Assignments[1])
	assert.Equal(t, res.Assignments[2], res.Assignments[3])
	assert.NotEqual(t, res.Assignments[0], res.Assignments[2])

	// Centroids are the per-cluster means, in whichever label order
	// initialization produced.
	lo := res.Assignments[0]
	hi := res.Assignments[2]
	assert.InDeltaSlice(t, []float32{0, 0.5}, res.Centroids[lo*2:lo*2+2], 1e-4)
	assert.InDeltaSlice(t, []float32{10, 10.5}, res.Centroids[hi*2:hi*2+2], 1e-4)
}

func TestRunDeterministicWithSeed(t *testing.T) {
	ctx := context.Background()

	run := func() *Result {
		r, err := New(3, 2, WithSeed(1234))
		require.NoError(t, err)

		res, err := r.Run(ctx, twoClusters, 4)
		require.NoError(t, err)
		return res
	}

	first := run()
	second := run()

	assert.Equal(t, first.Centroids, second.Centroids)
	assert.Equal(t, first.Assignments, second.Assignments)
}

// TestRunMatchesManualRounds pins down the exact operation order of Run:
// Assign then Recompute per round, with the returned assignments being the
// ones that fed the final centroid update.
func TestRunMatchesManualRounds(t *testing.T) {
	ctx := context.Background()
	const seed, iterations = 77, 3

	r, err := New(2, 2, WithSeed(seed))
	require.NoError(t, err)

	res, err := r.Run(ctx, twoClusters, iterations)
	require.NoError(t, err)

	manual, err := New(2, 2, WithSeed(seed))
	require.NoError(t, err)

	centroids, err := manual.Initialize(twoClusters)
	require.NoError(t, err)

	var assignments []int
	for i := 0; i < iterations; i++ {
		assignments, err = manual.Assign(ctx, twoClusters, centroids)
		require.NoError(t, err)

		centroids, err = manual.Recompute(twoClusters, assignments, centroids)
		require.NoError(t, err)
	}

	assert.Equal(t, centroids, res.Centroids)
	assert.Equal(t, assignments, res.Assignments)
}

func TestRunKEqualsN(t *testing.T) {
	ctx := context.Background()

	r, err := New(4, 2, WithSeed(5))
	require.NoError(t, err)

	res, err := r.Run(ctx, twoClusters, 1)
	require.NoError(t, err)

	// Every point is its own centroid: the centroid a point is bound to
	// holds exactly that point's coordinates.
	for i := 0; i < 4; i++ {
		a := res.Assignments[i]
		assert.Equal(t, twoClusters[i*2:(i+1)*2], res.Centroids[a*2:a*2+2])
	}

	// All four points claim distinct centroids.
	seen := map[int]bool{}
	for _, a := range res.Assignments {
		seen[a] = true
	}
	assert.Len(t, seen, 4)
}

func TestRunKOne(t *testing.T) {
	ctx := context.Background()

	r, err := New(1, 2, WithSeed(5))
	require.NoError(t, err)

	res, err := r.Run(ctx, twoClusters, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 0, 0}, res.Assignments)
	assert.InDeltaSlice(t, []float32{5, 5.5}, res.Centroids, 1e-5)
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()

	r, err := New(2, 2, WithSeed(1))
	require.NoError(t, err)

	t.Run("ZeroIterations", func(t *testing.T) {
		_, err := r.Run(ctx, twoClusters, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		var ii *ErrInvalidIterations
		assert.ErrorAs(t, err, &ii)
	})

	t.Run("KGreaterThanN", func(t *testing.T) {
		big, err := New(10, 2, WithSeed(1))
		require.NoError(t, err)

		_, err = big.Run(ctx, twoClusters, 1)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("Canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.Run(canceled, twoClusters, 5)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// Refinement should not make the fit worse than the initial random
// centroids on typical inputs. This is a regression check, not a strict
// invariant.
func TestRunReducesDistortion(t *testing.T) {
	ctx := context.Background()

	rng := rand.New(rand.NewSource(2))
	points := make([]float32, 500*3)
	for i := range points {
		points[i] = rng.Float32()
	}

	r, err := New(4, 3, WithSeed(2024))
	require.NoError(t, err)

	init, err := New(4, 3, WithSeed(2024))
	require.NoError(t, err)
	initial, err := init.Initialize(points)
	require.NoError(t, err)
	initialAssign, err := init.Assign(ctx, points, initial)
	require.NoError(t, err)
	before := init.Distortion(points, initial, initialAssign)

	res, err := r.Run(ctx, points, 10)
	require.NoError(t, err)

	finalAssign, err := r.Assign(ctx, points, res.Centroids)
	require.NoError(t, err)
	after := r.Distortion(points, res.Centroids, finalAssign)

	assert.LessOrEqual(t, after, before)
}
