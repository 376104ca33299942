package kmeans

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Partition groups point indices by cluster. It is built in two passes over
// the assignment slice (count, then fill), so no per-cluster slice ever
// grows incrementally.
type Partition struct {
	k       int
	counts  []int
	backing []uint32 // all point indices, grouped by cluster
	offsets []int    // cluster i owns backing[offsets[i]:offsets[i+1]]
}

// NewPartition builds a Partition from an assignment slice. Every value in
// assignments must lie in [0, k).
func NewPartition(assignments []int, k int) (*Partition, error) {
	if k <= 0 {
		return nil, &ErrInvalidClusterCount{K: k, N: -1}
	}

	counts := make([]int, k)
	for i, a := range assignments {
		if a < 0 || a >= k {
			return nil, &ErrInvalidAssignment{Index: i, Value: a, K: k}
		}
		counts[a]++
	}

	offsets := make([]int, k+1)
	for i := 0; i < k; i++ {
		offsets[i+1] = offsets[i] + counts[i]
	}

	backing := make([]uint32, len(assignments))
	next := make([]int, k)
	copy(next, offsets[:k])
	for i, a := range assignments {
		backing[next[a]] = uint32(i)
		next[a]++
	}

	return &Partition{
		k:       k,
		counts:  counts,
		backing: backing,
		offsets: offsets,
	}, nil
}

// K returns the number of clusters.
func (p *Partition) K() int { return p.k }

// Count returns the number of points assigned to the given cluster.
func (p *Partition) Count(cluster int) int {
	return p.counts[cluster]
}

// Indices returns the point indices assigned to the given cluster in
// ascending order. The returned slice aliases internal storage; callers
// must not modify it.
func (p *Partition) Indices(cluster int) []uint32 {
	return p.backing[p.offsets[cluster]:p.offsets[cluster+1]]
}

// Members returns the cluster's point indices as a Roaring bitmap, suitable
// for cheap intersection with other index sets (e.g. region masks).
func (p *Partition) Members(cluster int) *roaring.Bitmap {
	bm := roaring.New()
	bm.AddMany(p.Indices(cluster))
	return bm
}

// Largest returns the index of the cluster with the most points. Ties break
// to the lowest cluster index.
func (p *Partition) Largest() int {
	best := 0
	for i, c := range p.counts {
		if c > p.counts[best] {
			best = i
		}
	}
	return best
}

// Empty returns the indices of clusters with no assigned points.
func (p *Partition) Empty() []int {
	var empty []int
	for i, c := range p.counts {
		if c == 0 {
			empty = append(empty, i)
		}
	}
	return empty
}
