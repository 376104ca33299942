// Package distance provides vector distance calculations for clustering.
//
// # Supported Metrics
//
//	MetricSquaredL2: Squared Euclidean distance (default for k-means)
//	MetricL2:        Euclidean distance
//	MetricDot:       Dot product (inner product)
//
// # Usage
//
//	dist := distance.SquaredL2(a, b)
//	fn, err := distance.Provider(distance.MetricSquaredL2)
package distance
