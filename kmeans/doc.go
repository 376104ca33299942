// Package kmeans implements Lloyd's k-means clustering over flat float32
// point sets.
//
// Points are stored row-major as a single []float32 with an explicit
// dimension, so n points of dimension d occupy a slice of length n*d.
// Centroid sets use the same layout (k*d).
//
// The Refiner runs a fixed number of Assign/Recompute rounds - there is no
// convergence check and no guarantee of a global optimum. Results depend on
// the random initialization; fix the seed via WithSeed for reproducible runs.
package kmeans
