// Package testutil provides testing utilities for colorquant.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG plus helpers for generating
// point clouds and synthetic test images with known color structure.
//
//	rng := testutil.NewRNG(seed)
//	points := rng.UniformPoints(1000, 3)
//	img := testutil.BlockImage(64, 64, stripeColors)
package testutil
