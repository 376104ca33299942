// Package math32 provides float32 vector primitives for the clustering
// and distance packages. This is an internal package - external users
// should use the distance package.
package math32

import "math"

// SquaredL2 calculates the squared L2 (Euclidean) distance.
// Assumes a and b are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	var distance float32
	for i := range a {
		distance += (a[i] - b[i]) * (a[i] - b[i])
	}

	return distance
}

// Dot calculates the dot product of two vectors.
// Assumes a and b are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	var ret float32
	for i := range a {
		ret += a[i] * b[i]
	}

	return ret
}

// L2 calculates the L2 (Euclidean) distance.
func L2(a, b []float32) float32 {
	return Sqrt(SquaredL2(a, b))
}

// Sqrt returns the square root of x as a float32.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// ScaleInPlace multiplies all elements of a by scalar.
func ScaleInPlace(a []float32, scalar float32) {
	for i := range a {
		a[i] *= scalar
	}
}

// AddInPlace adds b to a element-wise.
// Assumes a and b are the same length (caller's responsibility).
func AddInPlace(a, b []float32) {
	for i := range a {
		a[i] += b[i]
	}
}
