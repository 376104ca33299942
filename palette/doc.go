// Package palette converts between in-memory images and the flat float32
// point sets consumed by the kmeans package, and turns trained centroids
// back into drawable color palettes.
//
// Pixels map to 3-dimensional points (RGB scaled to [0,1]) in row-major
// pixel order. Decoding and encoding image files is the caller's job; this
// package only works on image.Image values and pixel slices already in
// memory.
package palette
