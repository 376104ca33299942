// Package colorquant reduces images to k representative colors using
// iterative centroid refinement (Lloyd's algorithm) over RGB point sets.
//
// Features:
//
//   - Deterministic runs with an explicit seed
//   - Fixed iteration counts (no hidden convergence cutoff)
//   - Parallel assignment for large pixel sets
//   - Renderable palettes and cluster partitions
//   - Persistable codebooks with pluggable codecs, compression and
//     blob storage backends (local, in-memory, S3, MinIO)
//   - Structured logging and pluggable metrics
//
// # Quick Start
//
// Quantize an image to 16 colors:
//
//	q, err := colorquant.New(16, colorquant.WithSeed(42))
//	if err != nil {
//	    panic(err)
//	}
//
//	result, err := q.Quantize(ctx, img, 10)
//	if err != nil {
//	    panic(err)
//	}
//
//	quantized, _ := result.Render()
//
// Arbitrary point sets work the same way through QuantizePixels, with
// any dimensionality:
//
//	result, err := q.QuantizePixels(ctx, points, dim, 10)
//
// # Persistence
//
// Trained codebooks can be saved to any blobstore.BlobStore:
//
//	store, _ := blobstore.NewLocalStore("./data")
//	err = q.SaveCodebook(ctx, store, "sunset.cqb", result.Codebook("squared-l2"))
//
// For S3-backed deployments, blobstore/s3 adds a DynamoDB-coordinated
// commit store that publishes codebook versions atomically.
package colorquant
