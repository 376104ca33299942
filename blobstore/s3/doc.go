// Package s3 provides an S3-backed BlobStore for codebooks, plus a
// DynamoDB-assisted commit store for atomically publishing new codebook
// versions.
//
// Reads use ranged GETs; writes stream through a multipart uploader, so
// large codebooks never have to be buffered fully in memory.
package s3
