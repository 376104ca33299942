// Package blobstore abstracts where codebook blobs live.
//
// The local and in-memory stores cover development and tests; the s3 and
// minio subpackages provide cloud backends, including an S3+DynamoDB commit
// store for atomically publishing new codebook versions.
package blobstore
