// Package minio provides a blobstore.BlobStore backed by MinIO or any
// S3-compatible object storage reachable through the MinIO client.
package minio
