// Package codebook persists trained color codebooks.
//
// A codebook is the durable artifact of a quantization run: the centroid
// matrix plus the parameters that produced it. Codebooks are written as
// self-describing binary blobs (magic, version, codec name, compression
// type, CRC32 trailer) so a file can be decoded without out-of-band
// knowledge of how it was written.
package codebook
