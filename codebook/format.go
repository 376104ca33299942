package codebook

import "errors"

const (
	// MagicNumber identifies codebook binary blobs (ASCII: "CQB0").
	MagicNumber = 0x43514230
	// FormatVersion is the current blob format version (v1.0.0).
	FormatVersion = 0x00010000
)

var (
	// ErrInvalidMagic is returned when a blob does not start with MagicNumber.
	ErrInvalidMagic = errors.New("codebook: invalid magic number")
	// ErrUnsupportedVersion is returned for blobs written by a newer format.
	ErrUnsupportedVersion = errors.New("codebook: unsupported format version")
	// ErrChecksumMismatch is returned when the CRC32 trailer does not match.
	ErrChecksumMismatch = errors.New("codebook: checksum mismatch")
	// ErrUnknownCodec is returned when the header names a codec this build
	// does not know.
	ErrUnknownCodec = errors.New("codebook: unknown codec")
	// ErrTruncated is returned when a blob is too short to contain the
	// sections its header promises.
	ErrTruncated = errors.New("codebook: truncated blob")
)

// fileHeader is the fixed-size header at the start of every codebook blob.
// All integers are little endian. The codec name follows the header, then
// the (possibly compressed) payload, then a CRC32 trailer covering
// everything before it.
type fileHeader struct {
	Magic        uint32
	Version      uint32
	Compression  uint8
	CodecNameLen uint8
	Reserved     [2]byte
	PayloadLen   uint32
}

const fileHeaderSize = 16
