package codebook

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/hupe1980/colorquant/blobstore"
	"github.com/hupe1980/colorquant/codec"
)

// Codebook is the durable result of a quantization run: the centroid
// matrix in flat row-major layout plus the parameters that produced it.
type Codebook struct {
	// K is the number of centroids.
	K int `json:"k"`
	// Dim is the dimensionality of each centroid.
	Dim int `json:"dim"`
	// Centroids holds K*Dim values, centroid j at [j*Dim : (j+1)*Dim].
	Centroids []float32 `json:"centroids"`
	// Iterations is the number of refinement rounds that were run.
	Iterations int `json:"iterations"`
	// Seed is the RNG seed used for centroid initialization.
	Seed int64 `json:"seed"`
	// Metric names the distance metric used during training.
	Metric string `json:"metric"`
	// TrainedAt records when the codebook was produced.
	TrainedAt time.Time `json:"trained_at"`
}

// Validate checks internal consistency.
func (cb *Codebook) Validate() error {
	if cb.K <= 0 {
		return fmt.Errorf("codebook: invalid k %d", cb.K)
	}
	if cb.Dim <= 0 {
		return fmt.Errorf("codebook: invalid dim %d", cb.Dim)
	}
	if len(cb.Centroids) != cb.K*cb.Dim {
		return fmt.Errorf("codebook: centroids length %d, want %d", len(cb.Centroids), cb.K*cb.Dim)
	}
	return nil
}

// Centroid returns centroid j as a sub-slice of the backing array.
func (cb *Codebook) Centroid(j int) []float32 {
	return cb.Centroids[j*cb.Dim : (j+1)*cb.Dim]
}

// SaveOption configures Save.
type SaveOption func(*saveOptions)

type saveOptions struct {
	codec       codec.Codec
	compression CompressionType
}

// WithCodec selects the payload codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) SaveOption {
	return func(o *saveOptions) {
		o.codec = c
	}
}

// WithCompression selects the payload compression. Defaults to zstd.
func WithCompression(ct CompressionType) SaveOption {
	return func(o *saveOptions) {
		o.compression = ct
	}
}

// Save encodes the codebook and writes it to the store under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, cb *Codebook, opts ...SaveOption) error {
	if err := cb.Validate(); err != nil {
		return err
	}

	o := saveOptions{
		codec:       codec.Default,
		compression: CompressionZSTD,
	}
	for _, opt := range opts {
		opt(&o)
	}

	payload, err := o.codec.Marshal(cb)
	if err != nil {
		return fmt.Errorf("codebook: marshal: %w", err)
	}

	payload, err = compressBlock(payload, o.compression)
	if err != nil {
		return fmt.Errorf("codebook: compress: %w", err)
	}

	codecName := o.codec.Name()
	if len(codecName) > 255 {
		return fmt.Errorf("codebook: codec name too long: %q", codecName)
	}

	var buf bytes.Buffer
	cw := NewChecksumWriter(&buf)

	hdr := fileHeader{
		Magic:        MagicNumber,
		Version:      FormatVersion,
		Compression:  uint8(o.compression),
		CodecNameLen: uint8(len(codecName)),
		PayloadLen:   uint32(len(payload)),
	}
	if err := binary.Write(cw, binary.LittleEndian, hdr); err != nil {
		return err
	}
	if _, err := cw.Write([]byte(codecName)); err != nil {
		return err
	}
	if _, err := cw.Write(payload); err != nil {
		return err
	}

	// CRC32 trailer covers header, codec name, and payload.
	if err := binary.Write(&buf, binary.LittleEndian, cw.Sum()); err != nil {
		return err
	}

	return store.Put(ctx, name, buf.Bytes())
}

// Load reads a codebook blob from the store and decodes it.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Codebook, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses a codebook blob.
func Decode(data []byte) (*Codebook, error) {
	if len(data) < fileHeaderSize+4 {
		return nil, ErrTruncated
	}

	var hdr fileHeader
	if err := binary.Read(bytes.NewReader(data[:fileHeaderSize]), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}

	if hdr.Magic != MagicNumber {
		return nil, ErrInvalidMagic
	}
	if hdr.Version > FormatVersion {
		return nil, ErrUnsupportedVersion
	}

	nameEnd := fileHeaderSize + int(hdr.CodecNameLen)
	payloadEnd := nameEnd + int(hdr.PayloadLen)
	if len(data) < payloadEnd+4 {
		return nil, ErrTruncated
	}

	stored := binary.LittleEndian.Uint32(data[payloadEnd:])
	if Checksum(data[:payloadEnd]) != stored {
		return nil, ErrChecksumMismatch
	}

	codecName := string(data[fileHeaderSize:nameEnd])
	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	payload, err := decompressBlock(data[nameEnd:payloadEnd], CompressionType(hdr.Compression))
	if err != nil {
		return nil, fmt.Errorf("codebook: decompress: %w", err)
	}

	var cb Codebook
	if err := c.Unmarshal(payload, &cb); err != nil {
		return nil, fmt.Errorf("codebook: unmarshal: %w", err)
	}
	if err := cb.Validate(); err != nil {
		return nil, err
	}

	return &cb, nil
}
