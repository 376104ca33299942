package colorquant

import (
	"log/slog"

	"github.com/hupe1980/colorquant/codebook"
	"github.com/hupe1980/colorquant/codec"
	"github.com/hupe1980/colorquant/distance"
	"github.com/hupe1980/colorquant/resource"
)

type options struct {
	seed        int64
	seedSet     bool
	metric      distance.Metric
	parallelism int
	codec       codec.Codec
	compression codebook.CompressionType
	metrics     MetricsCollector
	logger      *Logger
	controller  *resource.Controller
}

// Option configures a Quantizer.
type Option func(*options)

// WithSeed pins the RNG seed used for centroid initialization.
// Runs with the same seed, pixels and iteration count are fully
// deterministic. Without this option every run draws a fresh seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seedSet = true
	}
}

// WithMetric sets the distance metric used during assignment.
// Defaults to distance.MetricSquaredL2.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithParallelism bounds the number of goroutines used for the
// assignment step. Values below 2 keep runs single-threaded.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithCodec configures the codec used for codebook payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the compression used for codebook payloads.
// Defaults to zstd.
func WithCompression(ct codebook.CompressionType) Option {
	return func(o *options) {
		o.compression = ct
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &colorquant.BasicMetricsCollector{}
//	q, _ := colorquant.New(16, colorquant.WithMetricsCollector(metrics))
//	// ... use q ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := colorquant.NewJSONLogger(slog.LevelInfo)
//	q, _ := colorquant.New(16, colorquant.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController attaches a resource controller that bounds
// pixel-buffer memory and concurrent batch trainings.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metric:      distance.MetricSquaredL2,
		codec:       codec.Default,
		compression: codebook.CompressionZSTD,
		metrics:     NoopMetricsCollector{},
		logger:      NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
