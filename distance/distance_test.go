package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Simple", []float32{1, 2, 3}, []float32{4, 5, 6}, 27},
		{"Zero", []float32{0, 0, 0}, []float32{0, 0, 0}, 0},
		{"Identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"Mixed", []float32{1, -1}, []float32{-1, 1}, 8}, // (1 - -1)^2 + (-1 - 1)^2 = 4 + 4 = 8
		{"Empty", []float32{}, []float32{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SquaredL2(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-5)
		})
	}
}

func TestL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Pythagorean", []float32{0, 0}, []float32{3, 4}, 5},
		{"Identical", []float32{1, 2}, []float32{1, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := L2(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-5)
		})
	}
}

func TestDot(t *testing.T) {
	got := Dot([]float32{1, 2, 3}, []float32{4, 5, 6})
	assert.InDelta(t, float32(32), got, 1e-5)
}

func TestNormalizeL2(t *testing.T) {
	t.Run("InPlace", func(t *testing.T) {
		v := []float32{3, 4}
		ok := NormalizeL2InPlace(v)
		assert.True(t, ok)
		assert.InDelta(t, float32(0.6), v[0], 1e-5)
		assert.InDelta(t, float32(0.8), v[1], 1e-5)
	})

	t.Run("ZeroNorm", func(t *testing.T) {
		v := []float32{0, 0}
		ok := NormalizeL2InPlace(v)
		assert.False(t, ok)
	})

	t.Run("Copy", func(t *testing.T) {
		src := []float32{3, 4}
		dst, ok := NormalizeL2Copy(src)
		assert.True(t, ok)
		assert.Equal(t, []float32{3, 4}, src) // untouched
		assert.InDelta(t, float32(0.6), dst[0], 1e-5)
	})
}

func TestProvider(t *testing.T) {
	for _, m := range []Metric{MetricSquaredL2, MetricL2, MetricDot} {
		t.Run(m.String(), func(t *testing.T) {
			fn, err := Provider(m)
			require.NoError(t, err)
			assert.NotNil(t, fn)
		})
	}

	t.Run("Unsupported", func(t *testing.T) {
		_, err := Provider(Metric(999))
		assert.Error(t, err)
	})
}

func TestMetricString(t *testing.T) {
	assert.Equal(t, "SquaredL2", MetricSquaredL2.String())
	assert.Equal(t, "Unknown(999)", Metric(999).String())
}
