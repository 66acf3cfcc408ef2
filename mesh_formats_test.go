package assetcore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat16ToFloat32(t *testing.T) {
	tests := []struct {
		name     string
		in       Float16
		expected float32
	}{
		{name: "positive zero", in: 0x0000, expected: 0},
		{name: "one", in: 0x3C00, expected: 1},
		{name: "negative two", in: 0xC000, expected: -2},
		{name: "half", in: 0x3800, expected: 0.5},
		{name: "max normal", in: 0x7BFF, expected: 65504},
		{name: "smallest subnormal", in: 0x0001, expected: float32(math.Ldexp(1, -24))},
		{name: "largest subnormal", in: 0x03FF, expected: float32(math.Ldexp(1023, -24))},
		{name: "negative subnormal", in: 0x8001, expected: float32(math.Ldexp(-1, -24))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.in.ToFloat32())
		})
	}
}

func TestFloat16ToFloat32_Specials(t *testing.T) {
	require.True(t, math.IsInf(float64(Float16(0x7C00).ToFloat32()), 1))
	require.True(t, math.IsInf(float64(Float16(0xFC00).ToFloat32()), -1))
	require.True(t, math.IsNaN(float64(Float16(0x7E00).ToFloat32())))

	negZero := Float16(0x8000).ToFloat32()
	require.Equal(t, float32(0), negZero)
	require.True(t, math.Signbit(float64(negZero)))
}

func TestVertexFormatComponentByteSize(t *testing.T) {
	require.Equal(t, 1, VertexFormatUNorm8.ComponentByteSize())
	require.Equal(t, 2, VertexFormatFloat16.ComponentByteSize())
	require.Equal(t, 4, VertexFormatFloat.ComponentByteSize())
	require.Equal(t, 0, VertexFormat(0xFF).ComponentByteSize())
}

func TestUnpackFloatComponents(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		format   VertexFormat
		expected []float32
	}{
		{
			name:     "float32",
			data:     []byte{0x00, 0x00, 0x80, 0x3F, 0x00, 0x00, 0x00, 0xC0},
			format:   VertexFormatFloat,
			expected: []float32{1, -2},
		},
		{
			name:     "float16",
			data:     []byte{0x00, 0x3C, 0x00, 0xB8},
			format:   VertexFormatFloat16,
			expected: []float32{1, -0.5},
		},
		{
			name:     "unorm8 endpoints",
			data:     []byte{0x00, 0xFF, 0x80},
			format:   VertexFormatUNorm8,
			expected: []float32{0, 1, float32(0x80) / 255},
		},
		{
			name:     "snorm8 clamps most negative",
			data:     []byte{0x7F, 0x81, 0x80},
			format:   VertexFormatSNorm8,
			expected: []float32{1, -1, -1},
		},
		{
			name:     "unorm16",
			data:     []byte{0xFF, 0xFF, 0x00, 0x00},
			format:   VertexFormatUNorm16,
			expected: []float32{1, 0},
		},
		{
			name:     "snorm16 clamps most negative",
			data:     []byte{0xFF, 0x7F, 0x01, 0x80, 0x00, 0x80},
			format:   VertexFormatSNorm16,
			expected: []float32{1, -1, -1},
		},
		{
			name:     "uint8",
			data:     []byte{0x00, 0xFF},
			format:   VertexFormatUInt8,
			expected: []float32{0, 255},
		},
		{
			name:     "sint8",
			data:     []byte{0xFF, 0x80},
			format:   VertexFormatSInt8,
			expected: []float32{-1, -128},
		},
		{
			name:     "uint16",
			data:     []byte{0x34, 0x12},
			format:   VertexFormatUInt16,
			expected: []float32{0x1234},
		},
		{
			name:     "sint16",
			data:     []byte{0xFE, 0xFF},
			format:   VertexFormatSInt16,
			expected: []float32{-2},
		},
		{
			name:     "uint32",
			data:     []byte{0x00, 0x00, 0x01, 0x00},
			format:   VertexFormatUInt32,
			expected: []float32{65536},
		},
		{
			name:     "sint32",
			data:     []byte{0xFD, 0xFF, 0xFF, 0xFF},
			format:   VertexFormatSInt32,
			expected: []float32{-3},
		},
		{
			name:     "empty",
			data:     nil,
			format:   VertexFormatFloat,
			expected: []float32{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnpackFloatComponents(tt.data, tt.format)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestUnpackFloatComponents_GatherPipeline(t *testing.T) {
	// Gather a 2-component half-precision channel, then widen it.
	input := []byte{
		0x00, 0x3C, 0x00, 0x40, 0xAA, 0xAA, // vertex 0: 1.0, 2.0, padding
		0x00, 0xC4, 0x00, 0x38, 0xAA, 0xAA, // vertex 1: -4.0, 0.5, padding
	}

	packed, err := UnpackVertexData(input, 2, 2, 0, 6, 0, 2, false)
	require.NoError(t, err)

	got, err := UnpackFloatComponents(packed, VertexFormatFloat16)
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2, -4, 0.5}, got)
}

func TestUnpackFloatComponents_Errors(t *testing.T) {
	_, err := UnpackFloatComponents([]byte{0x00}, VertexFormat(0xFF))
	require.ErrorIs(t, err, ErrArgument)

	_, err = UnpackFloatComponents([]byte{0x00, 0x01, 0x02}, VertexFormatFloat)
	require.ErrorIs(t, err, ErrArgument)
}
