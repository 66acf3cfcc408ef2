package assetcore

import (
	"encoding/binary"
	"fmt"
	"math"
)

// VertexFormat identifies the on-wire encoding of one vertex component.
type VertexFormat uint8

// Vertex component formats, matching the engine's channel descriptors.
const (
	VertexFormatFloat VertexFormat = iota
	VertexFormatFloat16
	VertexFormatUNorm8
	VertexFormatSNorm8
	VertexFormatUNorm16
	VertexFormatSNorm16
	VertexFormatUInt8
	VertexFormatSInt8
	VertexFormatUInt16
	VertexFormatSInt16
	VertexFormatUInt32
	VertexFormatSInt32
)

// ComponentByteSize returns the wire size of one component, or 0 for an
// unknown format.
func (f VertexFormat) ComponentByteSize() int {
	switch f {
	case VertexFormatUNorm8, VertexFormatSNorm8, VertexFormatUInt8, VertexFormatSInt8:
		return 1
	case VertexFormatFloat16, VertexFormatUNorm16, VertexFormatSNorm16, VertexFormatUInt16, VertexFormatSInt16:
		return 2
	case VertexFormatFloat, VertexFormatUInt32, VertexFormatSInt32:
		return 4
	default:
		return 0
	}
}

// Float16 represents an IEEE 754 half-precision value.
//
// Format (16 bits total):
//   - Bit 15:     Sign (1 bit)
//   - Bits 14-10: Exponent (5 bits, bias=15)
//   - Bits 9-0:   Mantissa (10 bits)
type Float16 uint16

// ToFloat32 widens half precision to float32. Subnormals, infinities and
// NaN payloads are preserved.
func (h Float16) ToFloat32() float32 {
	sign := uint32(h>>15) & 1
	exp := uint32(h>>10) & 0x1F
	mant := uint32(h) & 0x3FF

	var bits uint32
	switch {
	case exp == 0:
		if mant == 0 {
			// Signed zero.
			bits = sign << 31
		} else {
			// Subnormal: renormalize into the float32 exponent range.
			e := uint32(127 - 15 + 1)
			for mant&0x400 == 0 {
				mant <<= 1
				e--
			}
			mant &= 0x3FF
			bits = sign<<31 | e<<23 | mant<<13
		}
	case exp == 0x1F:
		// Infinity or NaN.
		bits = sign<<31 | 0xFF<<23 | mant<<13
	default:
		bits = sign<<31 | (exp-15+127)<<23 | mant<<13
	}
	return math.Float32frombits(bits)
}

// UnpackFloatComponents converts a tightly packed component buffer, as
// produced by UnpackVertexData, into floats. Multi-byte components are read
// little-endian; normalized formats map onto [0, 1] or [-1, 1], with the
// most negative signed value clamped to -1.
func UnpackFloatComponents(data []byte, format VertexFormat) ([]float32, error) {
	size := format.ComponentByteSize()
	if size == 0 {
		return nil, fmt.Errorf("%w: unknown vertex format %d", ErrArgument, format)
	}
	if len(data)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of %d-byte components",
			ErrArgument, len(data), size)
	}

	out := make([]float32, len(data)/size)
	switch format {
	case VertexFormatFloat:
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
		}
	case VertexFormatFloat16:
		for i := range out {
			out[i] = Float16(binary.LittleEndian.Uint16(data[2*i:])).ToFloat32()
		}
	case VertexFormatUNorm8:
		for i := range out {
			out[i] = float32(data[i]) / 255
		}
	case VertexFormatSNorm8:
		for i := range out {
			out[i] = max(float32(int8(data[i]))/127, -1)
		}
	case VertexFormatUNorm16:
		for i := range out {
			out[i] = float32(binary.LittleEndian.Uint16(data[2*i:])) / 65535
		}
	case VertexFormatSNorm16:
		for i := range out {
			out[i] = max(float32(int16(binary.LittleEndian.Uint16(data[2*i:])))/32767, -1)
		}
	case VertexFormatUInt8:
		for i := range out {
			out[i] = float32(data[i])
		}
	case VertexFormatSInt8:
		for i := range out {
			out[i] = float32(int8(data[i]))
		}
	case VertexFormatUInt16:
		for i := range out {
			out[i] = float32(binary.LittleEndian.Uint16(data[2*i:]))
		}
	case VertexFormatSInt16:
		for i := range out {
			out[i] = float32(int16(binary.LittleEndian.Uint16(data[2*i:])))
		}
	case VertexFormatUInt32:
		for i := range out {
			out[i] = float32(binary.LittleEndian.Uint32(data[4*i:]))
		}
	case VertexFormatSInt32:
		for i := range out {
			out[i] = float32(int32(binary.LittleEndian.Uint32(data[4*i:])))
		}
	}
	return out, nil
}
