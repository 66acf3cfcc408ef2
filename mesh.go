package assetcore

import (
	"encoding/binary"
	"fmt"

	"github.com/scigolib/assetcore/internal/utils"
)

// UnpackVertexData gathers one channel out of an interleaved vertex buffer
// into a tightly packed byte slice of vertexCount*channelDimension
// components. With swap set, every 16- or 32-bit component of the output is
// byte-reversed in place before returning.
func UnpackVertexData(vertexData []byte, componentByteSize, vertexCount, streamOffset, streamStride, channelOffset, channelDimension int, swap bool) ([]byte, error) {
	switch componentByteSize {
	case 1, 2, 4:
	default:
		return nil, fmt.Errorf("%w: component byte size %d not in {1, 2, 4}", ErrArgument, componentByteSize)
	}
	if vertexCount < 0 || streamOffset < 0 || streamStride < 0 || channelOffset < 0 || channelDimension < 0 {
		return nil, fmt.Errorf("%w: negative vertex geometry", ErrArgument)
	}

	components, err := utils.SafeMultiply(uint64(vertexCount), uint64(channelDimension))
	if err != nil {
		return nil, fmt.Errorf("%w: vertex count %d x dimension %d overflows", ErrArgument, vertexCount, channelDimension)
	}
	outLen, err := utils.SafeMultiply(components, uint64(componentByteSize))
	if err != nil {
		return nil, fmt.Errorf("%w: output of %d components overflows", ErrArgument, components)
	}

	out := make([]byte, outLen)
	if vertexCount > 0 && channelDimension > 0 {
		maxAccess := (vertexCount-1)*streamStride + channelOffset + streamOffset +
			componentByteSize*(channelDimension-1) + componentByteSize
		if maxAccess > len(vertexData) {
			return nil, fmt.Errorf("%w: vertex data access at %d exceeds %d input bytes",
				ErrBounds, maxAccess, len(vertexData))
		}
	}

	for v := 0; v < vertexCount; v++ {
		vertexOffset := streamOffset + channelOffset + streamStride*v
		for d := 0; d < channelDimension; d++ {
			src := vertexOffset + componentByteSize*d
			dst := componentByteSize * (v*channelDimension + d)
			copy(out[dst:dst+componentByteSize], vertexData[src:])
		}
	}

	if swap {
		switch componentByteSize {
		case 2:
			for i := 0; i+2 <= len(out); i += 2 {
				binary.NativeEndian.PutUint16(out[i:], utils.Swap16(binary.NativeEndian.Uint16(out[i:])))
			}
		case 4:
			for i := 0; i+4 <= len(out); i += 4 {
				binary.NativeEndian.PutUint32(out[i:], utils.Swap32(binary.NativeEndian.Uint32(out[i:])))
			}
		}
	}
	return out, nil
}
