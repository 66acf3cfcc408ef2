package assetcore

import "fmt"

// checkBitSize validates a packed-stream bit width.
func checkBitSize(bitSize int) error {
	if bitSize < 1 || bitSize > 32 {
		return fmt.Errorf("%w: bit size %d outside 1..32", ErrArgument, bitSize)
	}
	return nil
}

// bitMask returns the value mask for a bit width in 1..32.
func bitMask(bitSize int) uint32 {
	return 0xFFFFFFFF >> (32 - bitSize)
}

// UnpackInts extracts count bit-packed integers of width bitSize from data.
// Bits accumulate least significant first, crossing byte boundaries as
// needed; each value is masked to bitSize bits.
func UnpackInts(count int, data []byte, bitSize int) ([]int32, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrArgument, count)
	}
	if err := checkBitSize(bitSize); err != nil {
		return nil, err
	}
	if int64(count)*int64(bitSize) > int64(len(data))*8 {
		return nil, fmt.Errorf("%w: %d values of %d bits exceed %d data bytes",
			ErrBounds, count, bitSize, len(data))
	}

	mask := bitMask(bitSize)
	out := make([]int32, count)
	indexPos, bitPos := 0, 0
	for i := range out {
		var x uint32
		bits := 0
		for bits < bitSize {
			x |= uint32(data[indexPos]>>bitPos) << bits
			num := min(bitSize-bits, 8-bitPos)
			bitPos += num
			bits += num
			if bitPos == 8 {
				indexPos++
				bitPos = 0
			}
		}
		out[i] = int32(x & mask)
	}
	return out, nil
}

// UnpackFloats extracts normalized floats from a chunked bit-packed stream.
// Each extracted integer x of width bitSize maps to x*rng/m + start with
// m = 1<<bitSize - 1. Values are produced in numChunks chunks of
// itemCountInChunk integers; the bit cursor runs continuously through the
// stream, starting bitSize*startOffset bits in. chunkStride must be positive
// but does not move the cursor or change the chunk count. A negative
// numChunks derives the chunk count as count/itemCountInChunk.
func UnpackFloats(count int, rng, start float32, data []byte, bitSize, itemCountInChunk, chunkStride, startOffset, numChunks int) ([]float32, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrArgument, count)
	}
	if err := checkBitSize(bitSize); err != nil {
		return nil, err
	}
	if itemCountInChunk <= 0 {
		return nil, fmt.Errorf("%w: chunk item count %d must be positive", ErrArgument, itemCountInChunk)
	}
	if chunkStride <= 0 {
		return nil, fmt.Errorf("%w: chunk stride %d must be positive", ErrArgument, chunkStride)
	}
	if startOffset < 0 {
		return nil, fmt.Errorf("%w: negative start offset %d", ErrArgument, startOffset)
	}

	if numChunks < 0 {
		numChunks = count / itemCountInChunk
	}
	total := numChunks * itemCountInChunk
	if int64(bitSize)*(int64(startOffset)+int64(total)) > int64(len(data))*8 {
		return nil, fmt.Errorf("%w: %d values of %d bits from offset %d exceed %d data bytes",
			ErrBounds, total, bitSize, startOffset, len(data))
	}

	mask := bitMask(bitSize)
	m := float32(mask)
	bitPos := bitSize * startOffset
	indexPos := bitPos / 8
	bitPos %= 8

	out := make([]float32, 0, total)
	for chunk := 0; chunk < numChunks; chunk++ {
		for i := 0; i < itemCountInChunk; i++ {
			var x uint32
			bits := 0
			for bits < bitSize {
				x |= uint32(data[indexPos]>>bitPos) << bits
				num := min(bitSize-bits, 8-bitPos)
				bitPos += num
				bits += num
				if bitPos == 8 {
					indexPos++
					bitPos = 0
				}
			}
			out = append(out, float32(x&mask)*rng/m+start)
		}
	}
	return out, nil
}
