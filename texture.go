package assetcore

import "fmt"

// GOB geometry of the swizzled texture layout: each GOB is a 4x8 grid of
// blocks.
const (
	gobXBlockCount = 4
	gobYBlockCount = 8
	blocksInGOB    = gobXBlockCount * gobYBlockCount
)

// SwitchDeswizzle rearranges a GOB/block-swizzled pixel buffer into linear
// row-major order and returns a buffer of the same length. Row copies clamp
// to the remaining buffer so truncated tails are tolerated.
func SwitchDeswizzle(data []byte, pixelWidth, width, height, blockWidth, blockHeight, gobsPerBlock int) ([]byte, error) {
	if pixelWidth <= 0 || width <= 0 || height <= 0 || blockWidth <= 0 || blockHeight <= 0 || gobsPerBlock <= 0 {
		return nil, fmt.Errorf("%w: swizzle dimensions must be positive", ErrArgument)
	}

	dst := make([]byte, len(data))

	blockCountX := width / blockWidth
	blockCountY := height / blockHeight
	gobCountX := blockCountX / gobXBlockCount
	gobCountY := blockCountY / gobYBlockCount

	blockRowBytes := blockWidth * pixelWidth
	imageRowBytes := width * pixelWidth

	// The source cursor walks blocks in raster order while the destination
	// follows the bit-interleaved intra-GOB order.
	srcX, srcY := 0, 0
	for y := 0; y < gobCountY; y++ {
		for x := 0; x < gobCountX; x++ {
			for k := 0; k < gobsPerBlock; k++ {
				for l := 0; l < blocksInGOB; l++ {
					gobX := (l>>3)&0b10 | (l>>1)&0b1
					gobY := (l>>1)&0b110 | l&0b1
					dstX := x*gobXBlockCount + gobX
					dstY := (y*gobsPerBlock+k)*gobYBlockCount + gobY

					srcOffset := (srcX*blockWidth + srcY*blockHeight*width) * pixelWidth
					dstOffset := (dstX*blockWidth + dstY*blockHeight*width) * pixelWidth
					for row := 0; row < blockHeight; row++ {
						if srcOffset >= len(data) || dstOffset >= len(dst) {
							break
						}
						n := min(blockRowBytes, len(data)-srcOffset, len(dst)-dstOffset)
						copy(dst[dstOffset:dstOffset+n], data[srcOffset:srcOffset+n])
						srcOffset += imageRowBytes
						dstOffset += imageRowBytes
					}

					srcX++
					if srcX >= blockCountX {
						srcX = 0
						srcY++
					}
				}
			}
		}
	}
	return dst, nil
}
