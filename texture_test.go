package assetcore

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// gobBlockOrder is the intra-GOB visiting order as (x, y) block
// coordinates, used as an independent cross-check of the bit-interleaved
// coordinate extraction.
var gobBlockOrder = [32][2]int{
	{0, 0}, {0, 1}, {1, 0}, {1, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3},
	{0, 4}, {0, 5}, {1, 4}, {1, 5}, {0, 6}, {0, 7}, {1, 6}, {1, 7},
	{2, 0}, {2, 1}, {3, 0}, {3, 1}, {2, 2}, {2, 3}, {3, 2}, {3, 3},
	{2, 4}, {2, 5}, {3, 4}, {3, 5}, {2, 6}, {2, 7}, {3, 6}, {3, 7},
}

func TestSwitchDeswizzle_SingleGOB(t *testing.T) {
	// One GOB of 1x1-pixel blocks: source block l lands at the block
	// coordinates given by the GOB ordering table.
	data := make([]byte, 32)
	for i := range data {
		data[i] = byte(i)
	}

	got, err := SwitchDeswizzle(data, 1, 4, 8, 1, 1, 1)
	require.NoError(t, err)
	require.Len(t, got, len(data))

	for l, xy := range gobBlockOrder {
		require.Equal(t, byte(l), got[xy[0]+4*xy[1]], "block %d", l)
	}
}

func TestSwitchDeswizzle_Permutation(t *testing.T) {
	// Exact multiples of the GOB geometry permute the input bytes.
	const width, height = 8, 16
	data := make([]byte, width*height)
	for i := range data {
		data[i] = byte(i)
	}

	got, err := SwitchDeswizzle(data, 1, width, height, 1, 1, 1)
	require.NoError(t, err)
	require.Len(t, got, len(data))

	sortedIn := append([]byte(nil), data...)
	sortedOut := append([]byte(nil), got...)
	sort.Slice(sortedIn, func(i, j int) bool { return sortedIn[i] < sortedIn[j] })
	sort.Slice(sortedOut, func(i, j int) bool { return sortedOut[i] < sortedOut[j] })
	require.Equal(t, sortedIn, sortedOut)
}

func TestSwitchDeswizzle_WideBlocks(t *testing.T) {
	// 2-byte pixels and 2x2 blocks: each block row copies
	// blockWidth*pixelWidth bytes.
	const (
		pixelWidth  = 2
		width       = 8
		height      = 16
		blockWidth  = 2
		blockHeight = 2
	)
	data := make([]byte, pixelWidth*width*height)
	for i := range data {
		data[i] = byte(i * 13)
	}

	got, err := SwitchDeswizzle(data, pixelWidth, width, height, blockWidth, blockHeight, 1)
	require.NoError(t, err)
	require.Len(t, got, len(data))

	// The first source block must appear at block (0, 0): two rows of
	// four bytes at the start of consecutive image rows.
	rowBytes := width * pixelWidth
	require.Equal(t, data[0:4], got[0:4])
	require.Equal(t, data[rowBytes:rowBytes+4], got[rowBytes:rowBytes+4])
}

func TestSwitchDeswizzle_TruncatedTail(t *testing.T) {
	// A buffer shorter than the full swizzled area is tolerated; copies
	// clamp at the end and the output keeps the input length.
	full := 4 * 8
	data := make([]byte, full-5)
	for i := range data {
		data[i] = byte(i)
	}

	got, err := SwitchDeswizzle(data, 1, 4, 8, 1, 1, 1)
	require.NoError(t, err)
	require.Len(t, got, len(data))
}

func TestSwitchDeswizzle_GobsPerBlock(t *testing.T) {
	// Two GOBs stacked vertically: block 32 (second GOB, l=0) lands at
	// block row 8.
	const width, height = 4, 16
	data := make([]byte, width*height)
	for i := range data {
		data[i] = byte(i)
	}

	got, err := SwitchDeswizzle(data, 1, width, height, 1, 1, 2)
	require.NoError(t, err)
	require.Len(t, got, len(data))

	for l, xy := range gobBlockOrder {
		require.Equal(t, byte(l), got[xy[0]+4*xy[1]], "first gob block %d", l)
		require.Equal(t, byte(32+l), got[xy[0]+4*(8+xy[1])], "second gob block %d", l)
	}
}

func TestSwitchDeswizzle_Errors(t *testing.T) {
	data := make([]byte, 32)

	_, err := SwitchDeswizzle(data, 0, 4, 8, 1, 1, 1)
	require.ErrorIs(t, err, ErrArgument)

	_, err = SwitchDeswizzle(data, 1, 0, 8, 1, 1, 1)
	require.ErrorIs(t, err, ErrArgument)

	_, err = SwitchDeswizzle(data, 1, 4, 8, 1, 1, 0)
	require.ErrorIs(t, err, ErrArgument)
}
