package utils

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwap16(t *testing.T) {
	tests := []struct {
		name     string
		in       uint16
		expected uint16
	}{
		{name: "zero", in: 0x0000, expected: 0x0000},
		{name: "max", in: 0xFFFF, expected: 0xFFFF},
		{name: "asymmetric", in: 0x1234, expected: 0x3412},
		{name: "single byte", in: 0x00FF, expected: 0xFF00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Swap16(tt.in))
		})
	}
}

func TestSwap32(t *testing.T) {
	tests := []struct {
		name     string
		in       uint32
		expected uint32
	}{
		{name: "zero", in: 0x00000000, expected: 0x00000000},
		{name: "max", in: 0xFFFFFFFF, expected: 0xFFFFFFFF},
		{name: "asymmetric", in: 0x12345678, expected: 0x78563412},
		{name: "single byte", in: 0x000000FF, expected: 0xFF000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Swap32(tt.in))
		})
	}
}

func TestSwap64(t *testing.T) {
	tests := []struct {
		name     string
		in       uint64
		expected uint64
	}{
		{name: "zero", in: 0, expected: 0},
		{name: "max", in: 0xFFFFFFFFFFFFFFFF, expected: 0xFFFFFFFFFFFFFFFF},
		{name: "asymmetric", in: 0x0102030405060708, expected: 0x0807060504030201},
		{name: "single byte", in: 0x00000000000000FF, expected: 0xFF00000000000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Swap64(tt.in))
		})
	}
}

func TestSwapInvolution(t *testing.T) {
	// Swapping twice must be the identity.
	require.Equal(t, uint16(0xBEEF), Swap16(Swap16(0xBEEF)))
	require.Equal(t, uint32(0xDEADBEEF), Swap32(Swap32(0xDEADBEEF)))
	require.Equal(t, uint64(0xDEADBEEFCAFEF00D), Swap64(Swap64(0xDEADBEEFCAFEF00D)))
}

func TestHostBigEndian(t *testing.T) {
	// Cross-check the cached detection against the standard library.
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 0x0102)
	require.Equal(t, buf[0] == 0x01, HostBigEndian())
}
