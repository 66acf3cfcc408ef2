package assetcore

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/scigolib/assetcore/internal/utils"
)

// byteOrder is the constraint for the two monomorphized reader
// instantiations. Using concrete zero-size types instead of a dynamic
// binary.ByteOrder value keeps the per-read dispatch out of the hot path.
type byteOrder interface {
	Uint16(b []byte) uint16
	Uint32(b []byte) uint32
	Uint64(b []byte) uint64
}

type littleEndian struct{}

func (littleEndian) Uint16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func (littleEndian) Uint32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func (littleEndian) Uint64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

type bigEndian struct{}

func (bigEndian) Uint16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }
func (bigEndian) Uint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
func (bigEndian) Uint64(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

// reader is a bounded cursor over an immutable byte slice. The position only
// advances; alignment may move it past the end, in which case the next read
// fails the bounds check.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) remaining() int {
	if r.pos >= len(r.data) {
		return 0
	}
	return len(r.data) - r.pos
}

// require fails with a bounds error unless n more bytes are available.
func (r *reader) require(n int, what string) error {
	if n < 0 || n > r.remaining() {
		return fmt.Errorf("%w: %s needs %d bytes at offset %d of %d",
			ErrBounds, what, n, r.pos, len(r.data))
	}
	return nil
}

// align4 advances the cursor to the next multiple of 4 from the buffer start.
func (r *reader) align4() {
	r.pos = (r.pos + 3) &^ 3
}

func readBool(r *reader) (bool, error) {
	if err := r.require(1, "bool"); err != nil {
		return false, err
	}
	v := r.data[r.pos] != 0
	r.pos++
	return v, nil
}

func readU8(r *reader) (uint8, error) {
	if err := r.require(1, "u8"); err != nil {
		return 0, err
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func readS8(r *reader) (int8, error) {
	if err := r.require(1, "s8"); err != nil {
		return 0, err
	}
	v := int8(r.data[r.pos])
	r.pos++
	return v, nil
}

func readU16[E byteOrder](r *reader, e E) (uint16, error) {
	if err := r.require(2, "u16"); err != nil {
		return 0, err
	}
	v := e.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func readU32[E byteOrder](r *reader, e E) (uint32, error) {
	if err := r.require(4, "u32"); err != nil {
		return 0, err
	}
	v := e.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func readU64[E byteOrder](r *reader, e E) (uint64, error) {
	if err := r.require(8, "u64"); err != nil {
		return 0, err
	}
	v := e.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

func readS16[E byteOrder](r *reader, e E) (int16, error) {
	v, err := readU16(r, e)
	return int16(v), err
}

func readS32[E byteOrder](r *reader, e E) (int32, error) {
	v, err := readU32(r, e)
	return int32(v), err
}

func readS64[E byteOrder](r *reader, e E) (int64, error) {
	v, err := readU64(r, e)
	return int64(v), err
}

func readF32[E byteOrder](r *reader, e E) (float32, error) {
	v, err := readU32(r, e)
	return math.Float32frombits(v), err
}

func readF64[E byteOrder](r *reader, e E) (float64, error) {
	v, err := readU64(r, e)
	return math.Float64frombits(v), err
}

// readLength reads a signed 32-bit count prefix. Negative counts are treated
// as bounds violations, not wrapped around.
func readLength[E byteOrder](r *reader, e E) (int, error) {
	v, err := readS32(r, e)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative length %d at offset %d", ErrBounds, v, r.pos-4)
	}
	return int(v), nil
}

// readString reads a length-prefixed UTF-8 string and realigns the cursor.
// Invalid UTF-8 bytes survive via surrogate escapes.
func readString[E byteOrder](r *reader, e E) (string, error) {
	length, err := readLength(r, e)
	if err != nil {
		return "", err
	}
	if err := r.require(length, "string"); err != nil {
		return "", err
	}
	s := decodeSurrogateEscape(r.data[r.pos : r.pos+length])
	r.pos += length
	r.align4()
	return s, nil
}

// readBytes reads a length-prefixed raw byte run into a fresh slice. Unlike
// strings, raw byte runs are not realigned.
func readBytes[E byteOrder](r *reader, e E) ([]byte, error) {
	length, err := readLength(r, e)
	if err != nil {
		return nil, err
	}
	if err := r.require(length, "bytes"); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, r.data[r.pos:])
	r.pos += length
	return out, nil
}

// decodeSurrogateEscape decodes UTF-8, mapping each invalid byte b to the
// lone surrogate U+DC00+b so the original bytes can round-trip.
func decodeSurrogateEscape(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	// Worst case every byte escapes to a 3-byte surrogate encoding.
	scratch := utils.GetBuffer(3 * len(b))[:0]
	defer utils.ReleaseBuffer(scratch)

	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			esc := 0xDC00 + rune(b[i])
			scratch = append(scratch,
				0xE0|byte(esc>>12),
				0x80|byte(esc>>6)&0x3F,
				0x80|byte(esc)&0x3F)
			i++
			continue
		}
		scratch = append(scratch, b[i:i+size]...)
		i += size
	}
	return string(scratch)
}
