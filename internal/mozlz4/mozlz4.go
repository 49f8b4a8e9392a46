// Package mozlz4 reads and writes the container envelope the target browser
// persists its session documents in: an 8-byte magic header, a 4-byte
// little-endian uncompressed length, and an LZ4 block.
package mozlz4

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

var magic = []byte("mozLz40\x00")

// headerLen is the magic plus the uncompressed-length word.
const headerLen = 12

var (
	// ErrBadMagic means the buffer does not start with the mozlz4 magic.
	ErrBadMagic = errors.New("mozlz4: missing or invalid magic header")
	// ErrCorrupt means the envelope is recognized but its payload is not.
	ErrCorrupt = errors.New("mozlz4: corrupt payload")
)

// Decode unwraps a mozlz4 buffer and returns the uncompressed JSON bytes.
// The whole buffer is consumed; there is no streaming mode.
func Decode(data []byte) ([]byte, error) {
	if len(data) < len(magic) || !bytes.Equal(data[:len(magic)], magic) {
		return nil, ErrBadMagic
	}
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: truncated length header", ErrCorrupt)
	}
	size := binary.LittleEndian.Uint32(data[len(magic):headerLen])
	// An LZ4 block expands at most 255x, so a header claiming more than
	// that for the payload at hand cannot be honest. Checked before the
	// allocation it would otherwise control.
	if int64(size) > int64(len(data)-headerLen)*255 {
		return nil, fmt.Errorf("%w: declared size %d exceeds possible expansion", ErrCorrupt, size)
	}
	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data[headerLen:], out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return out[:n], nil
}

// Encode wraps jsonBytes in a mozlz4 envelope. Decode(Encode(x)) recovers x
// byte for byte.
func Encode(jsonBytes []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(jsonBytes))
	buf := make([]byte, headerLen+bound)
	copy(buf, magic)
	binary.LittleEndian.PutUint32(buf[len(magic):headerLen], uint32(len(jsonBytes)))

	var c lz4.Compressor
	n, err := c.CompressBlock(jsonBytes, buf[headerLen:])
	if err != nil {
		return nil, fmt.Errorf("mozlz4: compress: %w", err)
	}
	if n == 0 {
		// Incompressible input: store it as a single literal-only sequence,
		// which is still a valid LZ4 block.
		n = literalBlock(jsonBytes, buf[headerLen:])
	}
	return buf[:headerLen+n], nil
}

// literalBlock writes src into dst as one LZ4 sequence with no match part.
// Returns the number of bytes written.
func literalBlock(src, dst []byte) int {
	n := 0
	length := len(src)
	if length < 15 {
		dst[n] = byte(length) << 4
		n++
	} else {
		dst[n] = 0xF0
		n++
		for rest := length - 15; ; rest -= 255 {
			if rest >= 255 {
				dst[n] = 255
				n++
				continue
			}
			dst[n] = byte(rest)
			n++
			break
		}
	}
	n += copy(dst[n:], src)
	return n
}
