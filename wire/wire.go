// Package wire holds the byte-level primitives of the legacy transaction
// format: little-endian integers, compact-size varints and hex.
package wire

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Varint prefixes for values that do not fit in a single byte.
const (
	varIntPrefix16 = 0xfd
	varIntPrefix32 = 0xfe
	varIntPrefix64 = 0xff
)

// AppendUint32 appends v to b in little-endian order.
func AppendUint32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

// AppendUint64 appends v to b in little-endian order.
func AppendUint64(b []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(b, v)
}

// Uint32 decodes a little-endian uint32 from the first 4 bytes of b.
func Uint32(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, fmt.Errorf("%w: need 4 bytes, have %d", ErrShortBuffer, len(b))
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 decodes a little-endian uint64 from the first 8 bytes of b.
func Uint64(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, fmt.Errorf("%w: need 8 bytes, have %d", ErrShortBuffer, len(b))
	}
	return binary.LittleEndian.Uint64(b), nil
}

// VarIntSize returns the number of bytes AppendVarInt writes for v.
func VarIntSize(v uint64) int {
	switch {
	case v < varIntPrefix16:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// AppendVarInt appends the compact-size encoding of v to b.
func AppendVarInt(b []byte, v uint64) []byte {
	switch {
	case v < varIntPrefix16:
		return append(b, byte(v))
	case v <= 0xffff:
		b = append(b, varIntPrefix16)
		return binary.LittleEndian.AppendUint16(b, uint16(v))
	case v <= 0xffffffff:
		b = append(b, varIntPrefix32)
		return binary.LittleEndian.AppendUint32(b, uint32(v))
	default:
		b = append(b, varIntPrefix64)
		return binary.LittleEndian.AppendUint64(b, v)
	}
}

// ReadVarInt decodes a compact-size integer from the front of b and returns
// the value and the number of bytes consumed.
func ReadVarInt(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, fmt.Errorf("%w: empty varint", ErrShortBuffer)
	}

	var (
		v     uint64
		n     int
		least uint64
	)
	switch b[0] {
	case varIntPrefix16:
		n, least = 3, varIntPrefix16
		if len(b) < n {
			return 0, 0, fmt.Errorf("%w: varint needs %d bytes, have %d", ErrShortBuffer, n, len(b))
		}
		v = uint64(binary.LittleEndian.Uint16(b[1:]))
	case varIntPrefix32:
		n, least = 5, 0x10000
		if len(b) < n {
			return 0, 0, fmt.Errorf("%w: varint needs %d bytes, have %d", ErrShortBuffer, n, len(b))
		}
		v = uint64(binary.LittleEndian.Uint32(b[1:]))
	case varIntPrefix64:
		n, least = 9, 0x100000000
		if len(b) < n {
			return 0, 0, fmt.Errorf("%w: varint needs %d bytes, have %d", ErrShortBuffer, n, len(b))
		}
		v = binary.LittleEndian.Uint64(b[1:])
	default:
		return uint64(b[0]), 1, nil
	}

	if v < least {
		return 0, 0, fmt.Errorf("%w: value %d encoded in %d bytes", ErrNonCanonicalVarInt, v, n)
	}
	return v, n, nil
}

// AppendVarBytes appends a varint length prefix followed by data.
func AppendVarBytes(b, data []byte) []byte {
	b = AppendVarInt(b, uint64(len(data)))
	return append(b, data...)
}

// EncodeHex returns the lower-case hex encoding of b.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// IsHex reports whether s consists only of hex digits (either case).
// The empty string is not hex.
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if fromHexChar(s[i]) < 0 {
			return false
		}
	}
	return true
}

// DecodeHex decodes s, requiring an even number of hex digits.
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: %d characters", ErrOddLength, len(s))
	}
	for i := 0; i < len(s); i++ {
		if fromHexChar(s[i]) < 0 {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidHex, s[i], i)
		}
	}
	return hex.DecodeString(s)
}

// Reverse returns a reversed copy of b. Transaction IDs are displayed in
// the reverse of their wire order.
func Reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

func fromHexChar(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c - 'a' + 10)
	case 'A' <= c && c <= 'F':
		return int(c - 'A' + 10)
	}
	return -1
}
