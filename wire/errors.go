package wire

import "errors"

var (
	// ErrOddLength indicates a hex string has an odd number of characters.
	ErrOddLength = errors.New("wire: hex string has odd length")

	// ErrInvalidHex indicates a hex string contains a non-hex character.
	ErrInvalidHex = errors.New("wire: invalid hex character")

	// ErrShortBuffer indicates there are not enough bytes to decode a value.
	ErrShortBuffer = errors.New("wire: buffer too short")

	// ErrNonCanonicalVarInt indicates a varint used a longer form than needed.
	ErrNonCanonicalVarInt = errors.New("wire: non-canonical varint encoding")
)
