package address

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress is the parent of every address decoding failure.
	ErrInvalidAddress = errors.New("address: invalid address")

	// ErrEmptyAddress indicates the address string is empty.
	ErrEmptyAddress = fmt.Errorf("%w: empty", ErrInvalidAddress)

	// ErrInvalidBase58 indicates the address contains a non-base58 character.
	ErrInvalidBase58 = fmt.Errorf("%w: invalid base58 encoding", ErrInvalidAddress)

	// ErrChecksumMismatch indicates the Base58Check checksum does not verify.
	ErrChecksumMismatch = fmt.Errorf("%w: checksum mismatch", ErrInvalidAddress)

	// ErrInvalidLength indicates the decoded payload is not 21 bytes.
	ErrInvalidLength = fmt.Errorf("%w: payload must be 21 bytes", ErrInvalidAddress)

	// ErrUnsupportedVersion indicates the version byte is neither P2PKH nor P2SH.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported address type", ErrInvalidAddress)

	// ErrNetworkMismatch indicates the address belongs to a different network.
	ErrNetworkMismatch = fmt.Errorf("%w: network mismatch", ErrInvalidAddress)

	// ErrInvalidHashLength indicates a hash passed for encoding is not 20 bytes.
	ErrInvalidHashLength = errors.New("address: hash must be 20 bytes")

	// ErrUnknownNetwork indicates an unrecognized network name.
	ErrUnknownNetwork = errors.New("address: unknown network")
)
