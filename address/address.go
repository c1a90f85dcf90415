// Package address decodes and encodes Base58Check addresses and maps them
// to their locking scripts.
//
// A Base58Check address is base58(version || hash160 || checksum), where the
// checksum is the first 4 bytes of SHA256(SHA256(version || hash160)). The
// version byte selects both the network and the script kind.
package address

import (
	"bytes"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/mr-tron/base58"
)

const (
	// HashLen is the length of a hash160 carried by an address.
	HashLen = 20

	// ChecksumLen is the length of the Base58Check checksum.
	ChecksumLen = 4

	payloadLen = 1 + HashLen
)

// ScriptKind identifies the locking script an address stands for.
type ScriptKind int

const (
	// P2PKH is pay-to-public-key-hash.
	P2PKH ScriptKind = iota + 1
	// P2SH is pay-to-script-hash.
	P2SH
)

func (k ScriptKind) String() string {
	switch k {
	case P2PKH:
		return "p2pkh"
	case P2SH:
		return "p2sh"
	}
	return fmt.Sprintf("ScriptKind(%d)", int(k))
}

// Address is a decoded Base58Check address.
type Address struct {
	Version byte
	Hash    [HashLen]byte
	Kind    ScriptKind
	Net     *Params
}

// Decode parses a Base58Check address string, resolving its version byte
// against the predefined networks.
func Decode(s string) (*Address, error) {
	payload, err := decodePayload(s)
	if err != nil {
		return nil, err
	}

	net, kind, ok := LookupVersion(payload[0])
	if !ok {
		return nil, fmt.Errorf("%w: version 0x%02x", ErrUnsupportedVersion, payload[0])
	}
	return newAddress(payload, kind, net), nil
}

// DecodeForNetwork parses a Base58Check address that must belong to net.
// Unlike Decode it accepts the version bytes of custom networks.
func DecodeForNetwork(s string, net *Params) (*Address, error) {
	if net == nil {
		return Decode(s)
	}
	payload, err := decodePayload(s)
	if err != nil {
		return nil, err
	}

	kind, ok := net.kindOf(payload[0])
	if !ok {
		if other, _, known := LookupVersion(payload[0]); known {
			return nil, fmt.Errorf("%w: %s address on %s", ErrNetworkMismatch, other.Name, net.Name)
		}
		return nil, fmt.Errorf("%w: version 0x%02x on %s", ErrUnsupportedVersion, payload[0], net.Name)
	}
	return newAddress(payload, kind, net), nil
}

// decodePayload returns version || hash160 after checking the checksum and
// the payload length.
func decodePayload(s string) ([]byte, error) {
	if s == "" {
		return nil, ErrEmptyAddress
	}

	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBase58, err)
	}
	if len(raw) < ChecksumLen {
		return nil, fmt.Errorf("%w: decoded %d bytes", ErrInvalidLength, len(raw))
	}

	payload, sum := raw[:len(raw)-ChecksumLen], raw[len(raw)-ChecksumLen:]
	if !bytes.Equal(checksum(payload), sum) {
		return nil, ErrChecksumMismatch
	}
	if len(payload) != payloadLen {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, len(payload))
	}
	return payload, nil
}

func newAddress(payload []byte, kind ScriptKind, net *Params) *Address {
	a := &Address{
		Version: payload[0],
		Kind:    kind,
		Net:     net,
	}
	copy(a.Hash[:], payload[1:])
	return a
}

// Encode returns the Base58Check encoding of version || hash.
func Encode(version byte, hash []byte) (string, error) {
	if len(hash) != HashLen {
		return "", fmt.Errorf("%w: got %d", ErrInvalidHashLength, len(hash))
	}
	payload := make([]byte, 0, payloadLen+ChecksumLen)
	payload = append(payload, version)
	payload = append(payload, hash...)
	payload = append(payload, checksum(payload)...)
	return base58.Encode(payload), nil
}

// String returns the Base58Check form of the address.
func (a *Address) String() string {
	s, _ := Encode(a.Version, a.Hash[:])
	return s
}

// LockingScript returns the scriptPubKey that pays to this address.
func (a *Address) LockingScript() ([]byte, error) {
	switch a.Kind {
	case P2PKH:
		return P2PKHScript(a.Hash[:])
	case P2SH:
		return P2SHScript(a.Hash[:])
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, a.Kind)
}

// InNetwork reports whether the address was encoded for net.
func (a *Address) InNetwork(net *Params) bool {
	_, ok := net.kindOf(a.Version)
	return ok
}

// checksum returns the first 4 bytes of the double SHA-256 of payload.
func checksum(payload []byte) []byte {
	h := chainhash.DoubleHashH(payload)
	return h[:ChecksumLen]
}
