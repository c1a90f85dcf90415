// Package keys derives the public key, hash160, locking script and address
// belonging to a raw secp256k1 private key.
package keys

import (
	"errors"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/bitfsorg/libtxbuild-go/address"
	"github.com/bitfsorg/libtxbuild-go/wire"
)

const (
	// PrivateKeyLen is the length of a raw private key scalar.
	PrivateKeyLen = 32

	// CompressedPubKeyLen is the length of a compressed public key.
	CompressedPubKeyLen = 33
)

// ErrInvalidPrivateKey indicates the private key is malformed or out of range.
var ErrInvalidPrivateKey = errors.New("keys: invalid private key")

// ParsePrivateKeyHex parses a 64-character hex private key. The scalar must
// lie in [1, n-1] where n is the secp256k1 group order.
func ParsePrivateKeyHex(s string) (*ec.PrivateKey, error) {
	raw, err := wire.DecodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}
	return ParsePrivateKey(raw)
}

// ParsePrivateKey parses a raw 32-byte private key scalar.
func ParsePrivateKey(raw []byte) (*ec.PrivateKey, error) {
	if len(raw) != PrivateKeyLen {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidPrivateKey, PrivateKeyLen, len(raw))
	}

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(raw); overflow {
		return nil, fmt.Errorf("%w: scalar exceeds curve order", ErrInvalidPrivateKey)
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("%w: scalar is zero", ErrInvalidPrivateKey)
	}
	scalar.Zero()

	priv, _ := ec.PrivateKeyFromBytes(raw)
	return priv, nil
}

// PublicKey returns the 33-byte compressed public key of priv.
func PublicKey(priv *ec.PrivateKey) []byte {
	return priv.PubKey().Compressed()
}

// Hash160 returns RIPEMD160(SHA256(b)).
func Hash160(b []byte) []byte {
	return bsvhash.Hash160(b)
}

// P2PKHScript returns the pay-to-public-key-hash locking script for a
// compressed public key.
func P2PKHScript(pubKey []byte) ([]byte, error) {
	if len(pubKey) != CompressedPubKeyLen {
		return nil, fmt.Errorf("keys: public key must be %d bytes, got %d", CompressedPubKeyLen, len(pubKey))
	}
	return address.P2PKHScript(Hash160(pubKey))
}

// Address returns the P2PKH address of a compressed public key on net.
func Address(pubKey []byte, net *address.Params) (string, error) {
	if len(pubKey) != CompressedPubKeyLen {
		return "", fmt.Errorf("keys: public key must be %d bytes, got %d", CompressedPubKeyLen, len(pubKey))
	}
	if net == nil {
		net = &address.MainNet
	}
	return address.Encode(net.P2PKHVersion, Hash160(pubKey))
}
