package tx

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
	sighash "github.com/bsv-blockchain/go-sdk/transaction/sighash"

	"github.com/bitfsorg/libtxbuild-go/keys"
	"github.com/bitfsorg/libtxbuild-go/wire"
)

// SigHashAll is the legacy SIGHASH_ALL type: commit to every input and
// every output. It carries no fork-id bit.
const SigHashAll = uint32(sighash.All)

// SignatureHash computes the legacy signature digest for input idx.
//
// The preimage is a copy of t in which every unlocking script is emptied
// except input idx, which carries subscript (the locking script being
// spent), followed by hashType as 4 little-endian bytes. The digest is
// SHA256(SHA256(preimage)). subscript is used verbatim; OP_CODESEPARATOR
// is not stripped.
func SignatureHash(t *Transaction, idx int, subscript []byte, hashType uint32) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil transaction", ErrSigningFailed)
	}
	if idx < 0 || idx >= len(t.Inputs) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInputIndex, idx, len(t.Inputs))
	}

	preimage := t.sigHashCopy(idx, subscript).Bytes()
	preimage = wire.AppendUint32(preimage, hashType)

	h := chainhash.DoubleHashH(preimage)
	return h[:], nil
}

// sigHashCopy returns a copy of t whose unlocking scripts are all empty
// except input idx, which carries subscript. Outputs are shared.
func (t *Transaction) sigHashCopy(idx int, subscript []byte) *Transaction {
	cp := &Transaction{
		Version:  t.Version,
		Inputs:   make([]*Input, len(t.Inputs)),
		Outputs:  t.Outputs,
		LockTime: t.LockTime,
	}
	for i, in := range t.Inputs {
		c := *in
		c.UnlockingScript = nil
		if i == idx {
			c.UnlockingScript = subscript
		}
		cp.Inputs[i] = &c
	}
	return cp
}

// Sign signs every input of t with priv using SIGHASH_ALL and installs
// <sig+hashtype> <compressed pubkey> unlocking scripts. prevScripts[i] is
// the locking script consumed by input i.
//
// Signatures are deterministic (RFC 6979) and low-S. On error t is left
// unchanged.
func Sign(t *Transaction, prevScripts [][]byte, priv *ec.PrivateKey) error {
	if t == nil {
		return fmt.Errorf("%w: nil transaction", ErrSigningFailed)
	}
	if priv == nil {
		return fmt.Errorf("%w: nil private key", ErrSigningFailed)
	}
	if len(prevScripts) != len(t.Inputs) {
		return fmt.Errorf("%w: have %d locking scripts but tx has %d inputs",
			ErrSigningFailed, len(prevScripts), len(t.Inputs))
	}

	pubKey := keys.PublicKey(priv)
	unlocking := make([][]byte, len(t.Inputs))
	for i := range t.Inputs {
		s, err := signInput(t, i, prevScripts[i], priv, pubKey)
		if err != nil {
			return err
		}
		unlocking[i] = s
	}

	for i, in := range t.Inputs {
		in.UnlockingScript = unlocking[i]
	}
	return nil
}

func signInput(t *Transaction, idx int, subscript []byte, priv *ec.PrivateKey, pubKey []byte) ([]byte, error) {
	digest, err := SignatureHash(t, idx, subscript, SigHashAll)
	if err != nil {
		return nil, fmt.Errorf("%w: input %d: %w", ErrSigningFailed, idx, err)
	}

	sig, err := priv.Sign(digest)
	if err != nil {
		return nil, fmt.Errorf("%w: input %d: %w", ErrSigningFailed, idx, err)
	}
	sigBytes := append(sig.Serialize(), byte(SigHashAll))

	s := &script.Script{}
	if err := s.AppendPushData(sigBytes); err != nil {
		return nil, fmt.Errorf("%w: input %d: push signature: %w", ErrSigningFailed, idx, err)
	}
	if err := s.AppendPushData(pubKey); err != nil {
		return nil, fmt.Errorf("%w: input %d: push public key: %w", ErrSigningFailed, idx, err)
	}
	return s.Bytes(), nil
}
