package tx

import (
	"fmt"
	"math"

	"github.com/bitfsorg/libtxbuild-go/keys"
	"github.com/bitfsorg/libtxbuild-go/wire"
)

const (
	// StandardDustLimit is the relay-policy minimum for a P2PKH output in
	// satoshis. Builders do not apply it unless configured to.
	StandardDustLimit = uint64(546)

	// P2PKHUnlockingScriptMaxLen bounds a signed P2PKH scriptSig:
	// push(72-byte DER signature + hashtype) and push(33-byte pubkey).
	P2PKHUnlockingScriptMaxLen = 1 + 72 + 1 + keys.CompressedPubKeyLen
)

// FeePolicy returns the fee in satoshis for a transaction of the given
// estimated signed size in bytes.
type FeePolicy func(estimatedSize int) uint64

// ZeroFee pays no fee. Every satoshi not sent to the target is returned
// as change.
func ZeroFee(int) uint64 { return 0 }

// FeeRate charges satPerKB satoshis per 1000 bytes, rounded up.
func FeeRate(satPerKB uint64) FeePolicy {
	return func(size int) uint64 {
		return EstimateFee(size, satPerKB)
	}
}

// EstimateFee calculates ceil(size * feeRate / 1000). A fee that does not
// fit in 64 bits saturates at math.MaxUint64, which no UTXO set can pay.
func EstimateFee(size int, feeRate uint64) uint64 {
	if size <= 0 || feeRate == 0 {
		return 0
	}
	if feeRate > (math.MaxUint64-999)/uint64(size) {
		return math.MaxUint64
	}
	return (uint64(size)*feeRate + 999) / 1000
}

// EstimateTxSize returns the signed size of t, assuming every input will
// carry a maximum-length P2PKH unlocking script. Existing unlocking
// scripts are ignored.
func EstimateTxSize(t *Transaction) int {
	unsigned := t.Size()
	for _, in := range t.Inputs {
		unsigned -= wire.VarIntSize(uint64(len(in.UnlockingScript))) + len(in.UnlockingScript)
	}
	perInput := wire.VarIntSize(P2PKHUnlockingScriptMaxLen) + P2PKHUnlockingScriptMaxLen
	return unsigned + len(t.Inputs)*perInput
}

// ChangePolicy decides whether leftover value becomes a change output.
type ChangePolicy struct {
	// DustLimit is the largest change value that is dropped to the fee
	// instead of creating an output. Zero keeps any positive change.
	DustLimit uint64
}

// Keep reports whether change deserves an output.
func (p ChangePolicy) Keep(change uint64) bool {
	return change > p.DustLimit
}

// ScriptFallback supplies the locking script of a UTXO that arrived
// without a script_pub_key. senderScript is the P2PKH script of the
// signing key.
type ScriptFallback func(index int, u UTXO, senderScript []byte) ([]byte, error)

// AssumeSenderOwned treats unlabeled UTXOs as locked to the signing key.
// A wrong assumption yields a transaction that nodes will reject.
func AssumeSenderOwned(_ int, _ UTXO, senderScript []byte) ([]byte, error) {
	out := make([]byte, len(senderScript))
	copy(out, senderScript)
	return out, nil
}

// RejectUnlabeled refuses UTXOs that do not carry their own script.
func RejectUnlabeled(index int, _ UTXO, _ []byte) ([]byte, error) {
	return nil, &UTXOError{Index: index, Reason: ReasonMissingScript}
}

// resolveScript returns the locking script consumed by u.
func resolveScript(index int, u UTXO, senderScript []byte, fallback ScriptFallback) ([]byte, error) {
	if u.ScriptPubKey == nil {
		s, err := fallback(index, u, senderScript)
		if err != nil {
			return nil, err
		}
		if len(s) == 0 {
			return nil, &UTXOError{Index: index, Reason: ReasonEmptyScriptPubKey}
		}
		return s, nil
	}

	if *u.ScriptPubKey == "" {
		return nil, &UTXOError{Index: index, Reason: ReasonEmptyScriptPubKey}
	}
	s, err := wire.DecodeHex(*u.ScriptPubKey)
	if err != nil {
		return nil, &UTXOError{Index: index, Reason: fmt.Sprintf("%s: %v", ReasonScriptPubKeyNotHex, err)}
	}
	return s, nil
}
