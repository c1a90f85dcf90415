package tx

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/bsv-blockchain/go-sdk/transaction"

	"github.com/bitfsorg/libtxbuild-go/wire"
)

const (
	// TxVersion is the version field of every built transaction.
	TxVersion uint32 = 1

	// MaxSequence finalizes an input.
	MaxSequence uint32 = 0xffffffff

	// TxIDLen is the length of a transaction ID in bytes.
	TxIDLen = 32

	// TxIDHexLen is the length of a hex transaction ID.
	TxIDHexLen = TxIDLen * 2
)

// Input spends one previous output.
type Input struct {
	PrevTxID        [TxIDLen]byte // internal byte order
	PrevVout        uint32
	UnlockingScript []byte
	Sequence        uint32
}

// Output locks Value satoshis to LockingScript.
type Output struct {
	Value         uint64
	LockingScript []byte
}

// Transaction is a legacy (pre-segwit) Bitcoin transaction.
type Transaction struct {
	Version  uint32
	Inputs   []*Input
	Outputs  []*Output
	LockTime uint32
}

// Bytes returns the wire serialization:
//
//	version | varint(#in) | inputs | varint(#out) | outputs | locktime
func (t *Transaction) Bytes() []byte {
	b := make([]byte, 0, t.Size())
	b = wire.AppendUint32(b, t.Version)

	b = wire.AppendVarInt(b, uint64(len(t.Inputs)))
	for _, in := range t.Inputs {
		b = append(b, in.PrevTxID[:]...)
		b = wire.AppendUint32(b, in.PrevVout)
		b = wire.AppendVarBytes(b, in.UnlockingScript)
		b = wire.AppendUint32(b, in.Sequence)
	}

	b = wire.AppendVarInt(b, uint64(len(t.Outputs)))
	for _, out := range t.Outputs {
		b = wire.AppendUint64(b, out.Value)
		b = wire.AppendVarBytes(b, out.LockingScript)
	}

	return wire.AppendUint32(b, t.LockTime)
}

// Size returns the serialized length in bytes.
func (t *Transaction) Size() int {
	n := 4 + wire.VarIntSize(uint64(len(t.Inputs))) + wire.VarIntSize(uint64(len(t.Outputs))) + 4
	for _, in := range t.Inputs {
		n += TxIDLen + 4 + wire.VarIntSize(uint64(len(in.UnlockingScript))) + len(in.UnlockingScript) + 4
	}
	for _, out := range t.Outputs {
		n += 8 + wire.VarIntSize(uint64(len(out.LockingScript))) + len(out.LockingScript)
	}
	return n
}

// Hex returns the lowercase hex of Bytes.
func (t *Transaction) Hex() string {
	return wire.EncodeHex(t.Bytes())
}

// TxID returns the display-order transaction ID.
func (t *Transaction) TxID() string {
	return chainhash.DoubleHashH(t.Bytes()).String()
}

// TotalOutput sums the output values.
func (t *Transaction) TotalOutput() uint64 {
	var sum uint64
	for _, out := range t.Outputs {
		sum += out.Value
	}
	return sum
}

// SDK parses the serialization into a go-sdk transaction for broadcast or
// further processing.
func (t *Transaction) SDK() (*transaction.Transaction, error) {
	sdkTx, err := transaction.NewTransactionFromBytes(t.Bytes())
	if err != nil {
		return nil, fmt.Errorf("tx: parse serialized transaction: %w", err)
	}
	return sdkTx, nil
}
