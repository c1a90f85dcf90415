package tx

import (
	"fmt"
	"math"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/bitfsorg/libtxbuild-go/address"
	"github.com/bitfsorg/libtxbuild-go/keys"
	"github.com/bitfsorg/libtxbuild-go/wire"
)

// Assembly is an unsigned transaction together with everything needed to
// sign it.
type Assembly struct {
	Tx *Transaction

	// PrevScripts[i] is the locking script consumed by Tx.Inputs[i].
	PrevScripts [][]byte

	// ChangeScript is the sender's P2PKH script. It locks the change
	// output when there is one.
	ChangeScript  []byte
	ChangeAddress string

	TotalInput uint64
	Fee        uint64
	Change     uint64 // zero when no change output was created

	Target *address.Address
	key    *ec.PrivateKey
}

// HasChange reports whether the transaction carries a change output.
func (a *Assembly) HasChange() bool {
	return a.Change > 0
}

// Assemble validates the request and lays out the unsigned transaction:
// one input per UTXO in caller order, the payment output, then change.
func (b *Builder) Assemble(utxos []UTXO, target string, amount uint64, privKeyHex string) (*Assembly, error) {
	// 1. Parameter presence, in a fixed order.
	if privKeyHex == "" {
		return nil, ErrPrivateKeyMissing
	}
	if len(utxos) == 0 {
		return nil, ErrNoUTXOs
	}
	if target == "" {
		return nil, ErrTargetAddressMissing
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	// 2. UTXO outpoints.
	prevTxIDs := make([][TxIDLen]byte, len(utxos))
	for i, u := range utxos {
		id, err := parseTxID(i, u.TxID)
		if err != nil {
			return nil, err
		}
		prevTxIDs[i] = id
	}

	// 3. Target address.
	addr, err := address.DecodeForNetwork(target, b.net)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	paymentScript, err := addr.LockingScript()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	// 4. Sender key and scripts.
	priv, err := keys.ParsePrivateKeyHex(privKeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	pubKey := keys.PublicKey(priv)
	senderScript, err := keys.P2PKHScript(pubKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	// addr.Net is the pinned network when there is one.
	changeAddr, err := keys.Address(pubKey, addr.Net)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	prevScripts := make([][]byte, len(utxos))
	for i, u := range utxos {
		s, err := resolveScript(i, u, senderScript, b.fallback)
		if err != nil {
			return nil, err
		}
		prevScripts[i] = s
	}

	// 5. Funds.
	var total uint64
	for i, u := range utxos {
		if u.Value > math.MaxUint64-total {
			return nil, &UTXOError{Index: i, Reason: ReasonValueOverflow}
		}
		total += u.Value
	}
	if total < amount {
		return nil, fmt.Errorf("%w: have %d satoshis, need %d", ErrInsufficientFunds, total, amount)
	}

	// 6. Layout.
	t := &Transaction{
		Version:  TxVersion,
		Inputs:   make([]*Input, len(utxos)),
		LockTime: 0,
	}
	for i, u := range utxos {
		t.Inputs[i] = &Input{
			PrevTxID: prevTxIDs[i],
			PrevVout: u.Vout,
			Sequence: MaxSequence,
		}
	}

	a := &Assembly{
		Tx:            t,
		PrevScripts:   prevScripts,
		ChangeScript:  senderScript,
		ChangeAddress: changeAddr,
		TotalInput:    total,
		Target:        addr,
		key:           priv,
	}
	if err := b.layoutOutputs(a, paymentScript, amount); err != nil {
		return nil, err
	}
	return a, nil
}

// layoutOutputs adds the payment output and, when the leftover after the
// fee clears the change policy, a change output to the sender.
func (b *Builder) layoutOutputs(a *Assembly, paymentScript []byte, amount uint64) error {
	t := a.Tx
	payment := &Output{Value: amount, LockingScript: paymentScript}
	change := &Output{LockingScript: a.ChangeScript}

	t.Outputs = []*Output{payment, change}
	feeWithChange := b.fee(EstimateTxSize(t))
	if fee, ok := addNoOverflow(amount, feeWithChange); ok && a.TotalInput >= fee {
		if left := a.TotalInput - fee; b.change.Keep(left) {
			change.Value = left
			a.Fee = feeWithChange
			a.Change = left
			return nil
		}
	}

	t.Outputs = []*Output{payment}
	feeAlone := b.fee(EstimateTxSize(t))
	need, ok := addNoOverflow(amount, feeAlone)
	if !ok || a.TotalInput < need {
		return fmt.Errorf("%w: have %d satoshis, need %d (amount=%d + fee=%d)",
			ErrInsufficientFunds, a.TotalInput, need, amount, feeAlone)
	}

	// Leftover below the change threshold goes to the miner.
	a.Fee = a.TotalInput - amount
	return nil
}

// parseTxID validates a display-order hex txid and returns it in internal
// byte order.
func parseTxID(index int, s string) ([TxIDLen]byte, error) {
	var id [TxIDLen]byte
	switch {
	case s == "":
		return id, &UTXOError{Index: index, Reason: ReasonEmptyTxID}
	case !wire.IsHex(s):
		return id, &UTXOError{Index: index, Reason: ReasonTxIDNotHex}
	case len(s) != TxIDHexLen:
		return id, &UTXOError{Index: index, Reason: txIDLengthReason(len(s))}
	}

	raw, err := wire.DecodeHex(s)
	if err != nil {
		return id, &UTXOError{Index: index, Reason: ReasonTxIDNotHex}
	}
	copy(id[:], wire.Reverse(raw))
	return id, nil
}

func addNoOverflow(a, b uint64) (uint64, bool) {
	if b > math.MaxUint64-a {
		return 0, false
	}
	return a + b, true
}
