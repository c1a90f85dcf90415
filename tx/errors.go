package tx

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is the parent of the top-level argument checks,
	// which all run before any key or address work.
	ErrInvalidParameter = errors.New("tx: invalid parameter")

	// ErrPrivateKeyMissing indicates the private key argument is empty.
	ErrPrivateKeyMissing = fmt.Errorf("%w: private key is missing", ErrInvalidParameter)

	// ErrNoUTXOs indicates the UTXO list is empty.
	ErrNoUTXOs = fmt.Errorf("%w: no UTXOs provided", ErrInvalidParameter)

	// ErrTargetAddressMissing indicates the target address argument is empty.
	ErrTargetAddressMissing = fmt.Errorf("%w: target address is missing", ErrInvalidParameter)

	// ErrInvalidAmount indicates the requested amount is zero.
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrInvalidParameter)

	// ErrInvalidUTXO indicates a malformed UTXO record. Failures carry a
	// *UTXOError with the offending index and defect.
	ErrInvalidUTXO = errors.New("tx: invalid UTXO")

	// ErrInvalidAddress indicates the target address is malformed or unsupported.
	ErrInvalidAddress = errors.New("tx: invalid target address")

	// ErrInsufficientFunds indicates the UTXOs cannot cover the amount plus fee.
	ErrInsufficientFunds = errors.New("tx: insufficient funds")

	// ErrSigningFailed indicates key parsing or signature production failed.
	ErrSigningFailed = errors.New("tx: signing failed")

	// ErrInputIndex indicates an input index outside the transaction.
	ErrInputIndex = errors.New("tx: input index out of range")
)

// UTXO defects reported in UTXOError.Reason.
const (
	ReasonEmptyTxID          = "empty txid"
	ReasonTxIDNotHex         = "txid must be hexadecimal"
	ReasonEmptyScriptPubKey  = "empty script_pub_key"
	ReasonScriptPubKeyNotHex = "script_pub_key must be hexadecimal"
	ReasonMissingScript      = "missing script_pub_key"
	ReasonValueOverflow      = "total value overflows 64 bits"
)

// UTXOError reports a defect in the UTXO at Index of the caller's list.
//
// Reason is the bare defect message, one of the Reason* constants or a
// txid length message such as "txid length must be 64, got 4". Error
// renders it as "tx: invalid UTXO: <Reason> (utxo <Index>)", so the text
// after the package prefix reads "invalid UTXO: empty txid" and so on.
type UTXOError struct {
	Index  int
	Reason string
}

func (e *UTXOError) Error() string {
	return fmt.Sprintf("tx: invalid UTXO: %s (utxo %d)", e.Reason, e.Index)
}

// Unwrap makes every UTXOError match ErrInvalidUTXO.
func (e *UTXOError) Unwrap() error {
	return ErrInvalidUTXO
}

func txIDLengthReason(got int) string {
	return fmt.Sprintf("txid length must be %d, got %d", TxIDHexLen, got)
}
