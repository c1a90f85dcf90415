package tx

// UTXO is an unspent output offered as an input to the new transaction.
//
// Address and ScriptPubKey are optional; nil means absent. ScriptPubKey is
// the hex locking script of the spent output and is authoritative when
// present. Address is advisory only and never checked against ScriptPubKey.
type UTXO struct {
	TxID         string  `json:"txid"`  // 64 hex chars, display (reversed) order
	Vout         uint32  `json:"vout"`
	Value        uint64  `json:"value"` // satoshis
	Address      *string `json:"address,omitempty"`
	ScriptPubKey *string `json:"script_pub_key,omitempty"`
}

// HasScriptPubKey reports whether the UTXO carries its own locking script.
func (u UTXO) HasScriptPubKey() bool {
	return u.ScriptPubKey != nil
}
