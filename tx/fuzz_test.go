package tx

import (
	"testing"

	"github.com/bitfsorg/libtxbuild-go/address"
)

// FuzzCreateTransactionNoPanic ensures arbitrary inputs either build a
// transaction that the go-sdk can parse or fail with a typed error.
func FuzzCreateTransactionNoPanic(f *testing.F) {
	f.Add(testTxID1, uint32(0), uint64(50000), testTarget, uint64(30000), testKeyHex)
	f.Add("", uint32(0), uint64(1), testTarget, uint64(1), testKeyHex)
	f.Add("abcd", uint32(7), uint64(1), "1", uint64(1), "zz")
	f.Add(testTxID2, uint32(1), ^uint64(0), "3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy", ^uint64(0), testKeyHex)

	f.Fuzz(func(t *testing.T, txid string, vout uint32, value uint64, target string, amount uint64, key string) {
		got, err := CreateTransaction([]UTXO{{TxID: txid, Vout: vout, Value: value}}, target, amount, key)
		if err != nil {
			if got != "" {
				t.Fatalf("non-empty result %q alongside error %v", got, err)
			}
			return
		}
		if _, err := address.Decode(target); err != nil {
			t.Fatalf("built a transaction for undecodable target %q", target)
		}
		parseSDK(t, got)
	})
}

// FuzzParseTxID ensures accepted txids round-trip through internal order.
func FuzzParseTxID(f *testing.F) {
	f.Add(testTxID1)
	f.Add("")
	f.Add("zz")
	f.Fuzz(func(t *testing.T, s string) {
		id, err := parseTxID(0, s)
		if err != nil {
			return
		}
		in := &Input{PrevTxID: id}
		tx := &Transaction{Inputs: []*Input{in}}
		sdkTx := parseSDK(t, tx.Hex())
		if got := sdkTx.Inputs[0].SourceTXID.String(); !equalFoldHex(got, s) {
			t.Fatalf("round trip: got %s, want %s", got, s)
		}
	})
}

func equalFoldHex(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		x, y := a[i], b[i]
		if 'A' <= y && y <= 'F' {
			y += 'a' - 'A'
		}
		if x != y {
			return false
		}
	}
	return true
}
