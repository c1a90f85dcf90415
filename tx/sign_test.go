package tx

import (
	"encoding/hex"
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libtxbuild-go/keys"
)

// Legacy SIGHASH_ALL digest of input 0 of the 50000-in/30000-out vector.
const vectorChangeSigHash = "c345e30d0ad2e1c7559a3564dad26c5abb2470a47e248584dc0b04d2428d7f17"

func testAssembly(t *testing.T, utxos []UTXO, amount uint64) *Assembly {
	t.Helper()
	a, err := NewBuilder().Assemble(utxos, testTarget, amount, testKeyHex)
	require.NoError(t, err)
	return a
}

func testKey(t *testing.T) *ec.PrivateKey {
	t.Helper()
	priv, err := keys.ParsePrivateKeyHex(testKeyHex)
	require.NoError(t, err)
	return priv
}

// --- SignatureHash ---

func TestSigHashAll_IsLegacyFlag(t *testing.T) {
	assert.Equal(t, uint32(0x01), SigHashAll, "no fork-id bit")
}

func TestSignatureHash_Vector(t *testing.T) {
	a := testAssembly(t, []UTXO{testUTXO(testTxID1, 0, 50000)}, 30000)

	digest, err := SignatureHash(a.Tx, 0, a.PrevScripts[0], SigHashAll)
	require.NoError(t, err)
	assert.Equal(t, vectorChangeSigHash, hex.EncodeToString(digest))
}

func TestSignatureHash_IgnoresExistingUnlockingScripts(t *testing.T) {
	a := testAssembly(t, []UTXO{testUTXO(testTxID1, 0, 50000)}, 30000)
	a.Tx.Inputs[0].UnlockingScript = []byte{0x51, 0x52}

	digest, err := SignatureHash(a.Tx, 0, a.PrevScripts[0], SigHashAll)
	require.NoError(t, err)
	assert.Equal(t, vectorChangeSigHash, hex.EncodeToString(digest))
	assert.Equal(t, []byte{0x51, 0x52}, a.Tx.Inputs[0].UnlockingScript, "tx must not be modified")
}

func TestSignatureHash_PerInput(t *testing.T) {
	a := testAssembly(t, []UTXO{testUTXO(testTxID1, 0, 20000), testUTXO(testTxID2, 1, 15000)}, 30000)

	d0, err := SignatureHash(a.Tx, 0, a.PrevScripts[0], SigHashAll)
	require.NoError(t, err)
	d1, err := SignatureHash(a.Tx, 1, a.PrevScripts[1], SigHashAll)
	require.NoError(t, err)
	assert.NotEqual(t, d0, d1, "the subscript position commits to the input")

	other, err := SignatureHash(a.Tx, 0, a.PrevScripts[0], 0x41)
	require.NoError(t, err)
	assert.NotEqual(t, d0, other, "the hash type is part of the preimage")
}

func TestSignatureHash_Errors(t *testing.T) {
	a := testAssembly(t, []UTXO{testUTXO(testTxID1, 0, 50000)}, 30000)

	_, err := SignatureHash(a.Tx, 1, a.PrevScripts[0], SigHashAll)
	assert.ErrorIs(t, err, ErrInputIndex)
	_, err = SignatureHash(a.Tx, -1, a.PrevScripts[0], SigHashAll)
	assert.ErrorIs(t, err, ErrInputIndex)
	_, err = SignatureHash(nil, 0, nil, SigHashAll)
	assert.ErrorIs(t, err, ErrSigningFailed)
}

// --- Sign ---

func TestSign_VerifiesWithIndependentLibrary(t *testing.T) {
	utxos := []UTXO{testUTXO(testTxID1, 0, 20000), testUTXO(testTxID2, 1, 15000)}
	a := testAssembly(t, utxos, 30000)
	require.NoError(t, Sign(a.Tx, a.PrevScripts, testKey(t)))

	sdkTx := parseSDK(t, a.Tx.Hex())
	for i, in := range sdkTx.Inputs {
		chunks, err := in.UnlockingScript.Chunks()
		require.NoError(t, err)
		require.Len(t, chunks, 2)

		sigWithType := chunks[0].Data
		require.Equal(t, byte(SigHashAll), sigWithType[len(sigWithType)-1])
		sig, err := ecdsa.ParseDERSignature(sigWithType[:len(sigWithType)-1])
		require.NoError(t, err)

		s := sig.S()
		assert.False(t, s.IsOverHalfOrder(), "input %d: S must be low", i)

		pub, err := secp256k1.ParsePubKey(chunks[1].Data)
		require.NoError(t, err)

		digest, err := SignatureHash(a.Tx, i, a.PrevScripts[i], SigHashAll)
		require.NoError(t, err)
		assert.True(t, sig.Verify(digest, pub), "input %d signature must verify", i)
	}
}

func TestSign_BadSignatureDoesNotVerify(t *testing.T) {
	a := testAssembly(t, []UTXO{testUTXO(testTxID1, 0, 50000)}, 30000)
	require.NoError(t, Sign(a.Tx, a.PrevScripts, testKey(t)))

	sdkTx := parseSDK(t, a.Tx.Hex())
	chunks, err := sdkTx.Inputs[0].UnlockingScript.Chunks()
	require.NoError(t, err)
	sig, err := ecdsa.ParseDERSignature(chunks[0].Data[:len(chunks[0].Data)-1])
	require.NoError(t, err)
	pub, err := secp256k1.ParsePubKey(chunks[1].Data)
	require.NoError(t, err)

	// Signing a different subscript yields a different digest.
	digest, err := SignatureHash(a.Tx, 0, []byte{0x51}, SigHashAll)
	require.NoError(t, err)
	assert.False(t, sig.Verify(digest, pub))
}

func TestSign_Errors(t *testing.T) {
	a := testAssembly(t, []UTXO{testUTXO(testTxID1, 0, 50000)}, 30000)
	priv := testKey(t)

	assert.ErrorIs(t, Sign(nil, nil, priv), ErrSigningFailed)
	assert.ErrorIs(t, Sign(a.Tx, a.PrevScripts, nil), ErrSigningFailed)
	assert.ErrorIs(t, Sign(a.Tx, nil, priv), ErrSigningFailed)

	for _, in := range a.Tx.Inputs {
		assert.Empty(t, in.UnlockingScript, "failed signing must leave the tx untouched")
	}
}

func TestSign_Deterministic(t *testing.T) {
	a1 := testAssembly(t, []UTXO{testUTXO(testTxID1, 0, 50000)}, 30000)
	a2 := testAssembly(t, []UTXO{testUTXO(testTxID1, 0, 50000)}, 30000)
	require.NoError(t, Sign(a1.Tx, a1.PrevScripts, testKey(t)))
	require.NoError(t, Sign(a2.Tx, a2.PrevScripts, testKey(t)))
	assert.Equal(t, a1.Tx.Hex(), a2.Tx.Hex())
	assert.Equal(t, vectorChangeHex, a1.Tx.Hex())
}

func TestSign_RandomKeys(t *testing.T) {
	for i := 0; i < 8; i++ {
		priv, err := ec.NewPrivateKey()
		require.NoError(t, err)
		keyHex := hex.EncodeToString(priv.Serialize())

		a, err := NewBuilder().Assemble([]UTXO{testUTXO(testTxID1, 0, 1000)}, testTarget, 100, keyHex)
		require.NoError(t, err)
		require.NoError(t, Sign(a.Tx, a.PrevScripts, a.key))

		chunks := unlockingPushes(t, a.Tx, 0)
		sig, err := ecdsa.ParseDERSignature(chunks[0][:len(chunks[0])-1])
		require.NoError(t, err)
		pub, err := secp256k1.ParsePubKey(chunks[1])
		require.NoError(t, err)

		digest, err := SignatureHash(a.Tx, 0, a.PrevScripts[0], SigHashAll)
		require.NoError(t, err)
		assert.True(t, sig.Verify(digest, pub))
	}
}

// unlockingPushes returns the data pushes of input idx's unlocking script
// as parsed by the go-sdk.
func unlockingPushes(t *testing.T, tx *Transaction, idx int) [][]byte {
	t.Helper()
	sdkTx, err := tx.SDK()
	require.NoError(t, err)
	chunks, err := sdkTx.Inputs[idx].UnlockingScript.Chunks()
	require.NoError(t, err)

	out := make([][]byte, len(chunks))
	for i, c := range chunks {
		out[i] = c.Data
	}
	return out
}
