package tx

import (
	"go.uber.org/zap"

	"github.com/bitfsorg/libtxbuild-go/address"
)

// Builder turns UTXOs, a target address and an amount into a signed
// transaction. A Builder holds no per-call state and is safe for
// concurrent use.
type Builder struct {
	net      *address.Params
	fee      FeePolicy
	change   ChangePolicy
	fallback ScriptFallback
	log      *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithNetwork pins the builder to net. Target addresses are decoded with
// net's version bytes, so custom networks from address.LoadCustomNetwork
// work. Addresses of other networks are rejected with
// address.ErrNetworkMismatch and the change address is rendered on net.
// Without it the target decides.
func WithNetwork(net *address.Params) Option {
	return func(b *Builder) { b.net = net }
}

// WithFeePolicy sets the fee policy. The default is ZeroFee.
func WithFeePolicy(p FeePolicy) Option {
	return func(b *Builder) {
		if p != nil {
			b.fee = p
		}
	}
}

// WithChangePolicy sets the change policy. The default keeps any
// positive change.
func WithChangePolicy(p ChangePolicy) Option {
	return func(b *Builder) { b.change = p }
}

// WithScriptFallback sets how UTXOs without a script_pub_key are
// resolved. The default is AssumeSenderOwned.
func WithScriptFallback(f ScriptFallback) Option {
	return func(b *Builder) {
		if f != nil {
			b.fallback = f
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBuilder returns a Builder with zero fee, no dust threshold and the
// sender-ownership assumption for unlabeled UTXOs.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		fee:      ZeroFee,
		fallback: AssumeSenderOwned,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Result describes a built transaction.
type Result struct {
	Tx            *Transaction
	Hex           string
	TxID          string
	Fee           uint64
	Change        uint64
	ChangeAddress string // empty when there is no change output
	NumInputs     int
	NumOutputs    int
}

// Build assembles and signs a transaction paying amount satoshis to
// target from utxos, all signed by the key in privKeyHex.
func (b *Builder) Build(utxos []UTXO, target string, amount uint64, privKeyHex string) (*Result, error) {
	a, err := b.Assemble(utxos, target, amount, privKeyHex)
	if err != nil {
		b.log.Debug("transaction assembly failed", zap.Error(err))
		return nil, err
	}
	b.log.Debug("assembled transaction",
		zap.Int("inputs", len(a.Tx.Inputs)),
		zap.Int("outputs", len(a.Tx.Outputs)),
		zap.Uint64("total_input", a.TotalInput),
		zap.Uint64("amount", amount),
		zap.Uint64("fee", a.Fee),
		zap.Uint64("change", a.Change),
		zap.Stringer("target_kind", a.Target.Kind),
	)

	if err := Sign(a.Tx, a.PrevScripts, a.key); err != nil {
		b.log.Debug("transaction signing failed", zap.Error(err))
		return nil, err
	}
	for i, in := range a.Tx.Inputs {
		b.log.Debug("signed input",
			zap.Int("index", i),
			zap.Uint32("vout", in.PrevVout),
			zap.Int("unlocking_script_len", len(in.UnlockingScript)),
		)
	}

	r := &Result{
		Tx:         a.Tx,
		Hex:        a.Tx.Hex(),
		TxID:       a.Tx.TxID(),
		Fee:        a.Fee,
		Change:     a.Change,
		NumInputs:  len(a.Tx.Inputs),
		NumOutputs: len(a.Tx.Outputs),
	}
	if a.HasChange() {
		r.ChangeAddress = a.ChangeAddress
	}
	b.log.Info("built transaction",
		zap.String("txid", r.TxID),
		zap.Int("size", len(r.Hex)/2),
		zap.Uint64("fee", r.Fee),
	)
	return r, nil
}

var defaultBuilder = NewBuilder()

// CreateTransaction builds and signs a legacy P2PKH-spending transaction
// with the default policies and returns its lowercase hex serialization.
func CreateTransaction(utxos []UTXO, target string, amount uint64, privKeyHex string) (string, error) {
	r, err := defaultBuilder.Build(utxos, target, amount, privKeyHex)
	if err != nil {
		return "", err
	}
	return r.Hex, nil
}
