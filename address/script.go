package address

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/script"
)

// P2PKHScript builds OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY OP_CHECKSIG.
func P2PKHScript(pubKeyHash []byte) ([]byte, error) {
	if len(pubKeyHash) != HashLen {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHashLength, len(pubKeyHash))
	}
	s := &script.Script{}
	if err := s.AppendOpcodes(script.OpDUP, script.OpHASH160); err != nil {
		return nil, err
	}
	if err := s.AppendPushData(pubKeyHash); err != nil {
		return nil, err
	}
	if err := s.AppendOpcodes(script.OpEQUALVERIFY, script.OpCHECKSIG); err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

// P2SHScript builds OP_HASH160 <hash> OP_EQUAL.
func P2SHScript(scriptHash []byte) ([]byte, error) {
	if len(scriptHash) != HashLen {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHashLength, len(scriptHash))
	}
	s := &script.Script{}
	if err := s.AppendOpcodes(script.OpHASH160); err != nil {
		return nil, err
	}
	if err := s.AppendPushData(scriptHash); err != nil {
		return nil, err
	}
	if err := s.AppendOpcodes(script.OpEQUAL); err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}
