package nnear

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/mr-tron/base58"
)

const (
	key_type_ed25519 uint8 = 0

	action_transfer uint8 = 3
)

// Borsh layouts of the NEAR transaction types.
// Enums are encoded as their variant index followed by the variant content,
// which is how the structures below are laid out.

type borshPublicKey struct {
	KeyType uint8
	Data    [ed25519.PublicKeySize]byte
}

type borshSignature struct {
	KeyType uint8
	Data    [ed25519.SignatureSize]byte
}

// Little endian 128 bits integer.
type borshU128 struct {
	Lo uint64
	Hi uint64
}

type borshTransferAction struct {
	Kind    uint8
	Deposit borshU128
}

type borshTransaction struct {
	SignerId   string
	PublicKey  borshPublicKey
	Nonce      uint64
	ReceiverId string
	BlockHash  [32]byte
	Actions    []borshTransferAction
}

type borshSignedTransaction struct {
	Transaction borshTransaction
	Signature   borshSignature
}

func newU128(value *big.Int) (borshU128, error) {
	var mask *big.Int = new(big.Int).SetUint64(^uint64(0))

	if (value.Sign() < 0) || (value.BitLen() > 128) {
		return borshU128{}, fmt.Errorf("value %s out of u128 range",
			value)
	}

	return borshU128{
		Lo: new(big.Int).And(value, mask).Uint64(),
		Hi: new(big.Int).Rsh(value, 64).Uint64(),
	}, nil
}

func borshEncode(value interface{}) ([]byte, error) {
	var buffer bytes.Buffer
	var err error

	err = bin.NewBorshEncoder(&buffer).Encode(value)
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

type transaction struct {
	hash   string // base58 sha256 of the unsigned transaction
	signed []byte // Borsh encoded signed transaction
	nonce  uint64
}

func (this *transaction) Id() string {
	return this.hash
}

func newTransferTransaction(signer string, private ed25519.PrivateKey, nonce uint64, receiver string, blockHash [32]byte, amount *big.Int) (*transaction, error) {
	var signed borshSignedTransaction
	var tx borshTransaction
	var deposit borshU128
	var encoded []byte
	var digest [32]byte
	var err error

	deposit, err = newU128(amount)
	if err != nil {
		return nil, err
	}

	tx = borshTransaction{
		SignerId:   signer,
		PublicKey:  borshPublicKey{KeyType: key_type_ed25519},
		Nonce:      nonce,
		ReceiverId: receiver,
		BlockHash:  blockHash,
		Actions: []borshTransferAction{
			{Kind: action_transfer, Deposit: deposit},
		},
	}

	copy(tx.PublicKey.Data[:], private.Public().(ed25519.PublicKey))

	encoded, err = borshEncode(&tx)
	if err != nil {
		return nil, err
	}

	digest = sha256.Sum256(encoded)

	signed.Transaction = tx
	signed.Signature.KeyType = key_type_ed25519
	copy(signed.Signature.Data[:], ed25519.Sign(private, digest[:]))

	encoded, err = borshEncode(&signed)
	if err != nil {
		return nil, err
	}

	return &transaction{
		hash:   base58.Encode(digest[:]),
		signed: encoded,
		nonce:  nonce,
	}, nil
}
