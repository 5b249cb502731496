package nsolana

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

type transaction struct {
	tx *solana.Transaction

	// Once the chain reaches this height, the blockhash of the
	// transaction has expired.
	lastValidHeight uint64
}

func (this *transaction) Id() string {
	return this.tx.Signatures[0].String()
}

func (this *transaction) signature() solana.Signature {
	return this.tx.Signatures[0]
}

func newTransferTransaction(amount uint64, from solana.PrivateKey, to solana.PublicKey, blockhash solana.Hash, lastValidHeight uint64) (*transaction, error) {
	payer := from.PublicKey()

	instruction := system.NewTransferInstruction(
		amount,
		payer,
		to).Build()

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		blockhash,
		solana.TransactionPayer(payer))
	if err != nil {
		return nil, err
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payer) {
			return &from
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &transaction{tx, lastValidHeight}, nil
}
