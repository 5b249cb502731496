package nethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type transaction struct {
	tx *types.Transaction
}

func (this *transaction) Id() string {
	return this.tx.Hash().Hex()
}

// Fee parameters of an EIP-1559 transaction.
type parameters struct {
	chainId *big.Int
	tipCap  *big.Int
	feeCap  *big.Int
	gas     uint64
}

// fetchParameters queries the node for the fee parameters of a transfer of
// `amount` wei from `from` to `to`.
// The fee cap leaves room for the base fee to double before inclusion.
func fetchParameters(ctx context.Context, client backend, chainId *big.Int, from, to common.Address, amount *big.Int) (*parameters, error) {
	var header *types.Header
	var tipCap, feeCap *big.Int
	var gas uint64
	var err error

	tipCap, err = client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest tip cap: %w", err)
	}

	header, err = client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("latest header: %w", err)
	}

	feeCap = new(big.Int).Set(tipCap)
	if header.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(header.BaseFee,
			big.NewInt(2)))
	}

	gas, err = client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: amount,
	})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	return &parameters{
		chainId: chainId,
		tipCap:  tipCap,
		feeCap:  feeCap,
		gas:     gas,
	}, nil
}

func newTransferTransaction(params *parameters, nonce uint64, from *ecdsa.PrivateKey, to common.Address, amount *big.Int) (*transaction, error) {
	var stx *types.Transaction
	var err error

	stx, err = types.SignTx(types.NewTx(&types.DynamicFeeTx{
		ChainID:   params.chainId,
		Nonce:     nonce,
		GasTipCap: params.tipCap,
		GasFeeCap: params.feeCap,
		Gas:       params.gas,
		To:        &to,
		Value:     amount,
	}), types.LatestSignerForChainID(params.chainId), from)
	if err != nil {
		return nil, err
	}

	return &transaction{stx}, nil
}
