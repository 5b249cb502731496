package nethereum

import (
	"context"
	"errors"
	"finality-benchmark/core"
	"finality-benchmark/util"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

type transactionConfirmer interface {
	confirm(context.Context, *transaction) error
}

// Poll the receipt of `tx` until the node knows it.
// A reverted transaction is an error.
func waitReceipt(ctx context.Context, client backend, tx *transaction, interval time.Duration) (*types.Receipt, error) {
	var receipt *types.Receipt
	var err error

	err = util.Poll(ctx, interval, func() (bool, error) {
		receipt, err = client.TransactionReceipt(ctx, tx.tx.Hash())
		if errors.Is(err, ethereum.NotFound) {
			return false, nil
		} else if err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if receipt.Status == types.ReceiptStatusFailed {
		return nil, fmt.Errorf("transaction '%s' reverted in block %s",
			tx.Id(), receipt.BlockNumber)
	}

	return receipt, nil
}

// Confirms a transaction once its block is buried under enough blocks:
// the transaction is confirmed when `head - block + 1 >= depth`.
type depthTransactionConfirmer struct {
	logger   core.Logger
	client   backend
	depth    uint64
	interval time.Duration
}

func newDepthTransactionConfirmer(logger core.Logger, client backend, depth uint64, interval time.Duration) *depthTransactionConfirmer {
	return &depthTransactionConfirmer{
		logger:   logger,
		client:   client,
		depth:    depth,
		interval: interval,
	}
}

func (this *depthTransactionConfirmer) confirm(ctx context.Context, tx *transaction) error {
	var receipt *types.Receipt
	var included uint64
	var err error

	receipt, err = waitReceipt(ctx, this.client, tx, this.interval)
	if err != nil {
		return err
	}

	included = receipt.BlockNumber.Uint64()

	this.logger.Tracef("transaction '%s' included in block %d", tx.Id(),
		included)

	return util.Poll(ctx, this.interval, func() (bool, error) {
		var head uint64

		head, err = this.client.BlockNumber(ctx)
		if err != nil {
			return false, err
		}

		if head < included {
			return false, nil
		}

		return (head - included + 1) >= this.depth, nil
	})
}

// Confirms a transaction once its block is at or below the last finalized
// block.
type finalizedTransactionConfirmer struct {
	logger    core.Logger
	client    backend
	interval  time.Duration
	finalized time.Duration
}

func newFinalizedTransactionConfirmer(logger core.Logger, client backend, interval, finalized time.Duration) *finalizedTransactionConfirmer {
	return &finalizedTransactionConfirmer{
		logger:    logger,
		client:    client,
		interval:  interval,
		finalized: finalized,
	}
}

func (this *finalizedTransactionConfirmer) confirm(ctx context.Context, tx *transaction) error {
	var tag *big.Int = big.NewInt(int64(rpc.FinalizedBlockNumber))
	var receipt *types.Receipt
	var err error

	receipt, err = waitReceipt(ctx, this.client, tx, this.interval)
	if err != nil {
		return err
	}

	this.logger.Tracef("transaction '%s' included in block %s", tx.Id(),
		receipt.BlockNumber)

	return util.Poll(ctx, this.finalized, func() (bool, error) {
		var header *types.Header

		header, err = this.client.HeaderByNumber(ctx, tag)
		if err != nil {
			return false, err
		}

		this.logger.Tracef("finalized block %s", header.Number)

		return header.Number.Cmp(receipt.BlockNumber) >= 0, nil
	})
}
