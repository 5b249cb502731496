package nsolana

import (
	"context"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"fmt"
	"math/big"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const sol_decimals = 9

type BlockchainClient struct {
	logger   core.Logger
	client   backend
	private  solana.PrivateKey
	interval time.Duration
}

func newClient(logger core.Logger, client backend, private solana.PrivateKey, interval time.Duration) *BlockchainClient {
	return &BlockchainClient{
		logger:   logger,
		client:   client,
		private:  private,
		interval: interval,
	}
}

func (this *BlockchainClient) Address() string {
	return this.private.PublicKey().String()
}

func (this *BlockchainClient) Decimals() int {
	return sol_decimals
}

// Balance is read at the confirmed level so a fee debited by a transaction
// confirmed at that level is already visible.
func (this *BlockchainClient) Balance(ctx context.Context) (*big.Int, error) {
	result, err := this.client.GetBalance(ctx, this.private.PublicKey(),
		rpc.CommitmentConfirmed)
	if err != nil {
		return nil, err
	}

	return new(big.Int).SetUint64(result.Value), nil
}

func (this *BlockchainClient) Prepare(ctx context.Context, to string, amount *big.Int) (core.Transaction, error) {
	dest, err := solana.PublicKeyFromBase58(to)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient address '%s': %w", to,
			err)
	}

	if !amount.IsUint64() {
		return nil, fmt.Errorf("invalid amount %s lamports", amount)
	}

	latest, err := this.client.GetLatestBlockhash(ctx,
		rpc.CommitmentFinalized)
	if err != nil {
		return nil, fmt.Errorf("latest blockhash: %w", err)
	}

	tx, err := newTransferTransaction(amount.Uint64(), this.private, dest,
		latest.Value.Blockhash, latest.Value.LastValidBlockHeight)
	if err != nil {
		return nil, err
	}

	this.logger.Tracef("sign transaction '%s' (blockhash = %s)", tx.Id(),
		latest.Value.Blockhash)

	return tx, nil
}

func (this *BlockchainClient) Submit(ctx context.Context, tx core.Transaction, mode configs.FinalityMode) error {
	stx := tx.(*transaction)

	this.logger.Tracef("submit transaction '%s'", stx.Id())

	_, err := this.client.SendTransactionWithOpts(
		ctx,
		stx.tx,
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: rpc.CommitmentConfirmed,
		})

	return err
}

func (this *BlockchainClient) Await(ctx context.Context, tx core.Transaction, mode configs.FinalityMode) error {
	var target rpc.ConfirmationStatusType

	switch mode {
	case configs.FinalityOptimistic:
		target = rpc.ConfirmationStatusConfirmed
	case configs.FinalityFinal:
		target = rpc.ConfirmationStatusFinalized
	default:
		return fmt.Errorf("unsupported finality '%s'", mode)
	}

	return newStatusConfirmer(this.logger, this.client, target,
		this.interval).confirm(ctx, tx.(*transaction))
}
