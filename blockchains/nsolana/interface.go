package nsolana

import (
	"context"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// The subset of the node API the client uses.
// Satisfied by *rpc.Client.
type backend interface {
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, transaction *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
	GetBlockHeight(ctx context.Context, commitment rpc.CommitmentType) (uint64, error)
}

type BlockchainInterface struct {
}

func (this *BlockchainInterface) Client(config *configs.BenchConfig, logger core.Logger) (core.BlockchainClient, error) {
	logger.Tracef("new client")

	private, err := parsePrivateKey(config.Secret)
	if err != nil {
		return nil, err
	}

	logger.Tracef("use endpoint '%s'", config.Endpoint)
	client := rpc.New(config.Endpoint)

	return newClient(logger, client, private, config.Polling.Interval), nil
}

// Parse a base58 encoded 64 bytes keypair.
func parsePrivateKey(secret string) (solana.PrivateKey, error) {
	secret = strings.TrimSpace(secret)

	if secret == "" {
		return nil, fmt.Errorf("missing private key")
	}

	private, err := solana.PrivateKeyFromBase58(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	if len(private) != 64 {
		return nil, fmt.Errorf("invalid private key length (%d bytes)",
			len(private))
	}

	return private, nil
}
