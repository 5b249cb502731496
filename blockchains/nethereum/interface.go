package nethereum

import (
	"context"
	"crypto/ecdsa"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// The subset of the node API the client uses.
// Satisfied by *ethclient.Client.
type backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address, number *big.Int) (*big.Int, error)
}

type BlockchainInterface struct {
}

func (this *BlockchainInterface) Client(config *configs.BenchConfig, logger core.Logger) (core.BlockchainClient, error) {
	var ctx context.Context = context.Background()
	var confirmers map[configs.FinalityMode]transactionConfirmer
	var private *ecdsa.PrivateKey
	var client *ethclient.Client
	var err error

	logger.Tracef("new client")

	private, err = parsePrivateKey(config.Secret)
	if err != nil {
		return nil, err
	}

	logger.Tracef("use endpoint '%s'", config.Endpoint)
	client, err = ethclient.DialContext(ctx, config.Endpoint)
	if err != nil {
		return nil, err
	}

	logger.Tracef("use %d confirmations for optimistic finality",
		config.EVM.Confirmations)

	confirmers = map[configs.FinalityMode]transactionConfirmer{
		configs.FinalityOptimistic: newDepthTransactionConfirmer(logger,
			client, config.EVM.Confirmations,
			config.Polling.Interval),
		configs.FinalityFinal: newFinalizedTransactionConfirmer(logger,
			client, config.Polling.Interval,
			config.Polling.FinalizedInterval),
	}

	return newClient(logger, client, private, confirmers), nil
}

// Parse an hexadecimal secp256k1 private key, with or without the "0x"
// prefix.
func parsePrivateKey(secret string) (*ecdsa.PrivateKey, error) {
	var key *ecdsa.PrivateKey
	var err error

	secret = strings.TrimSpace(secret)
	secret = strings.TrimPrefix(secret, "0x")

	if secret == "" {
		return nil, fmt.Errorf("missing private key")
	}

	key, err = crypto.HexToECDSA(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return key, nil
}
