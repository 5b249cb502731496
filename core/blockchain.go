package core

import (
	"context"
	"finality-benchmark/core/configs"
	"math/big"
)

type BlockchainInterface interface {
	// Create a client for the blockchain described by `config`.
	// The signer is loaded once here from `config.Secret` and used for
	// every transaction of the run.
	Client(config *configs.BenchConfig, logger Logger) (BlockchainClient, error)
}

type BlockchainClient interface {
	// Address of the signer account.
	Address() string

	// Number of decimals of the native token: an amount of `1` token is
	// `10^Decimals()` base units.
	Decimals() int

	// Balance of the signer account in base units.
	Balance(ctx context.Context) (*big.Int, error)

	// Build and sign a transfer of `amount` base units to `to`.
	// Nothing is sent to the network yet.
	Prepare(ctx context.Context, to string, amount *big.Int) (Transaction, error)

	// Broadcast a prepared transaction.
	// Some chains only offer submission primitives that block until the
	// requested finality, hence the `mode`.
	Submit(ctx context.Context, tx Transaction, mode configs.FinalityMode) error

	// Block until a submitted transaction reaches the finality `mode`.
	Await(ctx context.Context, tx Transaction, mode configs.FinalityMode) error
}

type Transaction interface {
	// Chain native identifier of the transaction (hash, digest,
	// signature).
	// Only guaranteed to be known once the transaction is submitted.
	Id() string
}
