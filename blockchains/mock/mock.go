package mock

import (
	"context"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const (
	mock_decimals = 9

	// Fee debited by every confirmed transfer, in base units.
	mock_fee int64 = 5000

	// Initial balance of the signer, in base units (1000 tokens).
	mock_balance int64 = 1000000000000
)

type BlockchainInterface struct {
}

func (this *BlockchainInterface) Client(config *configs.BenchConfig, logger core.Logger) (core.BlockchainClient, error) {
	logger.Debugf("new client:")
	logger.Debugf("  endpoint: %s", config.Endpoint)
	logger.Debugf("  latency: %s", config.Mock.Latency)
	logger.Debugf("  fail every: %d", config.Mock.FailEvery)

	if config.Mock.Latency < 0 {
		return nil, fmt.Errorf("invalid latency parameter: %s",
			config.Mock.Latency)
	}

	return NewClient(logger, config.Mock.Latency, config.Mock.FailEvery,
		big.NewInt(mock_balance)), nil
}

// BlockchainClient simulates a chain in process: transfers are debited from
// an in-memory balance once confirmed, after a fixed latency.
type BlockchainClient struct {
	logger    core.Logger
	latency   time.Duration
	failEvery int
	lock      sync.Mutex
	balance   *big.Int
	prepared  int
	confirmed []string
}

func NewClient(logger core.Logger, latency time.Duration, failEvery int, balance *big.Int) *BlockchainClient {
	return &BlockchainClient{
		logger:    logger,
		latency:   latency,
		failEvery: failEvery,
		balance:   new(big.Int).Set(balance),
		confirmed: make([]string, 0),
	}
}

func (this *BlockchainClient) Address() string {
	return "mock-sender"
}

func (this *BlockchainClient) Decimals() int {
	return mock_decimals
}

func (this *BlockchainClient) Balance(ctx context.Context) (*big.Int, error) {
	this.lock.Lock()
	defer this.lock.Unlock()

	return new(big.Int).Set(this.balance), nil
}

// Identifiers of the confirmed transfers, in confirmation order.
func (this *BlockchainClient) Confirmed() []string {
	this.lock.Lock()
	defer this.lock.Unlock()

	return append([]string{}, this.confirmed...)
}

func (this *BlockchainClient) Prepare(ctx context.Context, to string, amount *big.Int) (core.Transaction, error) {
	var tx *transaction

	this.lock.Lock()
	this.prepared += 1
	tx = &transaction{
		id:     fmt.Sprintf("mock-%06d", this.prepared),
		to:     to,
		amount: new(big.Int).Set(amount),
		reject: (this.failEvery > 0) &&
			(this.prepared%this.failEvery == 0),
	}
	this.lock.Unlock()

	this.logger.Tracef("sign transfer '%s' (%s -> %s)", tx.id,
		tx.amount, tx.to)

	return tx, nil
}

func (this *BlockchainClient) Submit(ctx context.Context, tx core.Transaction, mode configs.FinalityMode) error {
	var mtx *transaction = tx.(*transaction)

	this.logger.Tracef("submit transfer '%s'", mtx.id)

	if mtx.reject {
		return fmt.Errorf("transfer '%s' rejected", mtx.id)
	}

	return nil
}

func (this *BlockchainClient) Await(ctx context.Context, tx core.Transaction, mode configs.FinalityMode) error {
	var mtx *transaction = tx.(*transaction)
	var latency time.Duration = this.latency
	var timer *time.Timer

	if mode == configs.FinalityFinal {
		latency *= 2
	}

	timer = time.NewTimer(latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	this.lock.Lock()
	this.balance.Sub(this.balance, mtx.amount)
	this.balance.Sub(this.balance, big.NewInt(mock_fee))
	this.confirmed = append(this.confirmed, mtx.id)
	this.lock.Unlock()

	this.logger.Tracef("commit transfer '%s'", mtx.id)

	return nil
}

type transaction struct {
	id     string
	to     string
	amount *big.Int
	reject bool
}

func (this *transaction) Id() string {
	return this.id
}
