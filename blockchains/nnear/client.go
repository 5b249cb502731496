package nnear

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"finality-benchmark/util"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/mr-tron/base58"
)

const near_decimals = 24

var waitUntil = map[configs.FinalityMode]string{
	configs.FinalityOptimistic: "EXECUTED_OPTIMISTIC",
	configs.FinalityFinal:      "FINAL",
}

type BlockchainClient struct {
	logger   core.Logger
	provider provider
	account  string
	private  ed25519.PrivateKey
	interval time.Duration
	lock     sync.Mutex
	used     uint64 // Highest nonce successfully submitted, 0 for none
}

func newClient(logger core.Logger, provider provider, account string, private ed25519.PrivateKey, interval time.Duration) *BlockchainClient {
	return &BlockchainClient{
		logger:   logger,
		provider: provider,
		account:  account,
		private:  private,
		interval: interval,
	}
}

func (this *BlockchainClient) Address() string {
	return this.account
}

func (this *BlockchainClient) Decimals() int {
	return near_decimals
}

func (this *BlockchainClient) publicKey() string {
	return formatPublicKey(this.private.Public().(ed25519.PublicKey))
}

func (this *BlockchainClient) Balance(ctx context.Context) (*big.Int, error) {
	var result viewAccountResult
	var amount *big.Int
	var ok bool
	var err error

	err = this.provider.call(ctx, "query", &viewAccountParams{
		RequestType: "view_account",
		Finality:    "optimistic",
		AccountId:   this.account,
	}, &result)
	if err != nil {
		return nil, err
	}

	if result.Error != "" {
		return nil, fmt.Errorf("view account '%s': %s", this.account,
			result.Error)
	}

	amount, ok = new(big.Int).SetString(result.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid balance '%s'", result.Amount)
	}

	return amount, nil
}

func (this *BlockchainClient) Prepare(ctx context.Context, to string, amount *big.Int) (core.Transaction, error) {
	var result viewAccessKeyResult
	var blockHash [32]byte
	var tx *transaction
	var decoded []byte
	var nonce uint64
	var err error

	err = this.provider.call(ctx, "query", &viewAccessKeyParams{
		RequestType: "view_access_key",
		Finality:    "final",
		AccountId:   this.account,
		PublicKey:   this.publicKey(),
	}, &result)
	if err != nil {
		return nil, err
	}

	if result.Error != "" {
		return nil, fmt.Errorf("view access key of '%s': %s",
			this.account, result.Error)
	}

	decoded, err = base58.Decode(result.BlockHash)
	if err != nil {
		return nil, fmt.Errorf("invalid block hash '%s': %w",
			result.BlockHash, err)
	}

	if len(decoded) != len(blockHash) {
		return nil, fmt.Errorf("invalid block hash length (%d bytes)",
			len(decoded))
	}

	copy(blockHash[:], decoded)

	nonce = this.nextNonce(result.Nonce)

	tx, err = newTransferTransaction(this.account, this.private,
		nonce, to, blockHash, amount)
	if err != nil {
		return nil, err
	}

	this.logger.Tracef("sign transaction '%s' (nonce = %d)", tx.Id(),
		nonce)

	return tx, nil
}

func (this *BlockchainClient) Submit(ctx context.Context, tx core.Transaction, mode configs.FinalityMode) error {
	var ntx *transaction = tx.(*transaction)
	var err error

	this.logger.Tracef("submit transaction '%s'", ntx.Id())

	err = this.provider.call(ctx, "send_tx", &sendTxParams{
		SignedTxBase64: base64.StdEncoding.EncodeToString(ntx.signed),
		WaitUntil:      "NONE",
	}, nil)
	if err != nil {
		return err
	}

	this.lock.Lock()
	if ntx.nonce > this.used {
		this.used = ntx.nonce
	}
	this.lock.Unlock()

	return nil
}

// The access key is read at final finality, which can lag behind the
// previous transfers of the run.
// Never go below the last submitted nonce.
func (this *BlockchainClient) nextNonce(onchain uint64) uint64 {
	var nonce uint64 = onchain + 1

	this.lock.Lock()
	defer this.lock.Unlock()

	if this.used >= nonce {
		this.logger.Tracef("access key lags behind (nonce %d <= %d)",
			onchain, this.used)
		nonce = this.used + 1
	}

	return nonce
}

// Await asks the node to hold the answer until the transaction reaches the
// awaited status. The request is repeated when the node gives up waiting.
func (this *BlockchainClient) Await(ctx context.Context, tx core.Transaction, mode configs.FinalityMode) error {
	var ntx *transaction = tx.(*transaction)
	var result txStatusResult
	var status string
	var ok bool
	var err error

	status, ok = waitUntil[mode]
	if !ok {
		return fmt.Errorf("unsupported finality '%s'", mode)
	}

	err = util.Poll(ctx, this.interval, func() (bool, error) {
		err = this.provider.call(ctx, "tx", &txStatusParams{
			TxHash:          ntx.Id(),
			SenderAccountId: this.account,
			WaitUntil:       status,
		}, &result)

		if isTransient(err) {
			this.logger.Tracef("transaction '%s' pending: %s",
				ntx.Id(), err)
			return false, nil
		} else if err != nil {
			return false, err
		}

		return true, nil
	})
	if err != nil {
		return err
	}

	this.logger.Tracef("transaction '%s' reached %s", ntx.Id(),
		result.FinalExecutionStatus)

	return result.failure()
}
