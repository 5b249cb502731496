package nethereum

import (
	"context"
	"crypto/ecdsa"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const eth_decimals = 18

type BlockchainClient struct {
	logger     core.Logger
	client     backend
	private    *ecdsa.PrivateKey
	address    common.Address
	manager    *nonceManager
	confirmers map[configs.FinalityMode]transactionConfirmer
	lock       sync.Mutex
	chainId    *big.Int
}

func newClient(logger core.Logger, client backend, private *ecdsa.PrivateKey, confirmers map[configs.FinalityMode]transactionConfirmer) *BlockchainClient {
	var address common.Address = crypto.PubkeyToAddress(private.PublicKey)

	return &BlockchainClient{
		logger:     logger,
		client:     client,
		private:    private,
		address:    address,
		manager:    newNonceManager(logger, client, address),
		confirmers: confirmers,
	}
}

func (this *BlockchainClient) Address() string {
	return this.address.Hex()
}

func (this *BlockchainClient) Decimals() int {
	return eth_decimals
}

func (this *BlockchainClient) Balance(ctx context.Context) (*big.Int, error) {
	return this.client.BalanceAt(ctx, this.address, nil)
}

func (this *BlockchainClient) getChainId(ctx context.Context) (*big.Int, error) {
	var err error

	this.lock.Lock()
	defer this.lock.Unlock()

	if this.chainId != nil {
		return this.chainId, nil
	}

	this.chainId, err = this.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}

	this.logger.Tracef("use chain id %s", this.chainId)

	return this.chainId, nil
}

func (this *BlockchainClient) Prepare(ctx context.Context, to string, amount *big.Int) (core.Transaction, error) {
	var params *parameters
	var tx *transaction
	var chainId *big.Int
	var dest common.Address
	var nonce uint64
	var err error

	if !common.IsHexAddress(to) {
		return nil, fmt.Errorf("invalid recipient address '%s'", to)
	}

	dest = common.HexToAddress(to)

	chainId, err = this.getChainId(ctx)
	if err != nil {
		return nil, err
	}

	nonce, err = this.manager.next(ctx)
	if err != nil {
		return nil, err
	}

	params, err = fetchParameters(ctx, this.client, chainId, this.address,
		dest, amount)
	if err != nil {
		return nil, err
	}

	tx, err = newTransferTransaction(params, nonce, this.private, dest,
		amount)
	if err != nil {
		return nil, err
	}

	this.logger.Tracef("sign transaction '%s' (nonce = %d, gas = %d)",
		tx.Id(), nonce, params.gas)

	return tx, nil
}

func (this *BlockchainClient) Submit(ctx context.Context, tx core.Transaction, mode configs.FinalityMode) error {
	var etx *transaction = tx.(*transaction)
	var err error

	this.logger.Tracef("submit transaction '%s'", etx.Id())

	err = this.client.SendTransaction(ctx, etx.tx)
	if err != nil {
		return err
	}

	this.manager.commit(etx.tx.Nonce())

	return nil
}

func (this *BlockchainClient) Await(ctx context.Context, tx core.Transaction, mode configs.FinalityMode) error {
	var etx *transaction = tx.(*transaction)
	var confirmer transactionConfirmer
	var ok bool

	confirmer, ok = this.confirmers[mode]
	if !ok {
		return fmt.Errorf("unsupported finality '%s'", mode)
	}

	return confirmer.confirm(ctx, etx)
}

// Hands out the nonces of the signer.
// The next nonce is the highest of the pending nonce known by the node and
// the one following the last submitted transaction.
type nonceManager struct {
	logger  core.Logger
	client  backend
	address common.Address
	lock    sync.Mutex
	local   uint64
	known   bool
}

func newNonceManager(logger core.Logger, client backend, address common.Address) *nonceManager {
	return &nonceManager{
		logger:  logger,
		client:  client,
		address: address,
	}
}

func (this *nonceManager) next(ctx context.Context) (uint64, error) {
	var nonce uint64
	var err error

	nonce, err = this.client.PendingNonceAt(ctx, this.address)
	if err != nil {
		return 0, fmt.Errorf("pending nonce: %w", err)
	}

	this.lock.Lock()
	defer this.lock.Unlock()

	if this.known && (this.local > nonce) {
		this.logger.Tracef("node lags behind (pending nonce %d < %d)",
			nonce, this.local)
		nonce = this.local
	}

	return nonce, nil
}

func (this *nonceManager) commit(nonce uint64) {
	this.lock.Lock()
	defer this.lock.Unlock()

	if !this.known || (nonce+1 > this.local) {
		this.local = nonce + 1
		this.known = true
	}
}
