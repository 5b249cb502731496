package nsui

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"fmt"
	"math/big"
)

const (
	sui_decimals = 9

	sui_coin_type = "0x2::sui::SUI"

	// Gas budget of a transfer, in MIST.
	sui_gas_budget = "10000000"

	// Most coins merged to pay a transfer.
	sui_max_coins = 50
)

var requestType = map[configs.FinalityMode]string{
	configs.FinalityOptimistic: "WaitForLocalExecution",
	configs.FinalityFinal:      "WaitForEffectsCert",
}

type coinPage struct {
	Data []struct {
		CoinObjectId string `json:"coinObjectId"`
		Balance      string `json:"balance"`
	} `json:"data"`
}

type balanceResult struct {
	TotalBalance string `json:"totalBalance"`
}

type unsafeResult struct {
	TxBytes string `json:"txBytes"`
}

type transactionEffects struct {
	Status struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	} `json:"status"`
}

type executeResult struct {
	Digest  string              `json:"digest"`
	Effects *transactionEffects `json:"effects"`
}

type BlockchainClient struct {
	logger  core.Logger
	client  caller
	private ed25519.PrivateKey
	address string
}

func newClient(logger core.Logger, client caller, private ed25519.PrivateKey) *BlockchainClient {
	return &BlockchainClient{
		logger:  logger,
		client:  client,
		private: private,
		address: publicKeyAddress(private.Public().(ed25519.PublicKey)),
	}
}

func (this *BlockchainClient) Address() string {
	return this.address
}

func (this *BlockchainClient) Decimals() int {
	return sui_decimals
}

func (this *BlockchainClient) Balance(ctx context.Context) (*big.Int, error) {
	var result balanceResult

	err := this.client.CallContext(ctx, &result, "suix_getBalance",
		this.address, sui_coin_type)
	if err != nil {
		return nil, err
	}

	balance, ok := new(big.Int).SetString(result.TotalBalance, 10)
	if !ok {
		return nil, fmt.Errorf("invalid balance '%s'",
			result.TotalBalance)
	}

	return balance, nil
}

// Prepare lets the node build the transfer from the coins of the signer,
// then signs the returned transaction data.
func (this *BlockchainClient) Prepare(ctx context.Context, to string, amount *big.Int) (core.Transaction, error) {
	var coins coinPage
	var built unsafeResult

	err := this.client.CallContext(ctx, &coins, "suix_getCoins",
		this.address, sui_coin_type, nil, sui_max_coins)
	if err != nil {
		return nil, fmt.Errorf("get coins: %w", err)
	}

	if len(coins.Data) == 0 {
		return nil, fmt.Errorf("no coin owned by %s", this.address)
	}

	ids := make([]string, len(coins.Data))
	for i, coin := range coins.Data {
		ids[i] = coin.CoinObjectId
	}

	err = this.client.CallContext(ctx, &built, "unsafe_paySui",
		this.address, ids, []string{to}, []string{amount.String()},
		sui_gas_budget)
	if err != nil {
		return nil, fmt.Errorf("build transfer: %w", err)
	}

	txBytes, err := base64.StdEncoding.DecodeString(built.TxBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction bytes: %w", err)
	}

	tx := newSignedTransaction(txBytes, this.private)

	this.logger.Tracef("sign transaction '%s' (%d coins)", tx.Id(),
		len(ids))

	return tx, nil
}

// Submit executes the transaction. The node answers once the transaction
// reaches the requested level, so the answer carries the effects checked by
// Await.
func (this *BlockchainClient) Submit(ctx context.Context, tx core.Transaction, mode configs.FinalityMode) error {
	var stx *transaction = tx.(*transaction)
	var result executeResult

	request, ok := requestType[mode]
	if !ok {
		return fmt.Errorf("unsupported finality '%s'", mode)
	}

	this.logger.Tracef("submit transaction '%s'", stx.Id())

	err := this.client.CallContext(ctx, &result,
		"sui_executeTransactionBlock", stx.txBytes,
		[]string{stx.signature},
		map[string]interface{}{"showEffects": true}, request)
	if err != nil {
		return err
	}

	if result.Digest != stx.digest {
		this.logger.Warnf("node digest '%s' differs from '%s'",
			result.Digest, stx.digest)
	}

	stx.effects = result.Effects

	return nil
}

func (this *BlockchainClient) Await(ctx context.Context, tx core.Transaction, mode configs.FinalityMode) error {
	var stx *transaction = tx.(*transaction)

	if stx.effects == nil {
		return fmt.Errorf("no effects for '%s'", stx.Id())
	}

	if stx.effects.Status.Status != "success" {
		return fmt.Errorf("transaction %s: %s",
			stx.effects.Status.Status, stx.effects.Status.Error)
	}

	return nil
}
