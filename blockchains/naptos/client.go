package naptos

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"finality-benchmark/util"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	apt_decimals = 8

	apt_coin = "0x1::aptos_coin::AptosCoin"

	// Gas bound of a transfer, in gas units.
	apt_max_gas = 20000

	// Validity window of a transaction.
	apt_expiration = 60 * time.Second
)

type BlockchainClient struct {
	logger   core.Logger
	api      *restApi
	private  ed25519.PrivateKey
	address  string
	interval time.Duration
	now      func() time.Time
}

func newClient(logger core.Logger, api *restApi, private ed25519.PrivateKey, interval time.Duration) *BlockchainClient {
	return &BlockchainClient{
		logger:   logger,
		api:      api,
		private:  private,
		address:  publicKeyAddress(private.Public().(ed25519.PublicKey)),
		interval: interval,
		now:      time.Now,
	}
}

func (this *BlockchainClient) Address() string {
	return this.address
}

func (this *BlockchainClient) Decimals() int {
	return apt_decimals
}

func (this *BlockchainClient) Balance(ctx context.Context) (*big.Int, error) {
	var balance *big.Int
	var values []string
	var ok bool
	var err error

	err = this.api.post(ctx, "/view", &viewRequest{
		Function:      "0x1::coin::balance",
		TypeArguments: []string{apt_coin},
		Arguments:     []string{this.address},
	}, &values)
	if err != nil {
		return nil, err
	}

	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected balance view %v", values)
	}

	balance, ok = new(big.Int).SetString(values[0], 10)
	if !ok {
		return nil, fmt.Errorf("invalid balance '%s'", values[0])
	}

	return balance, nil
}

func (this *BlockchainClient) Prepare(ctx context.Context, to string, amount *big.Int) (core.Transaction, error) {
	var public ed25519.PublicKey = this.private.Public().(ed25519.PublicKey)
	var account accountInfo
	var gas gasEstimation
	var tx *submission
	var message string
	var raw []byte
	var err error

	err = this.api.get(ctx, "/accounts/"+this.address, &account)
	if err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}

	err = this.api.get(ctx, "/estimate_gas_price", &gas)
	if err != nil {
		return nil, fmt.Errorf("gas price: %w", err)
	}

	tx = &submission{
		Sender:         this.address,
		SequenceNumber: account.SequenceNumber,
		MaxGasAmount:   strconv.Itoa(apt_max_gas),
		GasUnitPrice:   strconv.FormatUint(gas.GasEstimate, 10),
		ExpirationTimestampSecs: strconv.FormatInt(
			this.now().Add(apt_expiration).Unix(), 10),
		Payload: &entryFunctionPayload{
			Type:          "entry_function_payload",
			Function:      "0x1::coin::transfer",
			TypeArguments: []string{apt_coin},
			Arguments:     []interface{}{to, amount.String()},
		},
	}

	err = this.api.post(ctx, "/transactions/encode_submission", tx,
		&message)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	raw, err = hex.DecodeString(strings.TrimPrefix(message, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid signing message: %w", err)
	}

	tx.Signature = &transactionSignature{
		Type:      "ed25519_signature",
		PublicKey: "0x" + hex.EncodeToString(public),
		Signature: "0x" + hex.EncodeToString(ed25519.Sign(this.private,
			raw)),
	}

	this.logger.Tracef("sign transaction (sequence = %s, gas price = %d)",
		account.SequenceNumber, gas.GasEstimate)

	return &transaction{submission: tx}, nil
}

func (this *BlockchainClient) Submit(ctx context.Context, tx core.Transaction, mode configs.FinalityMode) error {
	var atx *transaction = tx.(*transaction)
	var pending pendingTransaction
	var err error

	err = this.api.post(ctx, "/transactions", atx.submission, &pending)
	if err != nil {
		return err
	}

	atx.hash = pending.Hash

	this.logger.Tracef("submit transaction '%s'", atx.hash)

	return nil
}

// Await returns at once in optimistic mode: the node accepted the
// transaction. In final mode it polls the transaction until committed and
// requires its success.
func (this *BlockchainClient) Await(ctx context.Context, tx core.Transaction, mode configs.FinalityMode) error {
	var atx *transaction = tx.(*transaction)
	var info transactionInfo
	var err error

	switch mode {
	case configs.FinalityOptimistic:
		return nil
	case configs.FinalityFinal:
	default:
		return fmt.Errorf("unsupported finality '%s'", mode)
	}

	err = util.Poll(ctx, this.interval, func() (bool, error) {
		err = this.api.get(ctx, transactionPath(atx.hash), &info)
		if isNotFound(err) {
			return false, nil
		} else if err != nil {
			return false, err
		}

		return info.Type != "pending_transaction", nil
	})
	if err != nil {
		return err
	}

	if !info.Success {
		return fmt.Errorf("transaction failed: %s", info.VmStatus)
	}

	return nil
}

type transaction struct {
	submission *submission
	hash       string // Known once submitted
}

func (this *transaction) Id() string {
	return this.hash
}
