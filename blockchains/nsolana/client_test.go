package nsolana

import (
	"context"
	"errors"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type fakeBackend struct {
	lock     sync.Mutex
	balances []uint64 // Successive balances, the last one repeats
	statuses []*rpc.SignatureStatusesResult
	height   uint64
	sent     []*solana.Transaction
	polls    int
}

func (this *fakeBackend) GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
	this.lock.Lock()
	defer this.lock.Unlock()

	value := this.balances[0]
	if len(this.balances) > 1 {
		this.balances = this.balances[1:]
	}

	return &rpc.GetBalanceResult{Value: value}, nil
}

func (this *fakeBackend) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{
			Blockhash:            solana.Hash{1, 2, 3, 4},
			LastValidBlockHeight: 100,
		},
	}, nil
}

func (this *fakeBackend) SendTransactionWithOpts(ctx context.Context, transaction *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error) {
	this.lock.Lock()
	defer this.lock.Unlock()

	this.sent = append(this.sent, transaction)

	return transaction.Signatures[0], nil
}

func (this *fakeBackend) GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	this.lock.Lock()
	defer this.lock.Unlock()

	index := this.polls
	if index >= len(this.statuses) {
		index = len(this.statuses) - 1
	}
	this.polls += 1

	return &rpc.GetSignatureStatusesResult{
		Value: []*rpc.SignatureStatusesResult{this.statuses[index]},
	}, nil
}

func (this *fakeBackend) GetBlockHeight(ctx context.Context, commitment rpc.CommitmentType) (uint64, error) {
	return this.height, nil
}

func status(value rpc.ConfirmationStatusType) *rpc.SignatureStatusesResult {
	return &rpc.SignatureStatusesResult{
		Slot:               42,
		ConfirmationStatus: value,
	}
}

func newTestClient(backend *fakeBackend) *BlockchainClient {
	return newClient(core.NewNoLogger(), backend,
		solana.NewWallet().PrivateKey, time.Millisecond)
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	recipient := solana.NewWallet().PublicKey().String()
	amount := big.NewInt(1000000)

	t.Run("test confirmed with fee", func(t *testing.T) {
		backend := &fakeBackend{
			balances: []uint64{2000000000, 1998995000},
			statuses: []*rpc.SignatureStatusesResult{
				nil,
				status(rpc.ConfirmationStatusProcessed),
				status(rpc.ConfirmationStatusConfirmed),
			},
			height: 50,
		}
		client := newTestClient(backend)

		result, err := core.SendOne(ctx, client, recipient, amount,
			configs.FinalityOptimistic,
			core.SendOptions{TrackFee: true})
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if len(backend.sent) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(backend.sent))
		}

		if result.TxId != backend.sent[0].Signatures[0].String() {
			t.Errorf("unexpected id %s", result.TxId)
		}

		if (result.Fee == nil) || (*result.Fee != 0.000005) {
			t.Errorf("unexpected fee %v", result.Fee)
		}

		if backend.polls != 3 {
			t.Errorf("expected 3 status polls, got %d", backend.polls)
		}

		payer := backend.sent[0].Message.AccountKeys[0]
		if payer.String() != client.Address() {
			t.Errorf("unexpected fee payer %s", payer)
		}
	})

	t.Run("test finalized", func(t *testing.T) {
		backend := &fakeBackend{
			balances: []uint64{2000000000},
			statuses: []*rpc.SignatureStatusesResult{
				status(rpc.ConfirmationStatusConfirmed),
				status(rpc.ConfirmationStatusConfirmed),
				status(rpc.ConfirmationStatusFinalized),
			},
		}
		client := newTestClient(backend)

		_, err := core.SendOne(ctx, client, recipient, amount,
			configs.FinalityFinal, core.SendOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if backend.polls != 3 {
			t.Errorf("expected 3 status polls, got %d", backend.polls)
		}
	})

	t.Run("test failed transaction", func(t *testing.T) {
		failed := status(rpc.ConfirmationStatusConfirmed)
		failed.Err = map[string]interface{}{"InstructionError": []int{0, 1}}

		backend := &fakeBackend{
			balances: []uint64{2000000000},
			statuses: []*rpc.SignatureStatusesResult{failed},
		}
		client := newTestClient(backend)

		_, err := core.SendOne(ctx, client, recipient, amount,
			configs.FinalityOptimistic, core.SendOptions{})

		var cerr *core.ConfirmationError
		if !errors.As(err, &cerr) {
			t.Errorf("expected a confirmation error, got %v", err)
		}
	})

	t.Run("test expired blockhash", func(t *testing.T) {
		backend := &fakeBackend{
			balances: []uint64{2000000000},
			statuses: []*rpc.SignatureStatusesResult{nil},
			height:   101,
		}
		client := newTestClient(backend)

		_, err := core.SendOne(ctx, client, recipient, amount,
			configs.FinalityOptimistic, core.SendOptions{})

		if !errors.Is(err, errBlockhashExpired) {
			t.Errorf("expected an expiration error, got %v", err)
		}
	})

	t.Run("test invalid recipient", func(t *testing.T) {
		client := newTestClient(&fakeBackend{balances: []uint64{0}})

		_, err := core.SendOne(ctx, client, "0x7ba3", amount,
			configs.FinalityOptimistic, core.SendOptions{})

		var serr *core.SubmissionError
		if !errors.As(err, &serr) {
			t.Errorf("expected a submission error, got %v", err)
		}
	})
}

func TestParsePrivateKey(t *testing.T) {
	wallet := solana.NewWallet()

	private, err := parsePrivateKey(" " + wallet.PrivateKey.String() + "\n")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if !private.PublicKey().Equals(wallet.PublicKey()) {
		t.Errorf("unexpected public key %s", private.PublicKey())
	}

	_, err = parsePrivateKey("")
	if err == nil {
		t.Errorf("expected an error")
	}
}
