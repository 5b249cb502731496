package core

import (
	"context"
	"errors"
	"finality-benchmark/core/configs"
	"finality-benchmark/core/results"
	"finality-benchmark/util"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// fakeClient is a scripted BlockchainClient.
type fakeClient struct {
	decimals int
	balances []*big.Int // Successive values returned by Balance, the last one repeats
	prepared int

	prepareDelay time.Duration        // Time spent building a transaction
	failBalance  func(call int) error // Failure of the n-th Balance call

	failSubmit func(index int) error
	failAwait  func(index int) error
	block      bool // Await blocks until the context ends

	lock         sync.Mutex
	balanceAt    int
	balanceCalls int
	submitted    []time.Time
}

type fakeTransaction struct {
	index int
	id    string
}

func (this *fakeTransaction) Id() string {
	return this.id
}

func newFakeClient(decimals int, balances ...*big.Int) *fakeClient {
	if len(balances) == 0 {
		balances = []*big.Int{big.NewInt(1000000000)}
	}

	return &fakeClient{
		decimals: decimals,
		balances: balances,
	}
}

func (this *fakeClient) Address() string {
	return "fake-sender"
}

func (this *fakeClient) Decimals() int {
	return this.decimals
}

func (this *fakeClient) Balance(ctx context.Context) (*big.Int, error) {
	this.lock.Lock()
	defer this.lock.Unlock()

	call := this.balanceCalls
	this.balanceCalls += 1

	if this.failBalance != nil {
		if err := this.failBalance(call); err != nil {
			return nil, err
		}
	}

	ret := this.balances[this.balanceAt]
	if this.balanceAt < len(this.balances)-1 {
		this.balanceAt += 1
	}

	return ret, nil
}

func (this *fakeClient) Prepare(ctx context.Context, to string, amount *big.Int) (Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	time.Sleep(this.prepareDelay)

	index := this.prepared
	this.prepared += 1

	return &fakeTransaction{index, fmt.Sprintf("0x%04d", index)}, nil
}

func (this *fakeClient) Submit(ctx context.Context, tx Transaction, mode configs.FinalityMode) error {
	ftx := tx.(*fakeTransaction)

	this.lock.Lock()
	this.submitted = append(this.submitted, time.Now())
	this.lock.Unlock()

	if this.failSubmit != nil {
		return this.failSubmit(ftx.index)
	}

	return nil
}

func (this *fakeClient) Await(ctx context.Context, tx Transaction, mode configs.FinalityMode) error {
	ftx := tx.(*fakeTransaction)

	if this.block {
		<-ctx.Done()
		return ctx.Err()
	}

	if this.failAwait != nil {
		return this.failAwait(ftx.index)
	}

	return nil
}

func units(value string, decimals int) *big.Int {
	ret, err := util.ParseUnits(value, decimals)
	if err != nil {
		panic(err)
	}

	return ret
}

// recordingObserver keeps the sequence of events.
type recordingObserver struct {
	events  []string
	summary *results.Summary
	info    *RunInfo
}

func (this *recordingObserver) OnStart(info *RunInfo) {
	this.info = info
	this.events = append(this.events, "start")
}

func (this *recordingObserver) OnAttempt(index, total int) {
	this.events = append(this.events, fmt.Sprintf("attempt %d/%d", index, total))
}

func (this *recordingObserver) OnSuccess(index, total int, result *results.TransactionResult) {
	this.events = append(this.events, fmt.Sprintf("success %d %s", index, result.TxId))
}

func (this *recordingObserver) OnFailure(index, total int, err error) {
	this.events = append(this.events, fmt.Sprintf("failure %d", index))
}

func (this *recordingObserver) OnSummary(summary *results.Summary) {
	this.summary = summary
	this.events = append(this.events, "summary")
}

var errRejected = errors.New("rejected")
