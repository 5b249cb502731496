package core

import (
	"context"
	"finality-benchmark/core/configs"
	"finality-benchmark/core/results"
	"finality-benchmark/util"
	"fmt"
	"math/big"
	"time"
)

// Benchmark drives one run: a fixed number of sequential transfers, each
// followed by a fixed pause, then a single export of the results.
type Benchmark struct {
	config   *configs.BenchConfig
	client   BlockchainClient
	observer Observer
	logger   Logger
	now      func() time.Time
}

// Report is what a run produced.
type Report struct {
	Results []*results.TransactionResult // In submission order
	Errors  int                          // Number of failed attempts
	Path    string                       // Exported file
	Summary *results.Summary
}

func NewBenchmark(config *configs.BenchConfig, client BlockchainClient, observer Observer, logger Logger) *Benchmark {
	if observer == nil {
		observer = Observers{}
	}

	return &Benchmark{
		config:   config,
		client:   client,
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes the benchmark.
// Per attempt failures are counted and never stop the run. Errors happening
// before the first attempt (unreadable balance, failed preflight check) are
// returned and nothing is exported.
func (this *Benchmark) Run(ctx context.Context) (*Report, error) {
	var report Report
	var list []*results.TransactionResult
	var decimals int = this.client.Decimals()
	var errors int
	var err error

	amount, err := util.ParseUnits(this.config.Amount, decimals)
	if err != nil {
		return nil, err
	}

	balance, err := this.client.Balance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance of %s: %w",
			this.client.Address(), err)
	}

	this.observer.OnStart(&RunInfo{
		Config:  this.config,
		Address: this.client.Address(),
		Balance: util.FormatUnits(balance, decimals),
	})

	err = this.preflight(balance, amount, decimals)
	if err != nil {
		return nil, err
	}

	options := SendOptions{
		TrackFee:    this.config.TrackFee,
		Timeout:     this.config.Timeout,
		FromPrepare: this.config.LatencyFrom == configs.LatencyFromPrepare,
	}

	total := this.config.Transactions
	list = make([]*results.TransactionResult, 0, total)

	for i := 0; i < total; i++ {
		this.observer.OnAttempt(i, total)

		result, err := SendOne(ctx, this.client, this.config.Recipient,
			amount, this.config.Finality, options)

		if err == nil {
			list = append(list, result)
			this.observer.OnSuccess(i, total, result)
		} else {
			errors += 1
			this.observer.OnFailure(i, total, err)
		}

		sleep(ctx, this.config.Delay)
	}

	report.Results = list
	report.Errors = errors
	report.Summary = results.Summarize(this.config.Label(), list, errors)

	report.Path, err = results.Export(this.config.Results,
		this.config.Label(), list, this.now())
	report.Summary.Path = report.Path

	this.observer.OnSummary(report.Summary)

	if err != nil {
		return &report, fmt.Errorf("failed to export results: %w", err)
	}

	return &report, nil
}

// preflight checks, when the configuration gives a fee estimate, that the
// balance covers every transfer of the run along with its fee.
func (this *Benchmark) preflight(balance, amount *big.Int, decimals int) error {
	if this.config.PreflightFee == "" {
		return nil
	}

	fee, err := util.ParseUnits(this.config.PreflightFee, decimals)
	if err != nil {
		return err
	}

	need := new(big.Int).Add(amount, fee)
	need.Mul(need, big.NewInt(int64(this.config.Transactions)))

	this.logger.Infof("estimated total cost: ~%s",
		util.FormatUnits(need, decimals))

	if balance.Cmp(need) < 0 {
		return &PreflightError{
			Need: util.FormatUnits(need, decimals),
			Have: util.FormatUnits(balance, decimals),
		}
	}

	return nil
}

// sleep pauses for `d` unless the context ends first.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
