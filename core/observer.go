package core

import (
	"finality-benchmark/core/configs"
	"finality-benchmark/core/results"
	"strconv"
)

// Information about a run, known before the first attempt.
type RunInfo struct {
	Config  *configs.BenchConfig
	Address string // Signer address
	Balance string // Signer balance in native tokens
}

// Observer receives the events of a benchmark run, in order, from the
// goroutine running the benchmark.
type Observer interface {
	OnStart(info *RunInfo)

	// Attempt `index` (starting at 0) out of `total` is about to be sent.
	OnAttempt(index, total int)

	OnSuccess(index, total int, result *results.TransactionResult)

	OnFailure(index, total int, err error)

	// The run is over and its results have been exported.
	OnSummary(summary *results.Summary)
}

// Observers forwards every event to each of its elements, in order.
type Observers []Observer

func (this Observers) OnStart(info *RunInfo) {
	for _, o := range this {
		o.OnStart(info)
	}
}

func (this Observers) OnAttempt(index, total int) {
	for _, o := range this {
		o.OnAttempt(index, total)
	}
}

func (this Observers) OnSuccess(index, total int, result *results.TransactionResult) {
	for _, o := range this {
		o.OnSuccess(index, total, result)
	}
}

func (this Observers) OnFailure(index, total int, err error) {
	for _, o := range this {
		o.OnFailure(index, total, err)
	}
}

func (this Observers) OnSummary(summary *results.Summary) {
	for _, o := range this {
		o.OnSummary(summary)
	}
}

// logObserver reports the run progress through a Logger.
type logObserver struct {
	logger Logger
}

func NewLogObserver(logger Logger) Observer {
	return &logObserver{logger}
}

func (this *logObserver) OnStart(info *RunInfo) {
	this.logger.Infof("endpoint: %s", info.Config.Endpoint)
	this.logger.Infof("to address: %s", info.Config.Recipient)
	this.logger.Infof("amount per tx: %s", info.Config.Amount)
	this.logger.Infof("finality: %s", info.Config.Finality)
	this.logger.Infof("account address: %s", info.Address)
	this.logger.Infof("balance: %s", info.Balance)
}

func (this *logObserver) OnAttempt(index, total int) {
	this.logger.Infof("sending transaction %d/%d...", index+1, total)
}

func (this *logObserver) OnSuccess(index, total int, result *results.TransactionResult) {
	var fee string

	if result.Fee != nil {
		fee = ", fee: " + strconv.FormatFloat(*result.Fee, 'f', -1, 64)
	}

	this.logger.Infof("✓ transaction %d/%d finalized in %dms (tx: %s%s)",
		index+1, total, result.LatencyMs(), result.TxId, fee)
}

func (this *logObserver) OnFailure(index, total int, err error) {
	this.logger.Errorf("✗ transaction %d/%d failed: %s", index+1, total,
		err.Error())
}

func (this *logObserver) OnSummary(summary *results.Summary) {
	this.logger.Infof("✓ %s benchmark completed", summary.Label)
	this.logger.Infof("errors: %d out of %d transactions", summary.Errors,
		summary.Total)

	if summary.Success > 0 {
		this.logger.Infof("latency min/median/avg/max: %dms/%dms/%dms/%dms",
			summary.MinLatency.Milliseconds(),
			summary.MedianLatency.Milliseconds(),
			summary.AverageLatency.Milliseconds(),
			summary.MaxLatency.Milliseconds())
	}

	if summary.Path != "" {
		this.logger.Infof("✓ CSV output written to: %s", summary.Path)
	}
}
