package metrics

import (
	"context"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"finality-benchmark/core/results"
	"fmt"
	"time"

	"github.com/InfluxCommunity/influxdb3-go/influxdb3"
	"github.com/google/uuid"
)

// Bound of the final write of a run.
const flushTimeout = 10 * time.Second

// The subset of the influxdb3 client the sink uses.
// Satisfied by *influxdb3.Client.
type pointWriter interface {
	WritePoints(ctx context.Context, points []*influxdb3.Point, options ...influxdb3.WriteOption) error
	Close() error
}

type sample struct {
	measurement string
	tags        map[string]string
	fields      map[string]any
	at          time.Time
}

// InfluxObserver records the events of a run and writes them as points
// once the run is over.
// Write failures are logged and never fail the run.
type InfluxObserver struct {
	logger  core.Logger
	writer  pointWriter
	runId   string
	tags    map[string]string
	samples []sample
	now     func() time.Time
}

// NewInfluxObserver connects to the InfluxDB v3 database of the
// configuration.
func NewInfluxObserver(config *configs.BenchConfig, token string, logger core.Logger) (*InfluxObserver, error) {
	client, err := influxdb3.New(influxdb3.ClientConfig{
		Host:     config.Influx.Host,
		Token:    token,
		Database: config.Influx.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("influxdb client: %w", err)
	}

	logger.Debugf("write points to %s (database %s)", config.Influx.Host,
		config.Influx.Database)

	return newInfluxObserver(logger, client, uuid.NewString()), nil
}

func newInfluxObserver(logger core.Logger, writer pointWriter, runId string) *InfluxObserver {
	return &InfluxObserver{
		logger:  logger,
		writer:  writer,
		runId:   runId,
		tags:    map[string]string{"run_id": runId},
		samples: make([]sample, 0),
		now:     time.Now,
	}
}

// RunId identifies the points of this run.
func (this *InfluxObserver) RunId() string {
	return this.runId
}

func (this *InfluxObserver) record(measurement string, tags map[string]string, fields map[string]any) {
	all := make(map[string]string, len(this.tags)+len(tags))

	for k, v := range this.tags {
		all[k] = v
	}

	for k, v := range tags {
		all[k] = v
	}

	this.samples = append(this.samples, sample{
		measurement: measurement,
		tags:        all,
		fields:      fields,
		at:          this.now(),
	})
}

func (this *InfluxObserver) OnStart(info *core.RunInfo) {
	this.tags["network"] = info.Config.Name
	this.tags["chain"] = info.Config.Chain
	this.tags["finality"] = info.Config.Finality.String()

	this.record("run_meta", nil, map[string]any{
		"address":      info.Address,
		"balance":      info.Balance,
		"amount":       info.Config.Amount,
		"transactions": info.Config.Transactions,
	})
}

func (this *InfluxObserver) OnAttempt(index, total int) {
}

func (this *InfluxObserver) OnSuccess(index, total int, result *results.TransactionResult) {
	fields := map[string]any{
		"tx_id":      result.TxId,
		"index":      index,
		"latency_ms": result.LatencyMs(),
	}

	if result.Fee != nil {
		fields["fee"] = *result.Fee
	}

	this.record("transfer_latency", nil, fields)
}

func (this *InfluxObserver) OnFailure(index, total int, err error) {
	var kind string

	switch err.(type) {
	case *core.SubmissionError:
		kind = "submission"
	case *core.ConfirmationError:
		kind = "confirmation"
	default:
		kind = "other"
	}

	if core.IsTimeout(err) {
		kind = "timeout"
	}

	this.record("transfer_error", map[string]string{"kind": kind},
		map[string]any{
			"index": index,
			"error": err.Error(),
		})
}

func (this *InfluxObserver) OnSummary(summary *results.Summary) {
	fields := map[string]any{
		"total":          summary.Total,
		"success":        summary.Success,
		"errors":         summary.Errors,
		"min_latency_ms": summary.MinLatency.Milliseconds(),
		"max_latency_ms": summary.MaxLatency.Milliseconds(),
		"avg_latency_ms": summary.AverageLatency.Milliseconds(),
		"med_latency_ms": summary.MedianLatency.Milliseconds(),
	}

	if summary.TotalFee != nil {
		fields["total_fee"] = *summary.TotalFee
	}

	this.record("run_summary", nil, fields)

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	err := this.Flush(ctx)
	if err != nil {
		this.logger.Warnf("failed to write metrics: %s", err)
	}
}

// Flush writes the recorded points.
func (this *InfluxObserver) Flush(ctx context.Context) error {
	if len(this.samples) == 0 {
		return nil
	}

	points := make([]*influxdb3.Point, 0, len(this.samples))

	for _, s := range this.samples {
		points = append(points, influxdb3.NewPoint(s.measurement,
			s.tags, s.fields, s.at))
	}

	err := this.writer.WritePoints(ctx, points)
	if err != nil {
		return err
	}

	this.logger.Debugf("wrote %d points (run %s)", len(points), this.runId)

	this.samples = this.samples[:0]

	return nil
}

func (this *InfluxObserver) Close() error {
	return this.writer.Close()
}
