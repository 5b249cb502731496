package metrics

import (
	"context"
	"errors"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"finality-benchmark/core/results"
	"testing"
	"time"

	"github.com/InfluxCommunity/influxdb3-go/influxdb3"
)

type fakeWriter struct {
	writes [][]*influxdb3.Point
	err    error
	closed bool
}

func (this *fakeWriter) WritePoints(ctx context.Context, points []*influxdb3.Point, options ...influxdb3.WriteOption) error {
	if this.err != nil {
		return this.err
	}

	this.writes = append(this.writes, points)

	return nil
}

func (this *fakeWriter) Close() error {
	this.closed = true
	return nil
}

func runEvents(observer core.Observer) {
	config, _ := configs.Defaults("near")
	fee := 0.001

	observer.OnStart(&core.RunInfo{
		Config:  config,
		Address: "alice.testnet",
		Balance: "10",
	})

	observer.OnAttempt(0, 3)
	observer.OnSuccess(0, 3, results.NewTransactionResult("tx0",
		120*time.Millisecond, &fee))
	observer.OnAttempt(1, 3)
	observer.OnFailure(1, 3, &core.SubmissionError{Err: errors.New("nonce")})
	observer.OnAttempt(2, 3)
	observer.OnFailure(2, 3, &core.ConfirmationError{Id: "tx2",
		Err: core.ErrConfirmationTimeout})

	observer.OnSummary(results.Summarize("near-optimistic",
		[]*results.TransactionResult{
			results.NewTransactionResult("tx0", 120*time.Millisecond,
				&fee),
		}, 2))
}

func TestInfluxObserver(t *testing.T) {
	t.Run("test flush", func(t *testing.T) {
		writer := &fakeWriter{}
		observer := newInfluxObserver(core.NewNoLogger(), writer, "run-1")

		runEvents(observer)

		if len(writer.writes) != 1 {
			t.Fatalf("expected 1 write, got %d", len(writer.writes))
		}

		if len(writer.writes[0]) != 5 {
			t.Errorf("expected 5 points, got %d", len(writer.writes[0]))
		}

		if len(observer.samples) != 0 {
			t.Errorf("samples kept after flush")
		}
	})

	t.Run("test samples", func(t *testing.T) {
		writer := &fakeWriter{err: errors.New("unreachable")}
		observer := newInfluxObserver(core.NewNoLogger(), writer, "run-2")

		runEvents(observer)

		recorded := observer.samples

		expected := []string{"run_meta", "transfer_latency",
			"transfer_error", "transfer_error", "run_summary"}
		if len(recorded) != len(expected) {
			t.Fatalf("expected %d pending samples, got %d",
				len(expected), len(recorded))
		}

		for i, measurement := range expected {
			if recorded[i].measurement != measurement {
				t.Errorf("sample %d: expected %s, got %s", i,
					measurement, recorded[i].measurement)
			}

			if recorded[i].tags["run_id"] != "run-2" {
				t.Errorf("sample %d: missing run id", i)
			}

			if recorded[i].tags["network"] != "near" {
				t.Errorf("sample %d: missing network", i)
			}
		}

		if recorded[1].fields["fee"] != 0.001 {
			t.Errorf("unexpected fee %v", recorded[1].fields["fee"])
		}

		if recorded[2].tags["kind"] != "submission" {
			t.Errorf("unexpected kind %s", recorded[2].tags["kind"])
		}

		if recorded[3].tags["kind"] != "timeout" {
			t.Errorf("unexpected kind %s", recorded[3].tags["kind"])
		}

		if recorded[4].fields["errors"] != 2 {
			t.Errorf("unexpected errors %v", recorded[4].fields["errors"])
		}

		err := observer.Close()
		if err != nil || !writer.closed {
			t.Errorf("writer not closed")
		}
	})
}
