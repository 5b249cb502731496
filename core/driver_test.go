package core

import (
	"context"
	"errors"
	"finality-benchmark/core/configs"
	"finality-benchmark/core/results"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testConfig(t *testing.T, transactions int) *configs.BenchConfig {
	return &configs.BenchConfig{
		Chain:        configs.ChainMock,
		Name:         "fake",
		Endpoint:     "mock://local",
		Recipient:    "fake-recipient",
		Amount:       "0.001",
		Transactions: transactions,
		Finality:     configs.FinalityOptimistic,
		Results:      filepath.Join(t.TempDir(), "results"),
	}
}

func runBenchmark(t *testing.T, config *configs.BenchConfig, client BlockchainClient, observer Observer) (*Report, error) {
	bench := NewBenchmark(config, client, observer, NewNoLogger())
	bench.now = func() time.Time {
		return time.Date(2025, 1, 2, 3, 4, 5, 6000000, time.UTC)
	}

	return bench.Run(context.Background())
}

func TestBenchmarkRun(t *testing.T) {
	t.Run("test count invariant", func(t *testing.T) {
		client := newFakeClient(9)
		client.failAwait = func(index int) error {
			if (index % 3) == 2 {
				return errRejected
			}
			return nil
		}

		report, err := runBenchmark(t, testConfig(t, 7), client, nil)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if (len(report.Results) + report.Errors) != 7 {
			t.Errorf("%d results and %d errors for 7 attempts",
				len(report.Results), report.Errors)
		}

		if report.Errors != 2 {
			t.Errorf("expected 2 errors, got %d", report.Errors)
		}

		if report.Summary.Total != 7 {
			t.Errorf("summary total %d", report.Summary.Total)
		}
	})

	t.Run("test submission order", func(t *testing.T) {
		client := newFakeClient(9)
		client.failSubmit = func(index int) error {
			if index == 1 {
				return errRejected
			}
			return nil
		}

		report, err := runBenchmark(t, testConfig(t, 4), client, nil)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		expected := []string{"0x0000", "0x0002", "0x0003"}
		if len(report.Results) != len(expected) {
			t.Fatalf("expected %d results, got %d", len(expected),
				len(report.Results))
		}

		for i, id := range expected {
			if report.Results[i].TxId != id {
				t.Errorf("result %d: expected %s, got %s", i, id,
					report.Results[i].TxId)
			}
		}

		for i := 1; i < len(client.submitted); i++ {
			if client.submitted[i].Before(client.submitted[i-1]) {
				t.Errorf("submission %d happened before %d", i, i-1)
			}
		}

		read, err := results.ReadCSV(report.Path)
		if err != nil {
			t.Fatalf("failed to read export: %s", err)
		}

		for i := range read {
			if read[i].TxId != report.Results[i].TxId {
				t.Errorf("row %d: %s != %s", i, read[i].TxId,
					report.Results[i].TxId)
			}
		}
	})

	t.Run("test all failed", func(t *testing.T) {
		client := newFakeClient(9)
		client.failSubmit = func(int) error { return errRejected }

		report, err := runBenchmark(t, testConfig(t, 5), client, nil)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if report.Errors != 5 {
			t.Errorf("expected 5 errors, got %d", report.Errors)
		}

		content, err := os.ReadFile(report.Path)
		if err != nil {
			t.Fatalf("missing export: %s", err)
		}

		if string(content) != results.CSVHeader {
			t.Errorf("expected a header only file, got %q", content)
		}
	})

	t.Run("test empty run", func(t *testing.T) {
		observer := &recordingObserver{}
		config := testConfig(t, 0)

		report, err := runBenchmark(t, config, newFakeClient(9), observer)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		expectedPath := filepath.Join(config.Results,
			"fake-optimistic-2025-01-02T03-04-05-006Z.csv")
		if report.Path != expectedPath {
			t.Errorf("expected %s, got %s", expectedPath, report.Path)
		}

		content, err := os.ReadFile(report.Path)
		if err != nil {
			t.Fatalf("missing export: %s", err)
		}

		if string(content) != results.CSVHeader {
			t.Errorf("expected a header only file, got %q", content)
		}

		if fmt.Sprint(observer.events) != "[start summary]" {
			t.Errorf("unexpected events %v", observer.events)
		}
	})

	t.Run("test observer events", func(t *testing.T) {
		observer := &recordingObserver{}
		client := newFakeClient(9)
		client.failAwait = func(index int) error {
			if index == 1 {
				return errRejected
			}
			return nil
		}

		_, err := runBenchmark(t, testConfig(t, 2), client, observer)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		expected := "[start attempt 0/2 success 0 0x0000 attempt 1/2 " +
			"failure 1 summary]"
		if fmt.Sprint(observer.events) != expected {
			t.Errorf("unexpected events %v", observer.events)
		}

		if observer.info.Address != "fake-sender" {
			t.Errorf("unexpected address %s", observer.info.Address)
		}

		if observer.summary.Errors != 1 || observer.summary.Success != 1 {
			t.Errorf("unexpected summary %+v", observer.summary)
		}
	})

	t.Run("test preflight failure", func(t *testing.T) {
		config := testConfig(t, 5)
		config.Amount = "0.01"
		config.PreflightFee = "0.0003"

		// 5 * 0.0103 = 0.0515 > 0.05
		client := newFakeClient(24, units("0.05", 24))

		_, err := runBenchmark(t, config, client, nil)

		var perr *PreflightError
		if !errors.As(err, &perr) {
			t.Fatalf("expected a preflight error, got %v", err)
		}

		if perr.Need != "0.0515" {
			t.Errorf("unexpected need %s", perr.Need)
		}

		if client.prepared != 0 {
			t.Errorf("%d transactions sent", client.prepared)
		}

		if _, err := os.Stat(config.Results); !os.IsNotExist(err) {
			t.Errorf("results directory created")
		}
	})

	t.Run("test preflight success", func(t *testing.T) {
		config := testConfig(t, 5)
		config.Amount = "0.01"
		config.PreflightFee = "0.0003"

		client := newFakeClient(24, units("0.0515", 24))

		report, err := runBenchmark(t, config, client, nil)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if len(report.Results) != 5 {
			t.Errorf("expected 5 results, got %d", len(report.Results))
		}
	})

	t.Run("test cancelled run keeps count", func(t *testing.T) {
		config := testConfig(t, 4)
		config.Delay = time.Hour

		client := newFakeClient(9)
		bench := NewBenchmark(config, client, nil, NewNoLogger())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report, err := bench.Run(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if (len(report.Results) + report.Errors) != 4 {
			t.Errorf("%d results and %d errors for 4 attempts",
				len(report.Results), report.Errors)
		}

		if report.Errors != 4 {
			t.Errorf("expected 4 errors, got %d", report.Errors)
		}
	})

	t.Run("test latency origin from config", func(t *testing.T) {
		config := testConfig(t, 1)
		config.LatencyFrom = configs.LatencyFromPrepare

		client := newFakeClient(9)
		client.prepareDelay = 50 * time.Millisecond

		report, err := runBenchmark(t, config, client, nil)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if len(report.Results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(report.Results))
		}

		if report.Results[0].Latency < client.prepareDelay {
			t.Errorf("prepare time not counted: %s",
				report.Results[0].Latency)
		}
	})
}
