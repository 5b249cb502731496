package mock

import (
	"context"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"finality-benchmark/core/results"
	"math/big"
	"path/filepath"
	"testing"
	"time"
)

func TestMockClient(t *testing.T) {
	ctx := context.Background()

	t.Run("test fee tracked", func(t *testing.T) {
		client := NewClient(core.NewNoLogger(), time.Millisecond, 0,
			big.NewInt(mock_balance))

		result, err := core.SendOne(ctx, client, "mock-recipient",
			big.NewInt(1000000), configs.FinalityOptimistic,
			core.SendOptions{TrackFee: true})
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if (result.Fee == nil) || (*result.Fee != 0.000005) {
			t.Errorf("unexpected fee %v", result.Fee)
		}

		if result.TxId != "mock-000001" {
			t.Errorf("unexpected id %s", result.TxId)
		}
	})

	t.Run("test failure period", func(t *testing.T) {
		client := NewClient(core.NewNoLogger(), 0, 2,
			big.NewInt(mock_balance))

		for i := 1; i <= 4; i++ {
			_, err := core.SendOne(ctx, client, "r", big.NewInt(1),
				configs.FinalityFinal, core.SendOptions{})

			if (i%2 == 0) && (err == nil) {
				t.Errorf("attempt %d should fail", i)
			} else if (i%2 == 1) && (err != nil) {
				t.Errorf("attempt %d failed: %s", i, err)
			}
		}

		confirmed := client.Confirmed()
		if len(confirmed) != 2 {
			t.Fatalf("expected 2 confirmed, got %v", confirmed)
		}

		if confirmed[0] != "mock-000001" || confirmed[1] != "mock-000003" {
			t.Errorf("unexpected confirmed %v", confirmed)
		}
	})

	t.Run("test timeout", func(t *testing.T) {
		client := NewClient(core.NewNoLogger(), time.Hour, 0,
			big.NewInt(mock_balance))

		_, err := core.SendOne(ctx, client, "r", big.NewInt(1),
			configs.FinalityOptimistic,
			core.SendOptions{Timeout: 10 * time.Millisecond})

		if !core.IsTimeout(err) {
			t.Errorf("expected a timeout, got %v", err)
		}
	})

	t.Run("test invalid latency", func(t *testing.T) {
		config, _ := configs.Defaults(configs.ChainMock)
		config.Mock.Latency = -time.Second

		iface := &BlockchainInterface{}
		_, err := iface.Client(config, core.NewNoLogger())
		if err == nil {
			t.Errorf("expected an error")
		}
	})
}

func TestMockBenchmark(t *testing.T) {
	config, ok := configs.Defaults(configs.ChainMock)
	if !ok {
		t.Fatalf("no mock defaults")
	}

	config.Transactions = 6
	config.Delay = 0
	config.Mock.Latency = time.Millisecond
	config.Mock.FailEvery = 3
	config.Results = filepath.Join(t.TempDir(), "results")

	iface := &BlockchainInterface{}
	client, err := iface.Client(config, core.NewNoLogger())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	bench := core.NewBenchmark(config, client, nil, core.NewNoLogger())
	report, err := bench.Run(ctx())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if (len(report.Results) != 4) || (report.Errors != 2) {
		t.Errorf("expected 4 results and 2 errors, got %d and %d",
			len(report.Results), report.Errors)
	}

	read, err := results.ReadCSV(report.Path)
	if err != nil {
		t.Fatalf("failed to read export: %s", err)
	}

	if len(read) != len(report.Results) {
		t.Fatalf("exported %d rows for %d results", len(read),
			len(report.Results))
	}

	for i := range read {
		if read[i].TxId != report.Results[i].TxId {
			t.Errorf("row %d: %s != %s", i, read[i].TxId,
				report.Results[i].TxId)
		}

		if read[i].LatencyMs() != report.Results[i].LatencyMs() {
			t.Errorf("row %d: latency %d != %d", i, read[i].LatencyMs(),
				report.Results[i].LatencyMs())
		}
	}
}

func ctx() context.Context {
	return context.Background()
}
