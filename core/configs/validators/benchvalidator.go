package validators

import (
	"errors"
	"finality-benchmark/core/configs"
	"finality-benchmark/util"
	"fmt"

	"go.uber.org/zap"
)

// Widest token precision among the supported chains (yoctoNEAR).
const maxDecimals = 24

// Validates all fields of the benchmark configuration
// Determines the validity and returns a boolean whether it is
// valid or invalid.
func ValidateBenchConfig(c *configs.BenchConfig) (bool, error) {
	// Empty name is an error, it names the result file.
	if len(c.Name) == 0 {
		return false, errors.New("missing benchmark name")
	}

	switch c.Chain {
	case configs.ChainEthereum, configs.ChainSolana, configs.ChainNear,
		configs.ChainSui, configs.ChainAptos, configs.ChainMock:
	default:
		return false, fmt.Errorf("unknown chain '%s'", c.Chain)
	}

	if len(c.Endpoint) == 0 {
		return false, errors.New("missing endpoint")
	}

	if len(c.Recipient) == 0 {
		return false, errors.New("missing recipient")
	}

	if _, err := util.ParseUnits(c.Amount, maxDecimals); err != nil {
		return false, fmt.Errorf("invalid amount: %w", err)
	}

	if c.Transactions < 0 {
		return false, fmt.Errorf("transaction count %d cannot be negative",
			c.Transactions)
	}

	if c.Delay < 0 {
		return false, fmt.Errorf("delay %s cannot be negative", c.Delay)
	}

	if c.Timeout < 0 {
		return false, fmt.Errorf("timeout %s cannot be negative", c.Timeout)
	}

	if (c.Finality != configs.FinalityOptimistic) &&
		(c.Finality != configs.FinalityFinal) {
		return false, fmt.Errorf("invalid finality mode '%s'", c.Finality)
	}

	switch c.LatencyFrom {
	case "", configs.LatencyFromPrepare, configs.LatencyFromSubmit:
	default:
		return false, fmt.Errorf("invalid latency origin '%s'", c.LatencyFrom)
	}

	if (c.Chain == configs.ChainEthereum) && (c.EVM.Confirmations == 0) {
		return false, errors.New("ethereum confirmations must be at least 1")
	}

	if (c.Polling.Interval < 0) || (c.Polling.FinalizedInterval < 0) {
		return false, errors.New("poll intervals cannot be negative")
	}

	if c.PreflightFee != "" {
		if _, err := util.ParseUnits(c.PreflightFee, maxDecimals); err != nil {
			return false, fmt.Errorf("invalid preflight fee: %w", err)
		}
	}

	if c.Mock.FailEvery < 0 {
		return false, errors.New("mock fail_every cannot be negative")
	}

	if c.Influx.Enabled && ((c.Influx.Host == "") || (c.Influx.Database == "")) {
		return false, errors.New("influx sink needs a host and a database")
	}

	// The key can come from anywhere at run time, but warn.
	if (len(c.SecretEnv) == 0) && (c.Chain != configs.ChainMock) {
		zap.L().Warn("No secret environment variable in configuration.",
			zap.String("name", c.Name))
	}

	return true, nil
}
