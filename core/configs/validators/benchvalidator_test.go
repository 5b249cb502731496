package validators

import (
	"finality-benchmark/core/configs"
	"testing"
	"time"
)

func TestValidateDefaults(t *testing.T) {
	for _, name := range configs.Networks() {
		t.Run(name, func(t *testing.T) {
			config, _ := configs.Defaults(name)

			if ok, err := ValidateBenchConfig(config); !ok {
				t.Errorf("defaults of %s rejected: %s", name, err)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*configs.BenchConfig){
		"empty name":          func(c *configs.BenchConfig) { c.Name = "" },
		"unknown chain":       func(c *configs.BenchConfig) { c.Chain = "bitcoin" },
		"empty endpoint":      func(c *configs.BenchConfig) { c.Endpoint = "" },
		"empty recipient":     func(c *configs.BenchConfig) { c.Recipient = "" },
		"bad amount":          func(c *configs.BenchConfig) { c.Amount = "one" },
		"negative count":      func(c *configs.BenchConfig) { c.Transactions = -1 },
		"negative delay":      func(c *configs.BenchConfig) { c.Delay = -time.Second },
		"negative timeout":    func(c *configs.BenchConfig) { c.Timeout = -time.Second },
		"no finality":         func(c *configs.BenchConfig) { c.Finality = "" },
		"zero confirmations":  func(c *configs.BenchConfig) { c.EVM.Confirmations = 0 },
		"bad preflight fee":   func(c *configs.BenchConfig) { c.PreflightFee = "x" },
		"influx without host": func(c *configs.BenchConfig) { c.Influx.Enabled = true },
		"bad latency origin":  func(c *configs.BenchConfig) { c.LatencyFrom = "broadcast" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			config, _ := configs.Defaults("sepolia")
			mutate(config)

			if ok, err := ValidateBenchConfig(config); ok || (err == nil) {
				t.Errorf("expected %s to be rejected", name)
			}
		})
	}
}

func TestValidateAcceptsEmptyRun(t *testing.T) {
	config, _ := configs.Defaults("mock")
	config.Transactions = 0

	if ok, err := ValidateBenchConfig(config); !ok {
		t.Errorf("empty run rejected: %s", err)
	}
}
