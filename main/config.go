package main

import (
	"finality-benchmark/core/configs"
	"finality-benchmark/core/configs/parsers"
	"finality-benchmark/core/configs/validators"
	"fmt"
)

// Command line values laid over the configuration.
type overrides struct {
	configPath string
	finality   string
	count      int
	countSet   bool
	results    string
}

// loadConfig builds the configuration of the network `name`: compiled-in
// defaults, then the configuration file, then the command line, then the
// secrets from the environment.
func loadConfig(name string, flags *overrides, lookup func(string) (string, bool)) (*configs.BenchConfig, error) {
	var config *configs.BenchConfig
	var err error

	base, ok := configs.Defaults(name)
	if !ok {
		return nil, fmt.Errorf("unknown network '%s'", name)
	}

	config = base

	if flags.configPath != "" {
		config, err = parsers.ParseBenchConfig(flags.configPath, base)
		if err != nil {
			return nil, fmt.Errorf("failed to parse '%s': %w",
				flags.configPath, err)
		}
	}

	if flags.finality != "" {
		config.Finality, err = configs.ParseFinalityMode(flags.finality)
		if err != nil {
			return nil, err
		}
	}

	if flags.countSet {
		config.Transactions = flags.count
	}

	if flags.results != "" {
		config.Results = flags.results
	}

	if ok, err := validators.ValidateBenchConfig(config); !ok {
		return nil, err
	}

	parsers.ResolveEnvironment(config, lookup)

	return config, nil
}
