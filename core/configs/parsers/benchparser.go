// Package parsers presents the parsing of configuration files, which will
// parse and generate the related information necessary for the use in the
// benchmark run.
package parsers

import (
	"finality-benchmark/core/configs"
	"finality-benchmark/core/configs/validators"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseBenchConfig parses the benchmark configuration file from YAML.
// The values of the file are laid over `base`, usually the compiled-in
// defaults of the selected network, which is left untouched.
func ParseBenchConfig(filepath string, base *configs.BenchConfig) (*configs.BenchConfig, error) {
	// Get the configuration information from the filepath
	configFileBytes, err := os.ReadFile(filepath)

	if err != nil {
		return nil, err
	}

	return parseBenchYaml(configFileBytes, filepath, base)
}

// parseBenchYaml provides the full unmarshal of the YAML over a copy of the
// base configuration.
func parseBenchYaml(content []byte, path string, base *configs.BenchConfig) (*configs.BenchConfig, error) {
	var benchConfig configs.BenchConfig

	if base != nil {
		benchConfig = *base.Copy()
	}

	err := yaml.Unmarshal(content, &benchConfig)

	if err != nil {
		return nil, err
	}

	// Check validity
	if ok, err := validators.ValidateBenchConfig(&benchConfig); !ok {
		return nil, err
	}

	benchConfig.Path = path

	return &benchConfig, nil
}

// ResolveEnvironment fills the secret material of the configuration from the
// environment. Missing variables are not an error: an empty key fails later,
// when the signer is built.
func ResolveEnvironment(config *configs.BenchConfig, lookup func(string) (string, bool)) {
	if config.SecretEnv != "" {
		config.Secret, _ = lookup(config.SecretEnv)
	}

	if (config.Account == "") && (config.AccountEnv != "") {
		config.Account, _ = lookup(config.AccountEnv)
	}
}
