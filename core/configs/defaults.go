package configs

import (
	"sort"
	"time"
)

const (
	defaultDelay             = 1000 * time.Millisecond
	defaultPollInterval      = time.Second
	defaultFinalizedInterval = 12 * time.Second
	defaultResultsDir        = "./results"
)

// Compiled-in configuration of every supported network.
// These reproduce the standalone benchmark scripts: a run without any
// configuration file uses exactly these values.
var defaults = map[string]BenchConfig{
	"sepolia": {
		Chain:        ChainEthereum,
		Name:         "sepolia",
		Endpoint:     "https://ethereum-sepolia-rpc.publicnode.com",
		Recipient:    "0x7ba36126910c75b27363ecaa2a57033686c087fb",
		Amount:       "0.0001",
		Transactions: 30,
		Finality:     FinalityOptimistic,
		LatencyFrom:  LatencyFromPrepare,
		SecretEnv:    "ETH_PRIVATE_KEY",
		EVM:          EVMInfo{Confirmations: 12},
	},
	"arbitrum": {
		Chain:        ChainEthereum,
		Name:         "arbitrum",
		Endpoint:     "https://sepolia-rollup.arbitrum.io/rpc",
		Recipient:    "0x7ba36126910c75b27363ecaa2a57033686c087fb",
		Amount:       "0.0001",
		Transactions: 30,
		Finality:     FinalityOptimistic,
		LatencyFrom:  LatencyFromPrepare,
		SecretEnv:    "ETH_PRIVATE_KEY",
		EVM:          EVMInfo{Confirmations: 2},
	},
	"solana": {
		Chain:        ChainSolana,
		Name:         "solana",
		Endpoint:     "https://api.devnet.solana.com",
		Recipient:    "CosSyFF2mqvCZZDNsXr19yQ8PHj8eVJ2qtMtauaFM7gA",
		Amount:       "0.001",
		Transactions: 5,
		Finality:     FinalityOptimistic,
		TrackFee:     true,
		SecretEnv:    "SOL_PRIVATE_KEY",
	},
	"near": {
		Chain:        ChainNear,
		Name:         "near",
		Endpoint:     "https://rpc.testnet.fastnear.com",
		Recipient:    "alakazam.testnet",
		Amount:       "0.01",
		Transactions: 5,
		Finality:     FinalityOptimistic,
		TrackFee:     true,
		SecretEnv:    "NEAR_PRIVATE_KEY",
		AccountEnv:   "NEAR_ACCOUNT_ID",
		PreflightFee: "0.0003",
	},
	"sui": {
		Chain:        ChainSui,
		Name:         "sui",
		Endpoint:     "https://fullnode.testnet.sui.io:443",
		Recipient:    "0x3b5bcd532e83a91eeca8fa22cfdbfac5dfe1a07a575e4d9d5e2e3e6dc71dd47c",
		Amount:       "0.01",
		Transactions: 5,
		Finality:     FinalityOptimistic,
		LatencyFrom:  LatencyFromPrepare,
		TrackFee:     true,
		SecretEnv:    "SUI_PRIVATE_KEY",
	},
	"aptos": {
		Chain:        ChainAptos,
		Name:         "aptos",
		Endpoint:     "https://fullnode.testnet.aptoslabs.com/v1",
		Recipient:    "0x62616de9bc3c7726eb7e0341bb31118d34ad124c2d31daefb242d6e0c10592ef",
		Amount:       "0.01",
		Transactions: 30,
		Finality:     FinalityOptimistic,
		SecretEnv:    "APTOS_PRIVATE_KEY",
	},
	"mock": {
		Chain:        ChainMock,
		Name:         "mock",
		Endpoint:     "mock://local",
		Recipient:    "mock-recipient",
		Amount:       "0.01",
		Transactions: 5,
		Finality:     FinalityOptimistic,
		TrackFee:     true,
		Mock:         MockInfo{Latency: 50 * time.Millisecond},
	},
}

// Defaults returns a fresh copy of the compiled-in configuration of the given
// network, with the common fields filled.
func Defaults(name string) (*BenchConfig, bool) {
	config, ok := defaults[name]
	if !ok {
		return nil, false
	}

	if config.Delay == 0 {
		config.Delay = defaultDelay
	}

	if config.Polling.Interval == 0 {
		config.Polling.Interval = defaultPollInterval
	}

	if config.Polling.FinalizedInterval == 0 {
		config.Polling.FinalizedInterval = defaultFinalizedInterval
	}

	if config.LatencyFrom == "" {
		config.LatencyFrom = LatencyFromSubmit
	}

	if config.Results == "" {
		config.Results = defaultResultsDir
	}

	config.Influx.TokenEnv = "INFLUX_TOKEN"

	return &config, true
}

// Networks lists the names of all networks with a compiled-in configuration.
func Networks() []string {
	ret := make([]string, 0, len(defaults))

	for name := range defaults {
		ret = append(ret, name)
	}

	sort.Strings(ret)

	return ret
}
