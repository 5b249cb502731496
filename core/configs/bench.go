package configs

import (
	"time"
)

// Benchmark configuration of one chain, all the information about a run.
type BenchConfig struct {
	Chain        string        `yaml:"chain"`                   // Chain family (ethereum, solana, near, sui, aptos, mock)
	Name         string        `yaml:"name"`                    // Network name, prefix of the result file
	Endpoint     string        `yaml:"endpoint"`                // RPC endpoint URL
	Recipient    string        `yaml:"recipient"`               // Destination of every transfer
	Amount       string        `yaml:"amount"`                  // Transferred amount in native tokens
	Transactions int           `yaml:"transactions"`            // Number of attempts
	Delay        time.Duration `yaml:"delay"`                   // Pause after every attempt
	Finality     FinalityMode  `yaml:"finality"`                // Confirmation level to wait for
	TrackFee     bool          `yaml:"fee"`                     // Compute the fee from balance deltas
	LatencyFrom  LatencyOrigin `yaml:"latency_from,omitempty"`  // Start of the latency window (prepare or submit)
	Timeout      time.Duration `yaml:"timeout,omitempty"`       // Bound of a confirmation wait, 0 means none
	Results      string        `yaml:"results"`                 // Directory of the CSV files
	SecretEnv    string        `yaml:"secret_env"`              // Environment variable holding the private key
	Account      string        `yaml:"account,omitempty"`       // Signer account id (NEAR)
	AccountEnv   string        `yaml:"account_env,omitempty"`   // Environment variable holding the account id
	PreflightFee string        `yaml:"preflight_fee,omitempty"` // Estimated fee per transaction for the balance check
	EVM          EVMInfo       `yaml:"evm,omitempty"`           // Ethereum family parameters
	Polling      PollInfo      `yaml:"polling,omitempty"`       // Poll intervals of the confirmation loops
	Mock         MockInfo      `yaml:"mock,omitempty"`          // Mock chain behaviour
	Influx       InfluxInfo    `yaml:"influx,omitempty"`        // Optional metrics sink

	Secret string `yaml:"-"` // Private key material, never read from a file
	Path   string `yaml:"-"` // Path of the file this configuration comes from
}

// Ethereum family parameters.
type EVMInfo struct {
	Confirmations uint64 `yaml:"confirmations"` // Confirmations awaited in optimistic mode
}

// Poll intervals of the confirmation loops.
type PollInfo struct {
	Interval          time.Duration `yaml:"interval"`           // Receipt / status poll
	FinalizedInterval time.Duration `yaml:"finalized_interval"` // Finalized block poll (EVM final mode)
}

// Behaviour of the in-process mock chain.
type MockInfo struct {
	Latency   time.Duration `yaml:"latency"`    // Simulated confirmation latency
	FailEvery int           `yaml:"fail_every"` // Every n-th transfer fails, 0 for never
}

// Optional InfluxDB v3 sink for per-transaction points.
type InfluxInfo struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Database string `yaml:"database"`
	TokenEnv string `yaml:"token_env"`
}

// Label of the run, used to name the result file.
func (this *BenchConfig) Label() string {
	return this.Name + "-" + this.Finality.String()
}

// Copy returns an independent copy of the configuration.
func (this *BenchConfig) Copy() *BenchConfig {
	var ret BenchConfig = *this
	return &ret
}
