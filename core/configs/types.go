package configs

import (
	"errors"
	"fmt"
)

// Confirmation strength required before a transfer is considered durable.
type FinalityMode string

const FinalityOptimistic FinalityMode = "optimistic"
const FinalityFinal FinalityMode = "final"

// Instant from which the latency of a transfer is measured.
type LatencyOrigin string

// The clock starts before the transaction is built, so nonce, gas and
// signing round trips are part of the latency.
const LatencyFromPrepare LatencyOrigin = "prepare"

// The clock starts right before the broadcast.
const LatencyFromSubmit LatencyOrigin = "submit"

// Chain families, each served by one blockchain interface.
const (
	ChainEthereum = "ethereum"
	ChainSolana   = "solana"
	ChainNear     = "near"
	ChainSui      = "sui"
	ChainAptos    = "aptos"
	ChainMock     = "mock"
)

// ParseFinalityMode accepts the generic names as well as the chain specific
// aliases used by the various SDKs (e.g. "finalized", "confirmed").
func ParseFinalityMode(value string) (FinalityMode, error) {
	switch value {
	case "optimistic", "confirmed", "EXECUTED_OPTIMISTIC", "WaitForLocalExecution":
		return FinalityOptimistic, nil
	case "final", "finalized", "FINAL", "WaitForEffectsCert":
		return FinalityFinal, nil
	case "":
		return "", errors.New("empty finality mode provided")
	default:
		return "", fmt.Errorf("unknown finality mode '%s'", value)
	}
}

func (fm *FinalityMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var unmarshaled string

	err := unmarshal(&unmarshaled)

	if err != nil {
		return err
	}

	mode, err := ParseFinalityMode(unmarshaled)
	if err != nil {
		return err
	}

	*fm = mode

	return nil
}

func (fm FinalityMode) String() string {
	return string(fm)
}

func ParseLatencyOrigin(value string) (LatencyOrigin, error) {
	switch value {
	case "", "submit":
		return LatencyFromSubmit, nil
	case "prepare":
		return LatencyFromPrepare, nil
	default:
		return "", fmt.Errorf("unknown latency origin '%s'", value)
	}
}

func (lo *LatencyOrigin) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var unmarshaled string

	err := unmarshal(&unmarshaled)

	if err != nil {
		return err
	}

	origin, err := ParseLatencyOrigin(unmarshaled)
	if err != nil {
		return err
	}

	*lo = origin

	return nil
}
