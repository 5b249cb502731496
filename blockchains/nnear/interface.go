// NEAR client.
//
// Transfers are signed locally and submitted through the JSON-RPC API of a
// single node.
//
// Configuration:
//
//   secret  - The private key of the signer, as "ed25519:<base58>" where the
//             base58 part encodes either the 64 bytes key pair or the 32 bytes
//             seed.
//
//   account - The named account of the signer (e.g. "alice.testnet").
//
//   finality - "optimistic" waits for EXECUTED_OPTIMISTIC, "final" waits for
//              FINAL.

package nnear

import (
	"crypto/ed25519"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"fmt"
	"net/http"
	"strings"

	"github.com/mr-tron/base58"
)

const key_prefix = "ed25519:"

type BlockchainInterface struct {
}

func (this *BlockchainInterface) Client(config *configs.BenchConfig, logger core.Logger) (core.BlockchainClient, error) {
	var private ed25519.PrivateKey
	var provider *jsonrpcProvider
	var err error

	logger.Tracef("new client")

	private, err = parsePrivateKey(config.Secret)
	if err != nil {
		return nil, err
	}

	if config.Account == "" {
		return nil, fmt.Errorf("missing account id")
	}

	logger.Tracef("use endpoint '%s'", config.Endpoint)
	provider = newJsonrpcProvider(config.Endpoint, &http.Client{})

	logger.Tracef("use account '%s'", config.Account)

	return newClient(logger, provider, config.Account, private,
		config.Polling.Interval), nil
}

func parsePrivateKey(secret string) (ed25519.PrivateKey, error) {
	var bytes []byte
	var err error

	secret = strings.TrimSpace(secret)

	if secret == "" {
		return nil, fmt.Errorf("missing private key")
	}

	if !strings.HasPrefix(secret, key_prefix) {
		return nil, fmt.Errorf("unsupported key type (expected '%s')",
			key_prefix)
	}

	bytes, err = base58.Decode(strings.TrimPrefix(secret, key_prefix))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	switch len(bytes) {
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(bytes), nil
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(bytes), nil
	default:
		return nil, fmt.Errorf("invalid private key length (%d bytes)",
			len(bytes))
	}
}

func formatPublicKey(public ed25519.PublicKey) string {
	return key_prefix + base58.Encode(public)
}
