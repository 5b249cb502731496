package naptos

import (
	"crypto/ed25519"
	"encoding/hex"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	key_prefix = "ed25519-priv-"

	// Authentication scheme of single ed25519 keys.
	scheme_ed25519 byte = 0x00
)

type BlockchainInterface struct {
}

func (this *BlockchainInterface) Client(config *configs.BenchConfig, logger core.Logger) (core.BlockchainClient, error) {
	var private ed25519.PrivateKey
	var err error

	logger.Tracef("new client")

	private, err = parsePrivateKey(config.Secret)
	if err != nil {
		return nil, err
	}

	logger.Tracef("use endpoint '%s'", config.Endpoint)

	return newClient(logger, newRestApi(config.Endpoint, &http.Client{}),
		private, config.Polling.Interval), nil
}

// Parse an hexadecimal 32 bytes seed, with or without the "ed25519-priv-"
// and "0x" prefixes.
func parsePrivateKey(secret string) (ed25519.PrivateKey, error) {
	var seed []byte
	var err error

	secret = strings.TrimSpace(secret)
	secret = strings.TrimPrefix(secret, key_prefix)
	secret = strings.TrimPrefix(secret, "0x")

	if secret == "" {
		return nil, fmt.Errorf("missing private key")
	}

	seed, err = hex.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid private key length (%d bytes)",
			len(seed))
	}

	return ed25519.NewKeyFromSeed(seed), nil
}

// The address of an account created from a single ed25519 key is its
// authentication key.
func publicKeyAddress(public ed25519.PublicKey) string {
	var hash [32]byte = sha3.Sum256(append(append([]byte{}, public...),
		scheme_ed25519))

	return "0x" + hex.EncodeToString(hash[:])
}
