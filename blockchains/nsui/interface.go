package nsui

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/ethereum/go-ethereum/rpc"
)

const (
	key_hrp = "suiprivkey"

	// Signature scheme flag of ed25519 keys.
	flag_ed25519 byte = 0x00
)

// Positional parameters JSON-RPC calls.
// Satisfied by *rpc.Client.
type caller interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

type BlockchainInterface struct {
}

func (this *BlockchainInterface) Client(config *configs.BenchConfig, logger core.Logger) (core.BlockchainClient, error) {
	logger.Tracef("new client")

	private, err := parsePrivateKey(config.Secret)
	if err != nil {
		return nil, err
	}

	logger.Tracef("use endpoint '%s'", config.Endpoint)
	client, err := rpc.DialContext(context.Background(), config.Endpoint)
	if err != nil {
		return nil, err
	}

	return newClient(logger, client, private), nil
}

// Parse either a Bech32 "suiprivkey1..." key or an hexadecimal 32 bytes seed.
func parsePrivateKey(secret string) (ed25519.PrivateKey, error) {
	var seed []byte

	secret = strings.TrimSpace(secret)

	if secret == "" {
		return nil, fmt.Errorf("missing private key")
	}

	if strings.HasPrefix(secret, key_hrp+"1") {
		hrp, data, err := bech32.Decode(secret)
		if err != nil {
			return nil, fmt.Errorf("invalid private key: %w", err)
		}

		if hrp != key_hrp {
			return nil, fmt.Errorf("unexpected key prefix '%s'", hrp)
		}

		decoded, err := bech32.ConvertBits(data, 5, 8, false)
		if err != nil {
			return nil, fmt.Errorf("invalid private key: %w", err)
		}

		if (len(decoded) != ed25519.SeedSize+1) ||
			(decoded[0] != flag_ed25519) {
			return nil, fmt.Errorf("unsupported key scheme")
		}

		seed = decoded[1:]
	} else {
		decoded, err := hex.DecodeString(strings.TrimPrefix(secret, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid private key: %w", err)
		}

		if len(decoded) != ed25519.SeedSize {
			return nil, fmt.Errorf("invalid private key length "+
				"(%d bytes)", len(decoded))
		}

		seed = decoded
	}

	return ed25519.NewKeyFromSeed(seed), nil
}
