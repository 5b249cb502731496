package nsui

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// Intent of a transaction signature: scope, version and application ids.
var transactionIntent = []byte{0, 0, 0}

const digestPrefix = "TransactionData::"

// Derive the address of an ed25519 public key.
func publicKeyAddress(public ed25519.PublicKey) string {
	sum := blake2b.Sum256(append([]byte{flag_ed25519}, public...))

	return "0x" + hex.EncodeToString(sum[:])
}

type transaction struct {
	digest    string
	txBytes   string // base64 BCS transaction data
	signature string // base64 flag || signature || public key
	effects   *transactionEffects
}

func (this *transaction) Id() string {
	return this.digest
}

func newSignedTransaction(txBytes []byte, private ed25519.PrivateKey) *transaction {
	message := append(append([]byte{}, transactionIntent...), txBytes...)
	hash := blake2b.Sum256(message)

	signature := make([]byte, 0, 1+ed25519.SignatureSize+ed25519.PublicKeySize)
	signature = append(signature, flag_ed25519)
	signature = append(signature, ed25519.Sign(private, hash[:])...)
	signature = append(signature, private.Public().(ed25519.PublicKey)...)

	digest := blake2b.Sum256(append([]byte(digestPrefix), txBytes...))

	return &transaction{
		digest:    base58.Encode(digest[:]),
		txBytes:   base64.StdEncoding.EncodeToString(txBytes),
		signature: base64.StdEncoding.EncodeToString(signature),
	}
}
