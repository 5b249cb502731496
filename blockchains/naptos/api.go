package naptos

import (
	"context"
	"errors"
	"finality-benchmark/util"
	"net/http"
	"net/url"
	"strings"
)

type restApi struct {
	endpoint string
	client   *http.Client
}

func newRestApi(endpoint string, client *http.Client) *restApi {
	return &restApi{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client:   client,
	}
}

func (this *restApi) get(ctx context.Context, path string, out interface{}) error {
	return util.GetJSON(ctx, this.client, this.endpoint+path, out)
}

func (this *restApi) post(ctx context.Context, path string, body, out interface{}) error {
	return util.PostJSON(ctx, this.client, this.endpoint+path, body, out)
}

func isNotFound(err error) bool {
	var herr *util.HTTPError

	return errors.As(err, &herr) && (herr.Status == http.StatusNotFound)
}

type accountInfo struct {
	SequenceNumber string `json:"sequence_number"`
}

type gasEstimation struct {
	GasEstimate uint64 `json:"gas_estimate"`
}

type entryFunctionPayload struct {
	Type          string        `json:"type"`
	Function      string        `json:"function"`
	TypeArguments []string      `json:"type_arguments"`
	Arguments     []interface{} `json:"arguments"`
}

type transactionSignature struct {
	Type      string `json:"type"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

type submission struct {
	Sender                  string                `json:"sender"`
	SequenceNumber          string                `json:"sequence_number"`
	MaxGasAmount            string                `json:"max_gas_amount"`
	GasUnitPrice            string                `json:"gas_unit_price"`
	ExpirationTimestampSecs string                `json:"expiration_timestamp_secs"`
	Payload                 *entryFunctionPayload `json:"payload"`
	Signature               *transactionSignature `json:"signature,omitempty"`
}

type pendingTransaction struct {
	Hash string `json:"hash"`
}

type transactionInfo struct {
	Type     string `json:"type"`
	Hash     string `json:"hash"`
	Success  bool   `json:"success"`
	VmStatus string `json:"vm_status"`
}

type viewRequest struct {
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []string `json:"arguments"`
}

func transactionPath(hash string) string {
	return "/transactions/by_hash/" + url.PathEscape(hash)
}
