package nnear

import (
	"context"
	"encoding/json"
	"errors"
	"finality-benchmark/util"
	"fmt"
	"net/http"
	"sync/atomic"
)

// Calls JSON-RPC methods with named parameters.
type provider interface {
	call(ctx context.Context, method string, params, out interface{}) error
}

type jsonrpcRequest struct {
	Jsonrpc string      `json:"jsonrpc"`
	Id      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type jsonrpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// An error reported by the node.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Name    string          `json:"name"`
	Cause   *RPCErrorCause  `json:"cause"`
	Data    json.RawMessage `json:"data"`
}

type RPCErrorCause struct {
	Name string          `json:"name"`
	Info json.RawMessage `json:"info"`
}

func (this *RPCError) Error() string {
	if this.Cause != nil {
		return fmt.Sprintf("rpc error %d (%s: %s): %s", this.Code,
			this.Name, this.Cause.Name, this.Data)
	}

	return fmt.Sprintf("rpc error %d (%s): %s %s", this.Code, this.Name,
		this.Message, this.Data)
}

func (this *RPCError) causeName() string {
	if this.Cause == nil {
		return ""
	}

	return this.Cause.Name
}

// The node gave up waiting or does not know the transaction yet. Asking again
// later may succeed.
func isTransient(err error) bool {
	var rerr *RPCError

	if !errors.As(err, &rerr) {
		return false
	}

	switch rerr.causeName() {
	case "TIMEOUT_ERROR", "UNKNOWN_TRANSACTION":
		return true
	default:
		return false
	}
}

type jsonrpcProvider struct {
	endpoint string
	client   *http.Client
	nextId   atomic.Uint64
}

func newJsonrpcProvider(endpoint string, client *http.Client) *jsonrpcProvider {
	return &jsonrpcProvider{
		endpoint: endpoint,
		client:   client,
	}
}

func (this *jsonrpcProvider) call(ctx context.Context, method string, params, out interface{}) error {
	var response jsonrpcResponse
	var err error

	err = util.PostJSON(ctx, this.client, this.endpoint, &jsonrpcRequest{
		Jsonrpc: "2.0",
		Id:      this.nextId.Add(1),
		Method:  method,
		Params:  params,
	}, &response)
	if err != nil {
		return err
	}

	if response.Error != nil {
		return response.Error
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(response.Result, out)
}

type viewAccessKeyParams struct {
	RequestType string `json:"request_type"`
	Finality    string `json:"finality"`
	AccountId   string `json:"account_id"`
	PublicKey   string `json:"public_key"`
}

type viewAccessKeyResult struct {
	Nonce     uint64 `json:"nonce"`
	BlockHash string `json:"block_hash"`
	Error     string `json:"error"`
}

type viewAccountParams struct {
	RequestType string `json:"request_type"`
	Finality    string `json:"finality"`
	AccountId   string `json:"account_id"`
}

type viewAccountResult struct {
	Amount string `json:"amount"`
	Error  string `json:"error"`
}

type sendTxParams struct {
	SignedTxBase64 string `json:"signed_tx_base64"`
	WaitUntil      string `json:"wait_until"`
}

type txStatusParams struct {
	TxHash          string `json:"tx_hash"`
	SenderAccountId string `json:"sender_account_id"`
	WaitUntil       string `json:"wait_until"`
}

type txStatusResult struct {
	FinalExecutionStatus string                     `json:"final_execution_status"`
	Status               map[string]json.RawMessage `json:"status"`
	Transaction          struct {
		Hash string `json:"hash"`
	} `json:"transaction"`
}

// The outcome of the transaction failed.
// An outcome still in progress is not a failure.
func (this *txStatusResult) failure() error {
	var raw json.RawMessage
	var ok bool

	raw, ok = this.Status["Failure"]
	if !ok {
		return nil
	}

	return fmt.Errorf("transaction failed: %s", raw)
}
