// Package results contains the information about the results of a run and
// handles their export. Every successful attempt produces one
// TransactionResult; the ordered list of them is what a run writes out.
package results

import (
	"time"
)

// TransactionResult is the outcome of one successful transfer.
type TransactionResult struct {
	TxId    string        // Chain native identifier (hash, digest, signature)
	Latency time.Duration // From submission to the awaited finality, whole milliseconds
	Fee     *float64      // Native tokens debited beyond the transfer, nil if not tracked
}

// NewTransactionResult truncates the latency to the millisecond, the
// precision of the exported files.
func NewTransactionResult(txId string, latency time.Duration, fee *float64) *TransactionResult {
	return &TransactionResult{
		TxId:    txId,
		Latency: latency.Truncate(time.Millisecond),
		Fee:     fee,
	}
}

// LatencyMs is the latency in milliseconds.
func (this *TransactionResult) LatencyMs() int64 {
	return this.Latency.Milliseconds()
}
