package nsolana

import (
	"context"
	"errors"
	"finality-benchmark/core"
	"finality-benchmark/util"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
)

var errBlockhashExpired = errors.New("blockhash expired")

// Polls the status of a signature until it reaches a target confirmation
// status.
type statusConfirmer struct {
	logger   core.Logger
	client   backend
	target   rpc.ConfirmationStatusType
	interval time.Duration
}

func newStatusConfirmer(logger core.Logger, client backend, target rpc.ConfirmationStatusType, interval time.Duration) *statusConfirmer {
	return &statusConfirmer{
		logger:   logger,
		client:   client,
		target:   target,
		interval: interval,
	}
}

func statusLevel(status rpc.ConfirmationStatusType) int {
	switch status {
	case rpc.ConfirmationStatusProcessed:
		return 1
	case rpc.ConfirmationStatusConfirmed:
		return 2
	case rpc.ConfirmationStatusFinalized:
		return 3
	default:
		return 0
	}
}

func (this *statusConfirmer) confirm(ctx context.Context, tx *transaction) error {
	return util.Poll(ctx, this.interval, func() (bool, error) {
		result, err := this.client.GetSignatureStatuses(ctx, true,
			tx.signature())
		if errors.Is(err, rpc.ErrNotFound) {
			return this.checkExpired(ctx, tx)
		} else if err != nil {
			return false, err
		}

		if (result == nil) || (len(result.Value) == 0) ||
			(result.Value[0] == nil) {
			return this.checkExpired(ctx, tx)
		}

		status := result.Value[0]

		if status.Err != nil {
			return false, fmt.Errorf("transaction failed: %v",
				status.Err)
		}

		this.logger.Tracef("transaction '%s' is %s (slot %d)", tx.Id(),
			status.ConfirmationStatus, status.Slot)

		return statusLevel(status.ConfirmationStatus) >=
			statusLevel(this.target), nil
	})
}

// An unknown signature whose blockhash expired never lands.
func (this *statusConfirmer) checkExpired(ctx context.Context, tx *transaction) (bool, error) {
	height, err := this.client.GetBlockHeight(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return false, err
	}

	if height > tx.lastValidHeight {
		return false, fmt.Errorf("%w (height %d > %d)",
			errBlockhashExpired, height, tx.lastValidHeight)
	}

	return false, nil
}
