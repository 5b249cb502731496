package core

import (
	"context"
	"errors"
	"finality-benchmark/core/configs"
	"finality-benchmark/core/results"
	"finality-benchmark/util"
	"fmt"
	"math/big"
	"time"
)

type SendOptions struct {
	// Compute the fee as the balance delta net of the transferred amount.
	TrackFee bool

	// Bound of the submission and confirmation wait, 0 for none.
	Timeout time.Duration

	// Start the clock before the transaction is built instead of right
	// before its broadcast.
	FromPrepare bool
}

// SendOne sends one transfer of `amount` base units to `to` and waits until
// it reaches the finality `mode`.
// The latency is measured from the submission, or from the construction
// with `FromPrepare`, to the end of the wait.
// Errors are either a *SubmissionError or a *ConfirmationError.
func SendOne(ctx context.Context, client BlockchainClient, to string, amount *big.Int, mode configs.FinalityMode, options SendOptions) (*results.TransactionResult, error) {
	var before, after *big.Int
	var fee *float64
	var start time.Time
	var err error

	if options.TrackFee {
		before, err = client.Balance(ctx)
		if err != nil {
			return nil, &SubmissionError{fmt.Errorf("balance: %w", err)}
		}
	}

	if options.FromPrepare {
		start = time.Now()
	}

	tx, err := client.Prepare(ctx, to, amount)
	if err != nil {
		return nil, asSubmissionError(err)
	}

	waitCtx, cancel := withOptionalTimeout(ctx, options.Timeout)
	defer cancel()

	if !options.FromPrepare {
		start = time.Now()
	}

	err = client.Submit(waitCtx, tx, mode)
	if err != nil {
		if timedOut(ctx, waitCtx) {
			return nil, newTimeoutError(tx, options.Timeout)
		}
		return nil, asSubmissionError(err)
	}

	err = client.Await(waitCtx, tx, mode)
	if err != nil {
		if timedOut(ctx, waitCtx) {
			return nil, newTimeoutError(tx, options.Timeout)
		}
		return nil, asConfirmationError(tx, err)
	}

	latency := time.Since(start)

	if options.TrackFee {
		after, err = client.Balance(ctx)
		if err != nil {
			return nil, &ConfirmationError{
				Id:  tx.Id(),
				Err: fmt.Errorf("balance after: %w", err),
			}
		}

		delta := new(big.Int).Sub(before, after)
		delta.Sub(delta, amount)

		value := util.UnitsToFloat(delta, client.Decimals())
		fee = &value
	}

	return results.NewTransactionResult(tx.Id(), latency, fee), nil
}

func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}

// The wait context expired on its own deadline, not because the caller
// cancelled the run.
func timedOut(parent, ctx context.Context) bool {
	return (parent.Err() == nil) &&
		errors.Is(ctx.Err(), context.DeadlineExceeded)
}

func newTimeoutError(tx Transaction, timeout time.Duration) error {
	return &ConfirmationError{
		Id:  tx.Id(),
		Err: fmt.Errorf("%w after %s", ErrConfirmationTimeout, timeout),
	}
}

func asSubmissionError(err error) error {
	var serr *SubmissionError
	var cerr *ConfirmationError

	if errors.As(err, &serr) || errors.As(err, &cerr) {
		return err
	}

	return &SubmissionError{err}
}

func asConfirmationError(tx Transaction, err error) error {
	var cerr *ConfirmationError

	if errors.As(err, &cerr) {
		return err
	}

	return &ConfirmationError{tx.Id(), err}
}
