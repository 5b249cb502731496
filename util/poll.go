package util

import (
	"context"
	"time"
)

// Poll calls `check` immediately and then every `interval` until it reports
// done, returns an error, or the context ends.
// A non positive interval polls without pause.
func Poll(ctx context.Context, interval time.Duration, check func() (bool, error)) error {
	var ticker *time.Ticker
	var done bool
	var err error

	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	for {
		done, err = check()
		if err != nil {
			return err
		} else if done {
			return nil
		}

		if ticker == nil {
			err = ctx.Err()
			if err != nil {
				return err
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
