package core

import (
	"errors"
	"fmt"
)

// Returned, wrapped in a ConfirmationError, when a confirmation wait exceeds
// the configured timeout.
var ErrConfirmationTimeout = errors.New("confirmation wait exceeded")

// The network or the SDK rejected the construction or the broadcast of a
// transaction.
type SubmissionError struct {
	Err error
}

func (this *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed: %s", this.Err.Error())
}

func (this *SubmissionError) Unwrap() error {
	return this.Err
}

// A submitted transaction never reached the awaited confirmation state,
// either because the chain reported a failure or because the wait exceeded
// its bound.
type ConfirmationError struct {
	Id  string
	Err error
}

func (this *ConfirmationError) Error() string {
	return fmt.Sprintf("confirmation of '%s' failed: %s", this.Id,
		this.Err.Error())
}

func (this *ConfirmationError) Unwrap() error {
	return this.Err
}

// The signer balance cannot cover the whole run.
type PreflightError struct {
	Need string
	Have string
}

func (this *PreflightError) Error() string {
	return fmt.Sprintf("insufficient balance: need ~%s, have %s",
		this.Need, this.Have)
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrConfirmationTimeout)
}
