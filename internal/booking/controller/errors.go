package controller

import "errors"

var (
	// ErrNotReady is returned when an operation is attempted from a state
	// that does not allow it, including a second Submit while one is in
	// flight.
	ErrNotReady = errors.New("controller is not ready for this operation")

	// ErrDraftInvalid is returned when Submit is called while the draft
	// does not pass the submission gate.
	ErrDraftInvalid = errors.New("draft does not satisfy the submission rules")

	// ErrClosed is returned once the controller has been closed.
	ErrClosed = errors.New("controller is closed")
)
