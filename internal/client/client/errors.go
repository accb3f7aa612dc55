package client

import "errors"

var (
	// ErrTransaction is reported when no response was received.
	ErrTransaction = errors.New("An error occurred during the transaction")
	// ErrNoEnvelope is wrapped when a body picked as an envelope is not one.
	ErrNoEnvelope = errors.New("response is not an envelope")
)

// RemoteError carries the "err" value of a response envelope.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}
