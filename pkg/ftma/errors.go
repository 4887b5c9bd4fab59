package ftma

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates malformed coordinator inputs: bad
	// dimensions, out-of-range client ids, a repeated registration, or
	// out-of-range threshold/scale parameters.
	ErrInvalidArgument = errors.New("ftma: invalid argument")

	// ErrInsufficientShares indicates Finalize could not find enough
	// surviving share-holders to reconstruct a dropped client's mask.
	ErrInsufficientShares = errors.New("ftma: insufficient shares for reconstruction")

	// ErrProtocolState indicates Finalize was called in a state the
	// protocol does not allow, such as before threshold registrations or
	// with an active set too small to reconstruct from.
	ErrProtocolState = errors.New("ftma: invalid protocol state")
)

// InvalidArgumentError carries the offending field and why it was rejected.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("ftma: invalid argument %s: %s", e.Field, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// InsufficientSharesError reports exactly which dropout could not be
// reconstructed and how many share-holders were actually found.
type InsufficientSharesError struct {
	ClientID  int
	Have      int
	Threshold int
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("ftma: client %d: insufficient shares: have %d, need %d",
		e.ClientID, e.Have, e.Threshold)
}

func (e *InsufficientSharesError) Unwrap() error {
	return ErrInsufficientShares
}

// ProtocolStateError reports why Finalize refused to run.
type ProtocolStateError struct {
	Reason string
}

func (e *ProtocolStateError) Error() string {
	return fmt.Sprintf("ftma: invalid protocol state: %s", e.Reason)
}

func (e *ProtocolStateError) Unwrap() error {
	return ErrProtocolState
}
