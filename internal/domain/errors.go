package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies remote failures so callers can tell transient
// connectivity problems from real rejections without inspecting error
// message text.
type ErrorKind string

const (
	// ErrorKindNetwork covers connection-refused, timeout and offline
	// style failures. Always recoverable; stores degrade to local-only.
	ErrorKindNetwork ErrorKind = "network"
	// ErrorKindRemote covers every other remote failure (constraint
	// violations, rejected writes). Optimistic state is rolled back.
	ErrorKindRemote ErrorKind = "remote"
)

// RemoteError wraps an error from a remote datasource with its kind.
// The transport layer is responsible for classification; upper layers
// only ever look at the kind.
type RemoteError struct {
	Kind ErrorKind
	Err  error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// WrapNetworkError marks err as a transient network failure.
func WrapNetworkError(err error) error {
	if err == nil {
		return nil
	}
	return &RemoteError{Kind: ErrorKindNetwork, Err: err}
}

// WrapRemoteError marks err as a non-transient remote failure.
func WrapRemoteError(err error) error {
	if err == nil {
		return nil
	}
	return &RemoteError{Kind: ErrorKindRemote, Err: err}
}

// IsNetworkError reports whether err is classified as a transient
// network failure anywhere in its chain.
func IsNetworkError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == ErrorKindNetwork
}
