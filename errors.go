package storex

import (
	"errors"
	"fmt"
)

// ErrInvalidReducer is returned by Dispatch when the Store was built without
// a callable reducer.
var ErrInvalidReducer = errors.New("transition function is not callable")

// ListenerError reports a listener that panicked during notification.
type ListenerError struct {
	// SubscriptionID is the ID of the failing subscription.
	SubscriptionID uint64

	// Value is whatever the listener panicked with.
	Value any
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %d panicked: %v", e.SubscriptionID, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *ListenerError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
