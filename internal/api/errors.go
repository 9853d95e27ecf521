package api

import "fmt"

// ServiceError is a network or HTTP failure from one of the remote
// services. Msg is a human-readable message meant for direct display in
// the UI; Err carries the underlying cause for the logs.
type ServiceError struct {
	Msg string
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Message returns just the display text, without the underlying cause.
func (e *ServiceError) Message() string { return e.Msg }

func (e *ServiceError) Unwrap() error { return e.Err }

// NotFoundError is the ServiceError specialization for lookups of an order
// id the backend does not know. The route layer renders it differently
// from a generic fetch failure, so it must stay matchable via errors.As.
type NotFoundError struct {
	ServiceError
	OrderID string
}

// Unwrap exposes the embedded ServiceError so errors.As finds either type.
func (e *NotFoundError) Unwrap() error { return &e.ServiceError }

func notFoundOrder(id string) *NotFoundError {
	return &NotFoundError{
		ServiceError: ServiceError{Msg: fmt.Sprintf("Couldn't find order #%s", id)},
		OrderID:      id,
	}
}
