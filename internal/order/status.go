package order

import "fmt"

// Status is the order lifecycle state.
type Status string

const (
	StatusCreated           Status = "CREATED"
	StatusPaymentProcessing Status = "PAYMENT_PROCESSING"
	StatusPaymentSuccess    Status = "PAYMENT_SUCCESS"
	StatusPaymentFailed     Status = "PAYMENT_FAILED"
	StatusCompleted         Status = "COMPLETED"
	StatusCancelled         Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further automatic transition is expected.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusPaymentSuccess, StatusPaymentFailed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the happy-path machine
// CREATED -> PAYMENT_PROCESSING -> {PAYMENT_SUCCESS | PAYMENT_FAILED},
// PAYMENT_SUCCESS -> COMPLETED, with two deliberate allowances: the
// PAYMENT_PROCESSING hop is optional (CREATED may jump straight to a
// terminal payment state), and any state may be CANCELLED.
//
// Storage does not enforce this: status writes are last-writer-wins by
// order id, and the two writers (async initiator, completion handler) may
// race. The machine is used to reject nonsensical requests, not to
// serialize writers.
func CanTransitionTo(from, to Status) bool {
	if to == StatusCancelled {
		return true
	}
	switch from {
	case StatusCreated:
		return to == StatusPaymentProcessing || to == StatusPaymentSuccess || to == StatusPaymentFailed
	case StatusPaymentProcessing:
		return to == StatusPaymentSuccess || to == StatusPaymentFailed
	case StatusPaymentSuccess:
		return to == StatusCompleted
	}
	return false
}

// ParseStatus validates a wire value against the known states.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusCreated, StatusPaymentProcessing, StatusPaymentSuccess, StatusPaymentFailed, StatusCompleted, StatusCancelled:
		return Status(raw), nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}
