package payment

import (
	"context"
	"errors"
)

var (
	// ErrNotComplete means the hosted session has not been paid yet. The
	// caller may poll again.
	ErrNotComplete = errors.New("payment not complete")

	// ErrIntegrity means a session reference is corrupted or foreign: its
	// metadata names no order, an unparsable order, or an order that does
	// not exist. This must never be swallowed.
	ErrIntegrity = errors.New("payment session does not match a known order")
)

// Gateway is the abstract payment provider contract. The concrete wire
// protocol lives entirely behind it.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req Request) (Response, error)
	GetSessionStatus(ctx context.Context, sessionID string) (SessionStatus, error)
}
