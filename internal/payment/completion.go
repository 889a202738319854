package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bookhaven/bookstore-backend/internal/identity"
	"github.com/bookhaven/bookstore-backend/internal/logging"
)

// OrderMarker finalizes an order once its payment is confirmed. ok reports
// whether the order exists; marking an already-paid order again is a no-op.
type OrderMarker interface {
	MarkPaid(orderID int) (ok bool, err error)
}

// CompletionResult is returned to the user coming back from the hosted
// payment flow.
type CompletionResult struct {
	OrderID int    `json:"orderID"`
	Message string `json:"message"`
}

// Completion reconciles a provider session outcome back onto the order.
type Completion struct {
	gateway Gateway
	orders  OrderMarker
}

func NewCompletion(gateway Gateway, orders OrderMarker) *Completion {
	return &Completion{gateway: gateway, orders: orders}
}

// CompleteOrder verifies the session was paid and moves the order to its
// paid terminal state. Calling it twice for the same session is safe.
//
// caller must be a validated identity; it is not matched against the
// order's owner here. Ownership was checked when the session was created.
func (c *Completion) CompleteOrder(ctx context.Context, sessionID string, caller identity.Identity) (CompletionResult, error) {
	sess, err := c.gateway.GetSessionStatus(ctx, sessionID)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("retrieving session %s: %w", sessionID, err)
	}

	if sess.Status != "complete" || sess.PaymentStatus != "paid" {
		logging.Log(logging.Fields{
			Service:   "payment",
			UserID:    caller.UserID,
			SessionID: sessionID,
			Step:      "complete_order",
			Status:    sess.Status,
			Message:   "session not paid yet",
		})
		return CompletionResult{}, ErrNotComplete
	}

	raw, okMeta := sess.Metadata["orderId"]
	if !okMeta {
		return CompletionResult{}, fmt.Errorf("session %s carries no order id: %w", sessionID, ErrIntegrity)
	}
	orderID, err := strconv.Atoi(raw)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("session %s carries order id %q: %w", sessionID, raw, ErrIntegrity)
	}

	okOrder, err := c.orders.MarkPaid(orderID)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("finalizing order %d: %w", orderID, err)
	}
	if !okOrder {
		return CompletionResult{}, fmt.Errorf("session %s references unknown order %d: %w", sessionID, orderID, ErrIntegrity)
	}

	logging.Log(logging.Fields{
		Service:   "payment",
		UserID:    caller.UserID,
		OrderID:   orderID,
		SessionID: sessionID,
		Step:      "complete_order",
		Status:    "completed",
	})

	return CompletionResult{OrderID: orderID, Message: "Order completed successfully"}, nil
}
