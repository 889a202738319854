package payment

import "github.com/shopspring/decimal"

// RequestItem is one frozen order line crossing the service boundary.
type RequestItem struct {
	BookID   int             `json:"bookId"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Request asks the gateway to open a checkout session for an order. It is a
// snapshot: it carries copies of the order lines, never live cart state.
type Request struct {
	UserID      int             `json:"userId"`
	OrderID     int             `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []RequestItem   `json:"items"`
}

// Status of a gateway response.
type Status string

const (
	StatusSuccess Status = "PAYMENT_SUCCESS"
	StatusFailed  Status = "PAYMENT_FAILED"
)

// Response is the gateway's answer to a create-checkout-session call.
// Message and TransactionID are opaque pass-through strings.
type Response struct {
	OrderID       int    `json:"orderId"`
	Status        Status `json:"status"`
	Message       string `json:"message"`
	TransactionID string `json:"transactionId"`
}

// SessionStatus mirrors the provider's view of a hosted checkout session.
// Metadata carries the orderId the session was created for.
type SessionStatus struct {
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"payment_status"`
	PaymentIntentID string            `json:"payment_intent_id,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}
