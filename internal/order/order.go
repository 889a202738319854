package order

import (
	"github.com/shopspring/decimal"
)

// LineItem is a frozen copy of one cart row at checkout time. Title and
// Price are duplicated from the catalog so later price changes never
// alter a placed order.
type LineItem struct {
	BookID   int             `json:"bookId"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Order is a placed order with its immutable line items.
type Order struct {
	ID         int             `json:"orderID"`
	UserID     int             `json:"userID"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     Status          `json:"status"`
	CreatedAt  string          `json:"createdAt,omitempty"`
	Items      []LineItem      `json:"books"`
}
