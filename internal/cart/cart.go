package cart

import "github.com/shopspring/decimal"

// Item is one cart_items row.
type Item struct {
	CartItemID int `json:"cartItemID"`
	UserID     int `json:"userID"`
	BookID     int `json:"bookID"`
	Quantity   int `json:"quantity"`
}

// ItemDetail is a cart row joined with its book: what checkout snapshots.
// Price and Title are read from the catalog at query time; once an order is
// created from them they are frozen on the order and this view is forgotten.
type ItemDetail struct {
	CartItemID int             `json:"cartItemID"`
	BookID     int             `json:"bookID"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
}
