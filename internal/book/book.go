package book

import "github.com/shopspring/decimal"

// Book is a catalog entry. Price is exact decimal money; it is what the
// cart snapshots at checkout time, so it must never pass through a float.
type Book struct {
	BookID    int             `json:"bookID"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	AuthorIDs []int           `json:"authorIDs,omitempty"`
	Authors   []string        `json:"authors,omitempty"`
	CreatedAt string          `json:"createdAt,omitempty"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
}
