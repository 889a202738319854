package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("cart item not found")
	ErrForbidden = errors.New("cart item belongs to another user")
)

type Repository interface {
	ItemsByUser(userID int) ([]ItemDetail, error)
	ItemByID(cartItemID int) (Item, error)
	Add(userID, bookID, quantity int) error
	UpdateQuantity(cartItemID, quantity int) error
	Remove(cartItemID int) error
	Clear(userID int) error
}

// BookInfo seeds the in-memory repository with catalog data for the join.
type BookInfo struct {
	Title string
	Price decimal.Decimal
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	items  []Item
	books  map[int]BookInfo
	nextID int
}

func NewInMemoryRepository(books map[int]BookInfo) *InMemoryRepository {
	return &InMemoryRepository{books: books, nextID: 1}
}

func (r *InMemoryRepository) ItemsByUser(userID int) ([]ItemDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ItemDetail, 0)
	for _, it := range r.items {
		if it.UserID != userID {
			continue
		}
		info := r.books[it.BookID]
		out = append(out, ItemDetail{
			CartItemID: it.CartItemID,
			BookID:     it.BookID,
			Title:      info.Title,
			Price:      info.Price,
			Quantity:   it.Quantity,
		})
	}
	return out, nil
}

func (r *InMemoryRepository) ItemByID(cartItemID int) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.CartItemID == cartItemID {
			return it, nil
		}
	}
	return Item{}, ErrNotFound
}

func (r *InMemoryRepository) Add(userID, bookID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.UserID == userID && it.BookID == bookID {
			r.items[i].Quantity += quantity
			return nil
		}
	}
	r.items = append(r.items, Item{CartItemID: r.nextID, UserID: userID, BookID: bookID, Quantity: quantity})
	r.nextID++
	return nil
}

func (r *InMemoryRepository) UpdateQuantity(cartItemID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.CartItemID == cartItemID {
			r.items[i].Quantity = quantity
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Remove(cartItemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.CartItemID == cartItemID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, it := range r.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return nil
}
