package order

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Repository persists orders and their line items.
type Repository interface {
	// Create inserts the order header and all line items atomically and
	// returns the new order id.
	Create(userID int, total decimal.Decimal, items []LineItem) (int, error)
	// UpdateStatus overwrites the status unconditionally and returns the
	// number of rows touched. Zero rows means the id is unknown.
	UpdateStatus(orderID int, status Status) (int64, error)
	GetByID(orderID int) (Order, error)
	ListByUser(userID int) ([]Order, error)
}

// InMemoryRepository keeps orders in a map for tests.
type InMemoryRepository struct {
	mu     sync.Mutex
	orders map[int]Order
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[int]Order),
		nextID: 1,
	}
}

func (r *InMemoryRepository) Create(userID int, total decimal.Decimal, items []LineItem) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	copied := make([]LineItem, len(items))
	copy(copied, items)
	r.orders[id] = Order{
		ID:         id,
		UserID:     userID,
		TotalPrice: total,
		Status:     StatusCreated,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Items:      copied,
	}
	return id, nil
}

func (r *InMemoryRepository) UpdateStatus(orderID int, status Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return 0, nil
	}
	o.Status = status
	r.orders[orderID] = o
	return 1, nil
}

func (r *InMemoryRepository) GetByID(orderID int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}
