package book

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("book not found")

type Repository interface {
	List() ([]Book, error)
	GetByID(id int) (Book, error)
	Create(b Book) (Book, error)
	Update(id int, b Book) (Book, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	books  []Book
	nextID int
}

func NewInMemoryRepository(seed []Book) *InMemoryRepository {
	r := &InMemoryRepository{books: make([]Book, 0, len(seed))}
	maxID := 0
	for _, b := range seed {
		r.books = append(r.books, b)
		if b.BookID > maxID {
			maxID = b.BookID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, len(r.books))
	copy(out, r.books)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.books {
		if b.BookID == id {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

func (r *InMemoryRepository) Create(b Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.BookID == 0 {
		b.BookID = r.nextID
		r.nextID++
	}
	r.books = append(r.books, b)
	return b, nil
}

func (r *InMemoryRepository) Update(id int, b Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.books {
		if existing.BookID == id {
			b.BookID = id
			r.books[i] = b
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.books {
		if b.BookID == id {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
