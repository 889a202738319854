package book

import "errors"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Book, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Book, error) {
	if id <= 0 {
		return Book{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) Create(b Book) (Book, error) {
	if b.Title == "" {
		return Book{}, errors.New("title is required")
	}
	if b.Price.IsNegative() {
		return Book{}, errors.New("price must be non-negative")
	}
	return s.repo.Create(b)
}

func (s *Service) Update(id int, b Book) (Book, error) {
	if id <= 0 {
		return Book{}, ErrNotFound
	}
	if b.Price.IsNegative() {
		return Book{}, errors.New("price must be non-negative")
	}
	return s.repo.Update(id, b)
}

func (s *Service) Delete(id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
