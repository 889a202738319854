package address

import (
	"errors"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByUser(userID int) ([]Address, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByUser(userID)
}

func (s *Service) Create(userID int, a Address) (Address, error) {
	if userID <= 0 {
		return Address{}, ErrNotFound
	}
	if a.Street == "" || a.City == "" {
		return Address{}, errors.New("street and city are required")
	}
	a.UserID = userID
	now := time.Now().UTC().Format(time.RFC3339)
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.repo.Create(a)
}

func (s *Service) Update(userID, addressID int, a Address) (Address, error) {
	if userID <= 0 || addressID <= 0 {
		return Address{}, ErrNotFound
	}
	if a.Street == "" || a.City == "" {
		return Address{}, errors.New("street and city are required")
	}
	a.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(userID, addressID, a)
}

func (s *Service) Delete(userID, addressID int) error {
	if userID <= 0 || addressID <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(userID, addressID)
}
