package author

import "errors"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Author, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Author, error) {
	if id <= 0 {
		return Author{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) Create(a Author) (Author, error) {
	if a.Name == "" {
		return Author{}, errors.New("name is required")
	}
	return s.repo.Create(a)
}
