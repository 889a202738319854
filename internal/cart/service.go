package cart

import "errors"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ItemsByUser(userID int) ([]ItemDetail, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ItemsByUser(userID)
}

func (s *Service) AddToCart(userID, bookID, quantity int) error {
	if userID <= 0 || bookID <= 0 {
		return ErrNotFound
	}
	if quantity <= 0 {
		return errors.New("quantity must be greater than 0")
	}
	return s.repo.Add(userID, bookID, quantity)
}

// UpdateQuantity sets an item's quantity; non-positive quantities remove the
// row. Only the owner may touch the item.
func (s *Service) UpdateQuantity(userID, cartItemID, quantity int) error {
	if err := s.verifyOwnership(userID, cartItemID); err != nil {
		return err
	}
	if quantity <= 0 {
		return s.repo.Remove(cartItemID)
	}
	return s.repo.UpdateQuantity(cartItemID, quantity)
}

// RemoveItem decrements the item by one, dropping the row when it reaches
// zero.
func (s *Service) RemoveItem(userID, cartItemID int) error {
	it, err := s.repo.ItemByID(cartItemID)
	if err != nil {
		return err
	}
	if it.UserID != userID {
		return ErrForbidden
	}

	if it.Quantity-1 <= 0 {
		return s.repo.Remove(cartItemID)
	}
	return s.repo.UpdateQuantity(cartItemID, it.Quantity-1)
}

// ClearCart is the single-statement wipe checkout relies on.
func (s *Service) ClearCart(userID int) error {
	if userID <= 0 {
		return ErrNotFound
	}
	return s.repo.Clear(userID)
}

func (s *Service) verifyOwnership(userID, cartItemID int) error {
	it, err := s.repo.ItemByID(cartItemID)
	if err != nil {
		return err
	}
	if it.UserID != userID {
		return ErrForbidden
	}
	return nil
}
