package order

import (
	"github.com/shopspring/decimal"

	"github.com/bookhaven/bookstore-backend/internal/cart"
	"github.com/bookhaven/bookstore-backend/internal/identity"
	"github.com/bookhaven/bookstore-backend/internal/logging"
	"github.com/bookhaven/bookstore-backend/internal/metrics"
	"github.com/bookhaven/bookstore-backend/internal/payment"
)

// CartStore is the slice of the cart service checkout needs: read the
// joined view once, then wipe it.
type CartStore interface {
	ItemsByUser(userID int) ([]cart.ItemDetail, error)
	ClearCart(userID int) error
}

// Scheduler hands a payment request to the background initiator. The
// request is a snapshot, so the caller's cart can be cleared before the
// task ever runs.
type Scheduler interface {
	Schedule(caller identity.Identity, req payment.Request)
}

// Service orchestrates checkout: snapshot the cart, persist the order,
// clear the cart, then schedule payment initiation.
type Service struct {
	repo      Repository
	carts     CartStore
	scheduler Scheduler
	checkout  *metrics.Checkout
}

func NewService(repo Repository, carts CartStore, scheduler Scheduler, checkout *metrics.Checkout) *Service {
	return &Service{repo: repo, carts: carts, scheduler: scheduler, checkout: checkout}
}

// CreateOrderFromCart runs the synchronous half of checkout and returns
// the new order id. On return the order exists with status CREATED and
// the cart is empty; payment runs in the background. The cart is cleared
// before any payment outcome is known, so a failed payment leaves the
// user with an empty cart and a PAYMENT_FAILED order.
func (s *Service) CreateOrderFromCart(caller identity.Identity) (int, error) {
	items, err := s.carts.ItemsByUser(caller.UserID)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, ErrEmptyCart
	}

	lines := make([]LineItem, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		lines = append(lines, LineItem{
			BookID:   it.BookID,
			Title:    it.Title,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	orderID, err := s.repo.Create(caller.UserID, total, lines)
	if err != nil {
		return 0, err
	}
	if s.checkout != nil {
		s.checkout.OrdersCreated.Inc()
	}

	// The cart wipe is outside the order transaction. A failure here
	// leaves a stale cart next to a valid order, which is the lesser
	// evil: the order already exists and payment must proceed.
	if err := s.carts.ClearCart(caller.UserID); err != nil {
		logging.Log(logging.Fields{
			Service: "order",
			UserID:  caller.UserID,
			OrderID: orderID,
			Step:    "clear_cart",
			Status:  "error",
			Message: err.Error(),
		})
	}

	req := payment.Request{
		UserID:      caller.UserID,
		OrderID:     orderID,
		TotalAmount: total,
		Items:       make([]payment.RequestItem, 0, len(lines)),
	}
	for _, l := range lines {
		req.Items = append(req.Items, payment.RequestItem{
			BookID:   l.BookID,
			Title:    l.Title,
			Price:    l.Price,
			Quantity: l.Quantity,
		})
	}
	s.scheduler.Schedule(caller, req)

	logging.Log(logging.Fields{
		Service: "order",
		UserID:  caller.UserID,
		OrderID: orderID,
		Step:    "create_order",
		Status:  StatusCreated.String(),
	})
	return orderID, nil
}

// UpdateStatus overwrites an order's status. An unknown order id is
// logged and swallowed: status updates arrive from background workers
// and webhook-style callers that have nothing useful to do with the
// error.
func (s *Service) UpdateStatus(orderID int, status Status) error {
	rows, err := s.repo.UpdateStatus(orderID, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		logging.Log(logging.Fields{
			Service: "order",
			OrderID: orderID,
			Step:    "update_status",
			Status:  status.String(),
			Message: "order not found",
		})
		return nil
	}
	if s.checkout != nil && (status == StatusPaymentSuccess || status == StatusPaymentFailed) {
		s.checkout.PaymentOutcomes.WithLabelValues(status.String()).Inc()
	}
	return nil
}

func (s *Service) GetByID(orderID int) (Order, error) {
	return s.repo.GetByID(orderID)
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

// MarkPaid finalizes a paid order: PAYMENT_SUCCESS then COMPLETED. It is
// idempotent so a replayed completion call is a no-op. ok is false only
// when the order does not exist.
func (s *Service) MarkPaid(orderID int) (bool, error) {
	current, err := s.repo.GetByID(orderID)
	if err != nil {
		if err == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	if current.Status == StatusPaymentSuccess || current.Status == StatusCompleted {
		return true, nil
	}
	if err := s.UpdateStatus(orderID, StatusPaymentSuccess); err != nil {
		return false, err
	}
	if err := s.UpdateStatus(orderID, StatusCompleted); err != nil {
		return false, err
	}
	return true, nil
}
