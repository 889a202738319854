package order

import (
	"context"
	"sync"
	"time"

	"github.com/bookhaven/bookstore-backend/internal/identity"
	"github.com/bookhaven/bookstore-backend/internal/logging"
	"github.com/bookhaven/bookstore-backend/internal/payment"
)

// StatusWriter records a payment outcome against an order.
type StatusWriter interface {
	UpdateStatus(orderID int, status Status) error
}

type task struct {
	caller identity.Identity
	req    payment.Request
}

// Initiator runs payment initiation off the request path. Each task gets
// a fresh context carrying the scheduling user's identity and a deadline,
// so a slow gateway never holds a checkout response hostage and a task
// never sees another task's identity.
type Initiator struct {
	gateway payment.Gateway
	orders  StatusWriter
	timeout time.Duration
	tasks   chan task
	wg      sync.WaitGroup
}

func NewInitiator(gateway payment.Gateway, timeout time.Duration) *Initiator {
	return &Initiator{
		gateway: gateway,
		timeout: timeout,
		tasks:   make(chan task, 256),
	}
}

// Start launches the worker pool. The status writer is passed here, not
// at construction, because the order service and the initiator reference
// each other.
func (i *Initiator) Start(orders StatusWriter, workers int) {
	i.orders = orders
	if workers < 1 {
		workers = 1
	}
	for n := 0; n < workers; n++ {
		i.wg.Add(1)
		go i.worker()
	}
}

// Schedule queues a payment request. It never blocks the checkout path
// for long: the channel is buffered, and a full buffer applies
// backpressure rather than dropping the task.
func (i *Initiator) Schedule(caller identity.Identity, req payment.Request) {
	i.tasks <- task{caller: caller, req: req}
}

// Stop drains the queue and waits for in-flight tasks to finish.
func (i *Initiator) Stop() {
	close(i.tasks)
	i.wg.Wait()
}

func (i *Initiator) worker() {
	defer i.wg.Done()
	for t := range i.tasks {
		i.run(t)
	}
}

func (i *Initiator) run(t task) {
	defer func() {
		if r := recover(); r != nil {
			logging.Log(logging.Fields{
				Service: "order",
				UserID:  t.caller.UserID,
				OrderID: t.req.OrderID,
				Step:    "initiate_payment",
				Status:  "panic",
			})
		}
	}()

	ctx := identity.With(context.Background(), t.caller)
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	// Advisory only. A fast gateway response may overwrite this before
	// anyone observes it.
	if err := i.orders.UpdateStatus(t.req.OrderID, StatusPaymentProcessing); err != nil {
		logging.Log(logging.Fields{
			Service: "order",
			UserID:  t.caller.UserID,
			OrderID: t.req.OrderID,
			Step:    "initiate_payment",
			Status:  "error",
			Message: err.Error(),
		})
	}

	resp, err := i.gateway.CreateCheckoutSession(ctx, t.req)
	outcome := StatusPaymentSuccess
	if err != nil {
		outcome = StatusPaymentFailed
		logging.Log(logging.Fields{
			Service: "order",
			UserID:  t.caller.UserID,
			OrderID: t.req.OrderID,
			Step:    "initiate_payment",
			Status:  outcome.String(),
			Message: err.Error(),
		})
	} else if resp.Status != payment.StatusSuccess {
		outcome = StatusPaymentFailed
	}

	if err := i.orders.UpdateStatus(t.req.OrderID, outcome); err != nil {
		logging.Log(logging.Fields{
			Service: "order",
			UserID:  t.caller.UserID,
			OrderID: t.req.OrderID,
			Step:    "initiate_payment",
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	logging.Log(logging.Fields{
		Service: "order",
		UserID:  t.caller.UserID,
		OrderID: t.req.OrderID,
		Step:    "initiate_payment",
		Status:  outcome.String(),
	})
}
