package order

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAppWithOrderHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestOrderRoutes_CheckoutFlow(t *testing.T) {
	repo := NewInMemoryRepository()
	carts := seededCart(t, 42)
	sched := &recordingScheduler{}
	handler := NewHandler(NewService(repo, carts, sched, nil))
	app := makeAppWithOrderHandler(handler)

	// unauthenticated checkout is rejected
	res, _ := app.Test(httptest.NewRequest("POST", "/api/v1/orders/create-from-cart", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated checkout, got %d", res.StatusCode)
	}

	// checkout returns the new order id immediately
	req := httptest.NewRequest("POST", "/api/v1/orders/create-from-cart", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for checkout, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"orderID":1`) {
		t.Fatalf("expected order id in response, got %s", string(b))
	}

	// a second checkout finds the cart already empty
	req = httptest.NewRequest("POST", "/api/v1/orders/create-from-cart", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty-cart checkout, got %d", res.StatusCode)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), "cart is empty") {
		t.Fatalf("expected empty-cart message, got %s", string(b))
	}

	// the order shows up in the user's list with status CREATED
	req = httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for list, got %d", res.StatusCode)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"status":"CREATED"`) {
		t.Fatalf("expected CREATED order in list, got %s", string(b))
	}
}

func TestOrderRoutes_GetOrder_OwnershipEnforced(t *testing.T) {
	repo := NewInMemoryRepository()
	id, err := repo.Create(42, price("41.97"), []LineItem{{BookID: 10, Title: "Learning SQL", Price: price("41.97"), Quantity: 1}})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	handler := NewHandler(NewService(repo, nil, nil, nil))
	app := makeAppWithOrderHandler(handler)

	req := httptest.NewRequest("GET", "/api/v1/orders/"+strconv.Itoa(id), nil)
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/v1/orders/"+strconv.Itoa(id), nil)
	req.Header.Set("X-User-ID", "99")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for another user, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/v1/orders/777", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", res.StatusCode)
	}
}

func TestOrderRoutes_UpdateStatus(t *testing.T) {
	repo := NewInMemoryRepository()
	id, err := repo.Create(42, price("41.97"), nil)
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	handler := NewHandler(NewService(repo, nil, nil, nil))
	app := makeAppWithOrderHandler(handler)

	req := httptest.NewRequest("PUT", "/api/v1/orders/"+strconv.Itoa(id)+"/status?status=PAYMENT_SUCCESS", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for status update, got %d", res.StatusCode)
	}
	o, _ := repo.GetByID(id)
	if o.Status != StatusPaymentSuccess {
		t.Fatalf("expected PAYMENT_SUCCESS, got %s", o.Status)
	}

	// unknown ids still answer 200
	req = httptest.NewRequest("PUT", "/api/v1/orders/999/status?status=PAYMENT_FAILED", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for unknown order id, got %d", res.StatusCode)
	}

	// garbage status values do not
	req = httptest.NewRequest("PUT", "/api/v1/orders/"+strconv.Itoa(id)+"/status?status=SHIPPED", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status value, got %d", res.StatusCode)
	}
}
