package cart

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
)

func makeAppWithCartHandler(h *Handler) *fiber.App {
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

func testBooks() map[int]BookInfo {
	return map[int]BookInfo{
		10: {Title: "The Go Programming Language", Price: decimal.RequireFromString("15.99")},
		20: {Title: "Learning SQL", Price: decimal.RequireFromString("9.99")},
	}
}

func TestCartRoutes_Basic(t *testing.T) {
	repo := NewInMemoryRepository(testBooks())
	handler := NewHandler(NewService(repo))
	app := makeAppWithCartHandler(handler)

	// unauthorized access should be blocked
	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/cart", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// add two copies of book 10
	req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"bookID":10,"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"quantity":2`) {
		t.Fatalf("expected quantity 2 in response, got %s", string(b))
	}
	if !strings.Contains(string(b), "15.99") {
		t.Fatalf("expected book price joined into response, got %s", string(b))
	}

	// adding the same book again increments the row instead of duplicating
	req = httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"bookID":10,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"quantity":3`) {
		t.Fatalf("expected quantity 3 after second add, got %s", string(b))
	}
	if strings.Count(string(b), `"bookID":10`) != 1 {
		t.Fatalf("expected a single row for book 10, got %s", string(b))
	}

	// another user's cart stays empty
	req = httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.Header.Set("X-User-ID", "99")
	res, _ = app.Test(req)
	b, _ = io.ReadAll(res.Body)
	if strings.Contains(string(b), "bookID") {
		t.Fatalf("expected empty cart for another user, got %s", string(b))
	}

	// clear and verify
	req = httptest.NewRequest("DELETE", "/api/v1/cart", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for clear, got %d", res.StatusCode)
	}
	req = httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	b, _ = io.ReadAll(res.Body)
	if strings.Contains(string(b), "bookID") {
		t.Fatalf("expected empty cart after clear, got %s", string(b))
	}
}

func TestCartRoutes_OwnershipEnforced(t *testing.T) {
	repo := NewInMemoryRepository(testBooks())
	handler := NewHandler(NewService(repo))
	app := makeAppWithCartHandler(handler)

	req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"bookID":10,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	if res, _ := app.Test(req); res.StatusCode != fiber.StatusOK {
		t.Fatalf("seed add failed with %d", res.StatusCode)
	}

	// user 99 may not touch user 42's item
	req = httptest.NewRequest("PUT", "/api/v1/cart/1", strings.NewReader(`{"quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "99")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for foreign item update, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("DELETE", "/api/v1/cart/1", nil)
	req.Header.Set("X-User-ID", "99")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for foreign item delete, got %d", res.StatusCode)
	}

	// unknown item is 404
	req = httptest.NewRequest("PUT", "/api/v1/cart/55", strings.NewReader(`{"quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown item, got %d", res.StatusCode)
	}
}

func TestService_RemoveItemDecrements(t *testing.T) {
	repo := NewInMemoryRepository(testBooks())
	svc := NewService(repo)
	if err := svc.AddToCart(42, 10, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	// first removal decrements, second drops the row
	if err := svc.RemoveItem(42, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items, _ := svc.ItemsByUser(42)
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1 after decrement, got %+v", items)
	}
	if err := svc.RemoveItem(42, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items, _ = svc.ItemsByUser(42)
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}
