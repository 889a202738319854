package order

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/bookhaven/bookstore-backend/internal/identity"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders/create-from-cart", h.createFromCart)
	app.Get("/api/v1/orders", h.listOrders)
	app.Get("/api/v1/orders/:orderID<[0-9]+>", h.getOrder)
	app.Put("/api/v1/orders/:orderID<[0-9]+>/status", h.updateStatus)
}

func (h *Handler) createFromCart(c *fiber.Ctx) error {
	caller, err := identity.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orderID, err := h.service.CreateOrderFromCart(caller)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"orderID": orderID})
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	caller, err := identity.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(caller.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	if orders == nil {
		orders = []Order{}
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	caller, err := identity.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orderID, err := strconv.Atoi(c.Params("orderID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid order id")
	}

	o, err := h.service.GetByID(orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	if o.UserID != caller.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "You don't have permission to view this order"})
	}
	return c.JSON(o)
}

// updateStatus answers 200 even for unknown order ids. Callers are
// background processes reporting outcomes; there is nothing for them to
// retry when the id is stale.
func (h *Handler) updateStatus(c *fiber.Ctx) error {
	if _, err := identity.FromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orderID, err := strconv.Atoi(c.Params("orderID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid order id")
	}

	status, err := ParseStatus(c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.UpdateStatus(orderID, status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendString("ok")
}
