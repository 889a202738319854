package payment

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/bookhaven/bookstore-backend/internal/identity"
)

type Handler struct {
	gateway    Gateway
	completion *Completion
}

func NewHandler(gateway Gateway, completion *Completion) *Handler {
	return &Handler{gateway: gateway, completion: completion}
}

// Session status is reachable without a token: the session id itself is the
// secret, and users land here from a provider redirect before any header
// can be attached.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/payment/session-status", h.sessionStatus)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/payment/complete-order", h.completeOrder)
}

func (h *Handler) sessionStatus(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "session_id is required"})
	}

	sess, err := h.gateway.GetSessionStatus(c.Context(), sessionID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}

	out := fiber.Map{
		"status":         sess.Status,
		"payment_status": sess.PaymentStatus,
	}
	if sess.PaymentIntentID != "" {
		out["payment_intent_id"] = sess.PaymentIntentID
	}
	return c.JSON(out)
}

func (h *Handler) completeOrder(c *fiber.Ctx) error {
	caller, err := identity.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "session_id is required"})
	}

	result, err := h.completion.CompleteOrder(c.Context(), sessionID, caller)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotComplete):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Payment not complete"})
		case errors.Is(err, ErrIntegrity):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(result)
}
