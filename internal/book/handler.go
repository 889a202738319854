package book

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Browsing the catalog needs no account, mutations do.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/books", h.listBooks)
	app.Get("/api/v1/books/:id<[0-9]+>", h.getBook)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/books", h.createBook)
	app.Put("/api/v1/books/:id<[0-9]+>", h.updateBook)
	app.Delete("/api/v1/books/:id<[0-9]+>", h.deleteBook)
}

type bookRequest struct {
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	AuthorIDs []int           `json:"authorIDs"`
}

func (h *Handler) listBooks(c *fiber.Ctx) error {
	books, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(books)
}

func (h *Handler) getBook(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}

	b, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).SendString("Book not found")
		}
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}
	return c.JSON(b)
}

func (h *Handler) createBook(c *fiber.Ctx) error {
	payload := new(bookRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Create(Book{
		Title:     payload.Title,
		Price:     payload.Price,
		AuthorIDs: payload.AuthorIDs,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateBook(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}

	payload := new(bookRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, Book{
		Title:     payload.Title,
		Price:     payload.Price,
		AuthorIDs: payload.AuthorIDs,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).SendString("Book not found")
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteBook(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}

	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).SendString("Book not found")
		}
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}
	return c.SendString("Book deleted")
}
