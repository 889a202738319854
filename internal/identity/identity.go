package identity

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Identity is the validated caller identity. It is a plain immutable value:
// whoever needs it receives it as a parameter or reads it from a context it
// was explicitly attached to. There is no ambient singleton to leak between
// goroutines.
type Identity struct {
	UserID int
}

type ctxKey struct{}

// With returns a child context carrying id. The identity lives exactly as
// long as the context does, which scopes it to a single unit of work.
func With(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From extracts the identity attached with With, if any.
func From(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// FromCtx extracts the user_id claim from the JWT token the jwtware
// middleware stored in c.Locals("user"). Several handlers need this, so it
// lives here rather than in any one domain package.
func FromCtx(c *fiber.Ctx) (Identity, error) {
	u := c.Locals("user")
	if u == nil {
		return Identity{}, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return Identity{}, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fiber.ErrUnauthorized
	}
	raw, ok := claims["user_id"]
	if !ok {
		return Identity{}, fiber.ErrUnauthorized
	}
	switch v := raw.(type) {
	case float64:
		return Identity{UserID: int(v)}, nil
	case int:
		return Identity{UserID: v}, nil
	case int64:
		return Identity{UserID: int(v)}, nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return Identity{}, fiber.ErrUnauthorized
		}
		return Identity{UserID: id}, nil
	default:
		return Identity{}, fiber.ErrUnauthorized
	}
}
