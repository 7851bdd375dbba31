package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DecorateWithBodyEx wraps a handler that expects a parsed request body,
// decoding and validating it before the handler runs. Malformed or invalid
// bodies never reach the handler.
func DecorateWithBodyEx[T any](validate *validator.Validate, handler func(c *fiber.Ctx, req *T) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)
		if err := c.BodyParser(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return handler(c, req)
	}
}
