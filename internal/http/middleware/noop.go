package middleware

import "github.com/gofiber/fiber/v2"

// Noop passes the request straight to the next handler. It is a stand-in
// for conditionally disabled middleware.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
