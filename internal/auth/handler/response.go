package handler

import "github.com/gofiber/fiber/v2"

// Every response carries the {success, message, ...} envelope so clients can
// branch on one shape.

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func respondInternalError(c *fiber.Ctx) error {
	// Store and infrastructure failures are deliberately generic; internal
	// detail stays in the logs.
	return respondError(c, fiber.StatusInternalServerError, "internal server error")
}
