package handlers

import "github.com/gofiber/fiber/v2"

// HandleHealthCheck là liveness probe, không cần xác thực
func HandleHealthCheck(c *fiber.Ctx) error {
	return c.Status(200).JSON(fiber.Map{"status": "ok"})
}
