package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/taskvault/go-todo/auth"
)

// JWTMiddleware xác thực session token. Token được đọc từ cookie trước,
// fallback sang header Authorization cho client không dùng cookie.
func JWTMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies(auth.CookieName)

	if tokenString == "" {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "missing token"})
		}

		// Tách từ "Bearer <token>"
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(401).JSON(fiber.Map{"error": "invalid token format"})
		}
	}

	// Parse và kiểm tra token
	claims, err := auth.ParseToken(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	// Lưu danh tính vào context, handler không bao giờ tin user_id/role từ client
	c.Locals("user_id", claims.UserID)
	c.Locals("username", claims.Username)
	c.Locals("role", claims.Role)

	return c.Next()
}

// CallerID trả về user id đã xác thực của request
func CallerID(c *fiber.Ctx) int64 {
	id, _ := c.Locals("user_id").(int64)
	return id
}

// CallerRole trả về role đã xác thực của request
func CallerRole(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}

// CallerUsername trả về username đã xác thực của request
func CallerUsername(c *fiber.Ctx) string {
	username, _ := c.Locals("username").(string)
	return username
}
