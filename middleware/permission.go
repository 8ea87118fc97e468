package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskvault/go-todo/database"
)

// RequirePermission chặn request nếu role của người gọi không giữ quyền được
// đặt tên. Chỉ là một phép đọc trên bảng role_permissions, chạy trước handler,
// không có side effect. Phải đứng sau JWTMiddleware.
func RequirePermission(permissionName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(int64)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "missing token"})
		}

		var allowed bool
		err := database.GetDB().QueryRow(`
		SELECT EXISTS(
			SELECT 1
			FROM role_permissions rp
			JOIN users u ON rp.role_id = u.role_id
			JOIN permissions p ON rp.permission_id = p.permission_id
			WHERE u.user_id = $1
			  AND p.permission_name = $2
		)`, userID, permissionName).Scan(&allowed)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Server error"})
		}

		if !allowed {
			return c.Status(403).JSON(fiber.Map{"error": "Permission denied"})
		}

		return c.Next()
	}
}
