package handlers

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/taskvault/go-todo/database"
	"github.com/taskvault/go-todo/models"
)

// HandleListRoles liệt kê các role (không bao gồm superadmin)
func HandleListRoles(c *fiber.Ctx) error {
	rows, err := database.GetDB().Query(`
	SELECT role_id, role_name
	FROM roles
	WHERE role_name != $1
	ORDER BY role_id ASC`, models.RoleSuperadmin)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Server error"})
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(200).JSON(roles)
}

// HandleListPermissions liệt kê tất cả permission
func HandleListPermissions(c *fiber.Ctx) error {
	rows, err := database.GetDB().Query(`
	SELECT permission_id, permission_name
	FROM permissions
	ORDER BY permission_id ASC`)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}
	defer rows.Close()

	permissions := []models.Permission{}
	for rows.Next() {
		var permission models.Permission
		if err := rows.Scan(&permission.ID, &permission.Name); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Server error"})
		}
		permissions = append(permissions, permission)
	}
	if err := rows.Err(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(200).JSON(permissions)
}

// HandleRolePermissions liệt kê permission của một role
func HandleRolePermissions(c *fiber.Ctx) error {
	roleID, err := c.ParamsInt("role_id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid role ID"})
	}

	rows, err := database.GetDB().Query(`
	SELECT p.permission_id, p.permission_name
	FROM role_permissions rp
	JOIN permissions p ON rp.permission_id = p.permission_id
	WHERE rp.role_id = $1
	ORDER BY p.permission_id ASC`, roleID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}
	defer rows.Close()

	permissions := []models.Permission{}
	for rows.Next() {
		var permission models.Permission
		if err := rows.Scan(&permission.ID, &permission.Name); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Server error"})
		}
		permissions = append(permissions, permission)
	}
	if err := rows.Err(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(200).JSON(permissions)
}

// HandleReplaceRolePermissions thay toàn bộ permission của một role.
// Xóa rồi chèn trong một transaction: reader đồng thời không bao giờ thấy
// role với tập permission rỗng giữa chừng.
func HandleReplaceRolePermissions(c *fiber.Ctx) error {
	roleID, err := c.ParamsInt("role_id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid role ID"})
	}

	req := new(models.ReplaceRolePermissionsRequest)
	if err := c.BodyParser(req); err != nil || req.PermissionIDs == nil {
		return c.Status(400).JSON(fiber.Map{"error": "permissionIds must be an array"})
	}

	// Không sửa được tập permission của superadmin qua endpoint này
	var roleName string
	err = database.GetDB().QueryRow("SELECT role_name FROM roles WHERE role_id = $1", roleID).Scan(&roleName)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"error": "Role not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}
	if roleName == models.RoleSuperadmin {
		return c.Status(403).JSON(fiber.Map{"error": "Permission denied"})
	}

	tx, err := database.GetDB().Begin()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM role_permissions WHERE role_id = $1", roleID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	for _, permissionID := range req.PermissionIDs {
		_, err := tx.Exec(`
		INSERT INTO role_permissions (role_id, permission_id)
		VALUES ($1, $2)`, roleID, permissionID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Server error"})
		}
	}

	if err := tx.Commit(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(200).JSON(fiber.Map{"message": "Role permissions updated successfully"})
}
