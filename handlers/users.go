package handlers

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/taskvault/go-todo/database"
	"github.com/taskvault/go-todo/middleware"
	"github.com/taskvault/go-todo/models"
)

// HandleListUsers liệt kê tất cả người dùng trừ tầng superadmin
func HandleListUsers(c *fiber.Ctx) error {
	rows, err := database.GetDB().Query(`
	SELECT u.user_id, u.username, u.role_id, r.role_name, u.isactive, u.created_at, u.updated_at
	FROM users u
	JOIN roles r ON u.role_id = r.role_id
	WHERE r.role_name != $1
	ORDER BY u.user_id ASC`, models.RoleSuperadmin)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Username, &user.RoleID, &user.RoleName,
			&user.IsActive, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Server error"})
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(200).JSON(users)
}

// guardSelfModification chặn thao tác quản trị lên chính tài khoản của người
// gọi. Bản gốc chỉ chặn ở client, ở đây chặn luôn phía server.
func guardSelfModification(c *fiber.Ctx, targetID int) bool {
	return int64(targetID) == middleware.CallerID(c)
}

// HandleDeleteUser xóa một người dùng. Todo của họ bị xóa theo (ON DELETE CASCADE).
func HandleDeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid ID"})
	}
	if guardSelfModification(c, id) {
		return c.Status(403).JSON(fiber.Map{"error": "You cannot modify your own account"})
	}

	res, err := database.GetDB().Exec(`
	DELETE FROM users
	WHERE user_id = $1
	  AND role_id != (SELECT role_id FROM roles WHERE role_name = $2)`,
		id, models.RoleSuperadmin)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	count, _ := res.RowsAffected()
	if count == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.Status(200).JSON(fiber.Map{"message": "User deleted successfully"})
}

// HandleUpdateUserRole gán role mới cho một người dùng
func HandleUpdateUserRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid ID"})
	}
	if guardSelfModification(c, id) {
		return c.Status(403).JSON(fiber.Map{"error": "You cannot modify your own account"})
	}

	req := new(models.UpdateUserRoleRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	// Role đích phải tồn tại và không được là superadmin
	var roleName string
	err = database.GetDB().QueryRow("SELECT role_name FROM roles WHERE role_id = $1", req.RoleID).Scan(&roleName)
	if err == sql.ErrNoRows {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid role"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}
	if roleName == models.RoleSuperadmin {
		return c.Status(403).JSON(fiber.Map{"error": "Permission denied"})
	}

	user := models.User{RoleID: req.RoleID, RoleName: roleName}
	err = database.GetDB().QueryRow(`
	UPDATE users
	SET role_id = $1, updated_at = NOW()
	WHERE user_id = $2
	  AND role_id != (SELECT role_id FROM roles WHERE role_name = $3)
	RETURNING user_id, username, isactive, created_at, updated_at`,
		req.RoleID, id, models.RoleSuperadmin).
		Scan(&user.ID, &user.Username, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(200).JSON(fiber.Map{"message": "Role updated", "user": user})
}

// HandleUpdateUserStatus bật/tắt trạng thái hoạt động của một người dùng
func HandleUpdateUserStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid ID"})
	}
	if guardSelfModification(c, id) {
		return c.Status(403).JSON(fiber.Map{"error": "You cannot modify your own account"})
	}

	req := new(models.UpdateUserStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	err = database.GetDB().QueryRow(`
	UPDATE users
	SET isactive = $1, updated_at = NOW()
	WHERE user_id = $2
	  AND role_id != (SELECT role_id FROM roles WHERE role_name = $3)
	RETURNING user_id, username, role_id, isactive, created_at, updated_at`,
		req.IsActive, id, models.RoleSuperadmin).
		Scan(&user.ID, &user.Username, &user.RoleID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(200).JSON(fiber.Map{"message": "Status updated", "user": user})
}
