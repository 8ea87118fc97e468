package handlers

import (
	"database/sql"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taskvault/go-todo/auth"
	"github.com/taskvault/go-todo/database"
	"github.com/taskvault/go-todo/middleware"
	"github.com/taskvault/go-todo/models"
)

// pgUniqueViolation là mã lỗi của PostgreSQL khi vi phạm ràng buộc UNIQUE
const pgUniqueViolation = "23505"

func containsWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// RegisterHandler đăng ký người dùng mới
func RegisterHandler(c *fiber.Ctx) error {
	req := new(models.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username and password are required"})
	}
	if containsWhitespace(username) || containsWhitespace(password) {
		return c.Status(400).JSON(fiber.Map{"error": "Username and password cannot contain whitespace"})
	}

	// Role mặc định là "user"; không bao giờ cho đăng ký làm superadmin
	roleName := strings.TrimSpace(req.Role)
	if roleName == "" {
		roleName = models.DefaultRoleName
	}
	if roleName == models.RoleSuperadmin {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid role"})
	}

	var roleID int64
	err := database.GetDB().QueryRow("SELECT role_id FROM roles WHERE role_name = $1", roleName).Scan(&roleID)
	if err == sql.ErrNoRows {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid role"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	var exists bool
	err = database.GetDB().QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}
	if exists {
		return c.Status(400).JSON(fiber.Map{"error": "User already exists"})
	}

	// Băm mật khẩu
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not hash password"})
	}

	user := models.User{Username: username, RoleID: roleID, RoleName: roleName, IsActive: true}
	err = database.GetDB().QueryRow(`
	INSERT INTO users (username, password, role_id)
	VALUES ($1, $2, $3)
	RETURNING user_id, created_at, updated_at`,
		username, hashed, roleID).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		// Hai request đăng ký cùng username có thể cùng vượt qua bước kiểm tra
		// EXISTS; ràng buộc UNIQUE của database là trọng tài cuối cùng.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return c.Status(400).JSON(fiber.Map{"error": "User already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(200).JSON(user)
}

// LoginHandler xác thực người dùng và phát session token qua cookie
func LoginHandler(c *fiber.Ctx) error {
	req := new(models.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	// Kiểm tra thông tin người dùng từ database
	var user models.User
	err := database.GetDB().QueryRow(`
	SELECT u.user_id, u.username, u.password, u.role_id, r.role_name, u.isactive, u.created_at, u.updated_at
	FROM users u
	JOIN roles r ON u.role_id = r.role_id
	WHERE u.username = $1`, req.Username).
		Scan(&user.ID, &user.Username, &user.Password, &user.RoleID, &user.RoleName,
			&user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid username or password"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	// Chặn tài khoản bị khóa trước khi so khớp mật khẩu
	if !user.IsActive {
		return c.Status(403).JSON(fiber.Map{"error": "Your account is inactive. Contact admin."})
	}

	// So khớp mật khẩu
	if !auth.CheckPassword(req.Password, user.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid username or password"})
	}

	// Tạo session token
	token, err := auth.GenerateToken(user.ID, user.Username, user.RoleName)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Expires:  time.Now().Add(auth.TokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(200).JSON(fiber.Map{"message": "Logged in", "user": user})
}

// MeHandler trả về danh tính nhúng trong session token
func MeHandler(c *fiber.Ctx) error {
	return c.Status(200).JSON(fiber.Map{
		"user_id":  middleware.CallerID(c),
		"username": middleware.CallerUsername(c),
		"role":     middleware.CallerRole(c),
	})
}

// LogoutHandler xóa session cookie, luôn thành công
func LogoutHandler(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(200).JSON(fiber.Map{"message": "Logged out"})
}
