package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver cho database/sql
	"github.com/taskvault/go-todo/auth"
	"github.com/taskvault/go-todo/config"
	"github.com/taskvault/go-todo/models"
)

var db *sql.DB

// GetDB trả về đối tượng database
func GetDB() *sql.DB {
	return db
}

// SetDB thay thế connection pool. Test dùng hàm này để tiêm mock connection.
func SetDB(conn *sql.DB) {
	db = conn
}

// StartPostgreSQL khởi tạo kết nối với PostgreSQL, tạo bảng và seed dữ liệu mặc định
func StartPostgreSQL(uri string) error {
	var err error
	db, err = sql.Open("pgx", uri)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	err = db.PingContext(context.Background())
	if err != nil {
		return fmt.Errorf("cannot connect to PostgreSQL: %w", err)
	}

	fmt.Println("Connected to PostgreSQL successfully")

	// Tạo bảng nếu chưa tồn tại
	err = createTables()
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	// Seed roles, permissions và tài khoản superadmin
	err = seedDefaults()
	if err != nil {
		return fmt.Errorf("failed to seed defaults: %w", err)
	}

	return nil
}

// createTables tạo bảng nếu chưa tồn tại
func createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS roles (
		role_id SERIAL PRIMARY KEY,
		role_name VARCHAR(50) UNIQUE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS permissions (
		permission_id SERIAL PRIMARY KEY,
		permission_name VARCHAR(100) UNIQUE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS role_permissions (
		role_id INT NOT NULL REFERENCES roles(role_id) ON DELETE CASCADE,
		permission_id INT NOT NULL REFERENCES permissions(permission_id) ON DELETE CASCADE,
		PRIMARY KEY (role_id, permission_id)
	);

	CREATE TABLE IF NOT EXISTS users (
		user_id SERIAL PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role_id INT NOT NULL REFERENCES roles(role_id) ON DELETE RESTRICT,
		isactive BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS todo (
		todo_id SERIAL PRIMARY KEY,
		description TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		created_by INT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		updated_by INT REFERENCES users(user_id) ON DELETE SET NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)
	`
	_, err := db.Exec(query)
	if err != nil {
		return err
	}

	fmt.Println("Tables created or already exist")
	return nil
}

// seedDefaults chèn roles/permissions mặc định và tài khoản superadmin đầu tiên
func seedDefaults() error {
	_, err := db.Exec(`
	INSERT INTO roles (role_name)
	VALUES ('superadmin'), ('admin'), ('manager'), ('editor'), ('viewer'), ('guest'), ('user')
	ON CONFLICT (role_name) DO NOTHING`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
	INSERT INTO permissions (permission_name)
	VALUES ('create-todo'), ('update-todo'), ('delete-todo'),
	       ('export-todo'), ('send-email'), ('manage-users'), ('manage-permissions')
	ON CONFLICT (permission_name) DO NOTHING`)
	if err != nil {
		return err
	}

	// Superadmin có tất cả quyền; guard chỉ đọc bảng role_permissions nên
	// phải có đủ dòng ở đây, không có ngoại lệ trong code.
	_, err = db.Exec(`
	INSERT INTO role_permissions (role_id, permission_id)
	SELECT r.role_id, p.permission_id
	FROM roles r CROSS JOIN permissions p
	WHERE r.role_name = 'superadmin'
	   OR (r.role_name = 'admin' AND p.permission_name IN
	       ('create-todo', 'update-todo', 'delete-todo', 'export-todo', 'send-email', 'manage-users', 'manage-permissions'))
	   OR (r.role_name IN ('manager', 'editor') AND p.permission_name IN
	       ('create-todo', 'update-todo', 'delete-todo', 'export-todo'))
	   OR (r.role_name = 'user' AND p.permission_name IN
	       ('create-todo', 'update-todo', 'delete-todo'))
	ON CONFLICT DO NOTHING`)
	if err != nil {
		return err
	}

	return seedSuperadmin()
}

// seedSuperadmin tạo tài khoản superadmin nếu chưa có tài khoản nào giữ role này
func seedSuperadmin() error {
	var exists bool
	err := db.QueryRow(`
	SELECT EXISTS(
		SELECT 1 FROM users u
		JOIN roles r ON u.role_id = r.role_id
		WHERE r.role_name = $1
	)`, models.RoleSuperadmin).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	password := config.Get().SuperadminPassword
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
	INSERT INTO users (username, password, role_id)
	SELECT 'superadmin', $1, role_id FROM roles WHERE role_name = $2`,
		hashed, models.RoleSuperadmin)
	if err != nil {
		return err
	}

	log.Println("Seeded superadmin account, change SUPERADMIN_PASSWORD after first login")
	return nil
}

// ClosePostgreSQL đóng kết nối với PostgreSQL
func ClosePostgreSQL() {
	if db != nil {
		err := db.Close()
		if err != nil {
			panic(err)
		}
		fmt.Println("Database connection closed")
	}
}
