package handlers

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/taskvault/go-todo/database"
	"github.com/taskvault/go-todo/middleware"
	"github.com/taskvault/go-todo/models"
)

// validateTodoRequest kiểm tra input chung cho create/update.
// Trả về description đã trim, amount và thông báo lỗi nếu input không hợp lệ.
func validateTodoRequest(req *models.TodoRequest) (string, float64, string) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return "", 0, "Description cannot be empty"
	}
	if req.Amount == nil {
		return "", 0, "Amount must be a number"
	}
	return description, *req.Amount, ""
}

// scanTodoRows đọc kết quả truy vấn có join username của người tạo/cập nhật
func scanTodoRows(rows *sql.Rows) ([]models.Todo, error) {
	todos := []models.Todo{}
	for rows.Next() {
		var todo models.Todo
		var updatedBy sql.NullInt64
		var createdByName, updatedByName sql.NullString
		err := rows.Scan(&todo.ID, &todo.Description, &todo.Amount, &todo.CreatedBy,
			&updatedBy, &createdByName, &updatedByName, &todo.CreatedAt, &todo.UpdatedAt)
		if err != nil {
			return nil, err
		}
		if updatedBy.Valid {
			todo.UpdatedBy = &updatedBy.Int64
		}
		todo.CreatedByName = createdByName.String
		todo.UpdatedByName = updatedByName.String
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

// Lấy tất cả Todos. Superadmin thấy tất cả, người dùng khác chỉ thấy todo của mình.
func HandleAllTodos(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	callerRole := middleware.CallerRole(c)

	query := `
	SELECT t.todo_id, t.description, t.amount, t.created_by, t.updated_by,
	       u1.username, u2.username, t.created_at, t.updated_at
	FROM todo t
	LEFT JOIN users u1 ON t.created_by = u1.user_id
	LEFT JOIN users u2 ON t.updated_by = u2.user_id`

	var rows *sql.Rows
	var err error
	if models.IsElevated(callerRole) {
		rows, err = database.GetDB().Query(query + " ORDER BY t.updated_at DESC")
	} else {
		rows, err = database.GetDB().Query(query+" WHERE t.created_by = $1 ORDER BY t.updated_at DESC", callerID)
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}
	defer rows.Close()

	todos, err := scanTodoRows(rows)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(200).JSON(todos)
}

// Tạo mới một Todo, gắn created_by là người gọi
func HandleCreateTodo(c *fiber.Ctx) error {
	req := new(models.TodoRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Amount must be a number"})
	}

	description, amount, msg := validateTodoRequest(req)
	if msg != "" {
		return c.Status(400).JSON(fiber.Map{"error": msg})
	}

	callerID := middleware.CallerID(c)

	todo := models.Todo{Description: description, Amount: amount, CreatedBy: callerID}
	err := database.GetDB().QueryRow(`
	INSERT INTO todo (description, amount, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, NOW(), NOW())
	RETURNING todo_id, created_at, updated_at`,
		description, amount, callerID).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(200).JSON(todo)
}

// Lấy một Todo theo ID, chỉ chủ sở hữu hoặc superadmin
func HandleGetOneTodo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid ID"})
	}

	callerID := middleware.CallerID(c)
	callerRole := middleware.CallerRole(c)

	query := `
	SELECT todo_id, description, amount, created_by, updated_by, created_at, updated_at
	FROM todo
	WHERE todo_id = $1`

	var row *sql.Row
	if models.IsElevated(callerRole) {
		row = database.GetDB().QueryRow(query, id)
	} else {
		row = database.GetDB().QueryRow(query+" AND created_by = $2", id, callerID)
	}

	var todo models.Todo
	var updatedBy sql.NullInt64
	err = row.Scan(&todo.ID, &todo.Description, &todo.Amount, &todo.CreatedBy,
		&updatedBy, &todo.CreatedAt, &todo.UpdatedAt)
	if err == sql.ErrNoRows {
		// Không phân biệt "không tồn tại" với "không phải của bạn"
		return c.Status(404).JSON(fiber.Map{"error": "Todo not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}
	if updatedBy.Valid {
		todo.UpdatedBy = &updatedBy.Int64
	}

	return c.Status(200).JSON(todo)
}

// Cập nhật một Todo. Superadmin cập nhật không điều kiện, người khác chỉ
// cập nhật được todo do mình tạo.
func HandleUpdateTodo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid ID"})
	}

	req := new(models.TodoRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Amount must be a number"})
	}

	description, amount, msg := validateTodoRequest(req)
	if msg != "" {
		return c.Status(400).JSON(fiber.Map{"error": msg})
	}

	callerID := middleware.CallerID(c)
	callerRole := middleware.CallerRole(c)

	query := `
	UPDATE todo
	SET description = $1, amount = $2, updated_by = $3, updated_at = NOW()
	WHERE todo_id = $4`

	var res sql.Result
	if models.IsElevated(callerRole) {
		res, err = database.GetDB().Exec(query, description, amount, callerID, id)
	} else {
		res, err = database.GetDB().Exec(query+" AND created_by = $5", description, amount, callerID, id, callerID)
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	count, _ := res.RowsAffected()
	if count == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Todo not found or no permission"})
	}

	return c.Status(200).JSON(fiber.Map{"message": "Todo updated"})
}

// Xóa một Todo với cùng quy tắc sở hữu như cập nhật
func HandleDeleteTodo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid ID"})
	}

	callerID := middleware.CallerID(c)
	callerRole := middleware.CallerRole(c)

	var res sql.Result
	if models.IsElevated(callerRole) {
		res, err = database.GetDB().Exec("DELETE FROM todo WHERE todo_id = $1", id)
	} else {
		res, err = database.GetDB().Exec("DELETE FROM todo WHERE todo_id = $1 AND created_by = $2", id, callerID)
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	count, _ := res.RowsAffected()
	if count == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Todo not found or no permission"})
	}

	return c.Status(200).JSON(fiber.Map{"message": "Todo deleted"})
}
