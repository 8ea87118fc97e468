package handlers

import (
	"bytes"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/gofiber/fiber/v2"
	"github.com/taskvault/go-todo/database"
)

// todoExport là dữ liệu của một todo đã join username để in ra PDF
type todoExport struct {
	ID            int64
	Description   string
	Amount        float64
	CreatedByName string
	UpdatedByName string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// fetchTodoExport lấy todo kèm username của người tạo/cập nhật
func fetchTodoExport(id int64) (*todoExport, error) {
	var t todoExport
	var createdBy, updatedBy sql.NullString
	err := database.GetDB().QueryRow(`
	SELECT t.todo_id, t.description, t.amount, u1.username, u2.username, t.created_at, t.updated_at
	FROM todo t
	LEFT JOIN users u1 ON t.created_by = u1.user_id
	LEFT JOIN users u2 ON t.updated_by = u2.user_id
	WHERE t.todo_id = $1`, id).
		Scan(&t.ID, &t.Description, &t.Amount, &createdBy, &updatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.CreatedByName = createdBy.String
	t.UpdatedByName = updatedBy.String
	return &t, nil
}

// renderTodoPDF vẽ chi tiết một todo thành tài liệu PDF
func renderTodoPDF(t *todoExport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "BU", 20)
	pdf.Cell(0, 12, "Todo Details")
	pdf.Ln(18)

	pdf.SetFont("Helvetica", "", 14)
	lines := []string{
		fmt.Sprintf("Description: %s", t.Description),
		fmt.Sprintf("Amount: %g", t.Amount),
		fmt.Sprintf("Created At: %s", t.CreatedAt.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Updated At: %s", t.UpdatedAt.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Created By: %s", t.CreatedByName),
		fmt.Sprintf("Updated By: %s", t.UpdatedByName),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HandleTodoPDF trả về một todo dưới dạng file PDF tải xuống
func HandleTodoPDF(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid ID"})
	}

	t, err := fetchTodoExport(int64(id))
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"error": "Todo not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	pdfBytes, err := renderTodoPDF(t)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=todo_%d.pdf", id))
	return c.Status(200).Send(pdfBytes)
}
