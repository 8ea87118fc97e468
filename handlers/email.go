package handlers

import (
	"database/sql"
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/taskvault/go-todo/config"
	"gopkg.in/gomail.v2"
)

// SendEmailRequest cho endpoint gửi todo qua email
type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	TodoID  int64  `json:"todo_id"`
}

// HandleSendEmail render todo thành PDF rồi gửi qua SMTP dưới dạng đính kèm
func HandleSendEmail(c *fiber.Ctx) error {
	req := new(SendEmailRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if req.To == "" || req.Subject == "" || req.Message == "" || req.TodoID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Missing fields"})
	}

	t, err := fetchTodoExport(req.TodoID)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"error": "Todo not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	pdfBytes, err := renderTodoPDF(t)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	cfg := config.Get()
	if !cfg.MailConfigured() {
		return c.Status(500).JSON(fiber.Map{"error": "Email is not configured"})
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTPSender)
	m.SetHeader("To", req.To)
	m.SetHeader("Subject", req.Subject)
	m.SetBody("text/plain", req.Message)
	m.Attach(fmt.Sprintf("todo_%d.pdf", req.TodoID), gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdfBytes)
		return err
	}))

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	if err := dialer.DialAndSend(m); err != nil {
		log.Printf("send email error: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to send email"})
	}

	return c.Status(200).JSON(fiber.Map{"success": true, "message": "Email sent with PDF!"})
}
