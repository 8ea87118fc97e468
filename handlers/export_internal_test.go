package handlers

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskvault/go-todo/models"
)

func TestRenderTodoPDF(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pdfBytes, err := renderTodoPDF(&todoExport{
		ID:            9,
		Description:   "groceries",
		Amount:        12.5,
		CreatedByName: "alice",
		UpdatedByName: "bob",
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")), "output must be a PDF document")
	assert.Greater(t, len(pdfBytes), 500)
}

func TestValidateTodoRequest(t *testing.T) {
	amount := 5.0

	_, _, msg := validateTodoRequest(&models.TodoRequest{Description: "   ", Amount: &amount})
	assert.Equal(t, "Description cannot be empty", msg)

	_, _, msg = validateTodoRequest(&models.TodoRequest{Description: "rent", Amount: nil})
	assert.Equal(t, "Amount must be a number", msg)

	description, parsed, msg := validateTodoRequest(&models.TodoRequest{Description: " rent ", Amount: &amount})
	assert.Empty(t, msg)
	assert.Equal(t, "rent", description)
	assert.Equal(t, 5.0, parsed)
}
