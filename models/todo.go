package models

import "time"

// Todo là cấu trúc dữ liệu của một todo
type Todo struct {
	ID            int64     `json:"todo_id"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	CreatedBy     int64     `json:"created_by"`
	UpdatedBy     *int64    `json:"updated_by,omitempty"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	UpdatedByName string    `json:"updated_by_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TodoRequest for creating or updating a todo. Amount is a pointer so a
// missing field can be told apart from a zero amount.
type TodoRequest struct {
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
}
