package employee

import "time"

type CreateEmployeeRequest struct {
	Code       string  `json:"code" binding:"required,max=50"`
	FullName   string  `json:"full_name" binding:"required,max=200"`
	Email      string  `json:"email" binding:"required,email,max=200"`
	Department string  `json:"department" binding:"required,max=100"`
	Position   *string `json:"position" binding:"omitempty,max=100"`
	Phone      *string `json:"phone" binding:"omitempty,max=30"`
}

// UpdateEmployeeRequest is a patch: nil fields are left untouched.
// Code is immutable and has no update path.
type UpdateEmployeeRequest struct {
	FullName   *string `json:"full_name" binding:"omitempty,max=200"`
	Email      *string `json:"email" binding:"omitempty,email,max=200"`
	Department *string `json:"department" binding:"omitempty,min=1,max=100"`
	Position   *string `json:"position" binding:"omitempty,max=100"`
	Phone      *string `json:"phone" binding:"omitempty,max=30"`
}

type ListFilter struct {
	Search     string
	Department string
}

type EmployeeResponse struct {
	ID               uint      `json:"id"`
	Code             string    `json:"code"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Department       string    `json:"department"`
	Position         *string   `json:"position"`
	Phone            *string   `json:"phone"`
	CreatedAt        time.Time `json:"created_at"`
	TotalPresentDays int64     `json:"total_present_days"`
}
