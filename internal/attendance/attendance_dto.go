package attendance

import "time"

type MarkAttendanceRequest struct {
	EmployeeID uint    `json:"employee_id" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	Status     string  `json:"status" binding:"required,oneof=Present Absent Late 'Half Day'"`
	Note       *string `json:"note" binding:"omitempty,max=300"`
}

// UpdateAttendanceRequest mutates status and note only; employee and date
// are fixed for the lifetime of the record.
type UpdateAttendanceRequest struct {
	Status string  `json:"status" binding:"required,oneof=Present Absent Late 'Half Day'"`
	Note   *string `json:"note" binding:"omitempty,max=300"`
}

type ListFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	EmployeeID *uint
	Status     string
}

type DateRange struct {
	DateFrom *time.Time
	DateTo   *time.Time
}

type AttendanceResponse struct {
	ID           uint      `json:"id"`
	EmployeeID   uint      `json:"employee_id"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	Note         *string   `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
	EmployeeName string    `json:"employee_name"`
	EmployeeCode string    `json:"employee_code"`
}
