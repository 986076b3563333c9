package attendance

import (
	"time"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusLate    = "Late"
	StatusHalfDay = "Half Day"
)

type Attendance struct {
	ID         uint         `gorm:"column:id;primaryKey"`
	EmployeeID uint         `gorm:"column:employee_id;not null;index;uniqueIndex:uq_attendance_employee_date"`
	Date       time.Time    `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	Status     string       `gorm:"column:status;type:varchar(20);not null"`
	Note       *string      `gorm:"column:note;type:varchar(300)"`
	CreatedAt  time.Time    `gorm:"column:created_at"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Attendance) TableName() string {
	return "attendance"
}

// EmployeeRef carries the display fields joined into attendance responses.
// It is a read-time projection over the employees table, never written.
type EmployeeRef struct {
	ID       uint   `gorm:"primaryKey"`
	FullName string `gorm:"column:full_name"`
	Code     string `gorm:"column:code"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
