package employee

import (
	"time"
)

type Employee struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	Code       string    `gorm:"column:code;type:varchar(50);not null;uniqueIndex:uq_employees_code"`
	FullName   string    `gorm:"column:full_name;type:varchar(200);not null"`
	Email      string    `gorm:"column:email;type:varchar(200);not null;uniqueIndex:uq_employees_email"`
	Department string    `gorm:"column:department;type:varchar(100);not null;index"`
	Position   *string   `gorm:"column:position;type:varchar(100)"`
	Phone      *string   `gorm:"column:phone;type:varchar(30)"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Employee) TableName() string {
	return "employees"
}
