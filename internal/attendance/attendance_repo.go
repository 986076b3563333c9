package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByID(ctx context.Context, id uint) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID uint, dateRange DateRange) ([]Attendance, error)
	FindAllByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
	Update(ctx context.Context, a *Attendance) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format(dateLayout)).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error) {
	q := r.db.WithContext(ctx).Model(&Attendance{}).Preload("Employee")

	if filter.DateFrom != nil {
		q = q.Where("date >= ?", filter.DateFrom.Format(dateLayout))
	}
	if filter.DateTo != nil {
		q = q.Where("date <= ?", filter.DateTo.Format(dateLayout))
	}
	if filter.EmployeeID != nil {
		q = q.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var rows []Attendance
	// id DESC breaks same-day ties, most recently inserted first
	err := q.Order("date DESC, id DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID uint, dateRange DateRange) ([]Attendance, error) {
	q := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Preload("Employee").
		Where("employee_id = ?", employeeID)

	if dateRange.DateFrom != nil {
		q = q.Where("date >= ?", dateRange.DateFrom.Format(dateLayout))
	}
	if dateRange.DateTo != nil {
		q = q.Where("date <= ?", dateRange.DateTo.Format(dateLayout))
	}

	var rows []Attendance
	err := q.Order("date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("date = ?", date.Format(dateLayout)).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("date >= ?", from.Format(dateLayout)).
		Where("date <= ?", to.Format(dateLayout)).
		Count(&n).Error
	return n, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Attendance{}, "id = ?", id).Error
}
