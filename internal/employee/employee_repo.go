package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id uint) (*Employee, error)
	FindByCode(ctx context.Context, code string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Employee, error)
	FindRecent(ctx context.Context, limit int) ([]Employee, error)
	ListDepartments(ctx context.Context) ([]string, error)
	CountAll(ctx context.Context) (int64, error)
	CountDistinctDepartments(ctx context.Context) (int64, error)
	CountPresentDays(ctx context.Context, employeeID uint) (int64, error)
	Update(ctx context.Context, e *Employee) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "code = ?", code).Error
	return &e, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "email = ?", email).Error
	return &e, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Employee, error) {
	q := r.db.WithContext(ctx).Model(&Employee{})

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		q = q.Where("full_name ILIKE ? OR email ILIKE ? OR code ILIKE ?", term, term, term)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}

	var rows []Employee
	err := q.Order("created_at DESC, id DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindRecent(ctx context.Context, limit int) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListDepartments(ctx context.Context) ([]string, error) {
	var departments []string
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Distinct("department").
		Order("department ASC").
		Pluck("department", &departments).Error
	return departments, err
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Employee{}).Count(&n).Error
	return n, err
}

func (r *repository) CountDistinctDepartments(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Distinct("department").
		Count(&n).Error
	return n, err
}

// CountPresentDays counts attendance rows with the exact Present status.
// Late and Half Day are not included; the dashboard's "present today" uses
// a broader definition.
func (r *repository) CountPresentDays(ctx context.Context, employeeID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("attendance").
		Where("employee_id = ?", employeeID).
		Where("status = ?", "Present").
		Count(&n).Error
	return n, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// Delete removes the employee and every attendance row referencing it in a
// single transaction.
func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM attendance WHERE employee_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Employee{}, "id = ?", id).Error
	})
}
