package attendance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	attendanceerrors "github.com/rohinisinghsenger-max/hrms-portal/internal/attendance/errors"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/employee"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                func(tx *sql.Tx) Repository
	createFn                func(ctx context.Context, a *Attendance) error
	findByIDFn              func(ctx context.Context, id uint) (*Attendance, error)
	findByEmployeeAndDateFn func(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error)
	findAllFn               func(ctx context.Context, filter ListFilter) ([]Attendance, error)
	findAllByEmployeeFn     func(ctx context.Context, employeeID uint, dateRange DateRange) ([]Attendance, error)
	findAllByDateFn         func(ctx context.Context, date time.Time) ([]Attendance, error)
	countBetweenFn          func(ctx context.Context, from, to time.Time) (int64, error)
	updateFn                func(ctx context.Context, a *Attendance) error
	deleteFn                func(ctx context.Context, id uint) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) FindByID(ctx context.Context, id uint) (*Attendance, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, employeeID, date)
}
func (f *fakeRepo) FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error) {
	return f.findAllFn(ctx, filter)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID uint, dateRange DateRange) ([]Attendance, error) {
	return f.findAllByEmployeeFn(ctx, employeeID, dateRange)
}
func (f *fakeRepo) FindAllByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	return f.findAllByDateFn(ctx, date)
}
func (f *fakeRepo) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return f.countBetweenFn(ctx, from, to)
}
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error { return f.updateFn(ctx, a) }
func (f *fakeRepo) Delete(ctx context.Context, id uint) error       { return f.deleteFn(ctx, id) }

type fakeDirectory struct {
	findByIDFn func(ctx context.Context, id uint) (*employee.Employee, error)
}

func (f *fakeDirectory) FindByID(ctx context.Context, id uint) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}

func knownEmployee(id uint) *fakeDirectory {
	return &fakeDirectory{
		findByIDFn: func(ctx context.Context, got uint) (*employee.Employee, error) {
			if got != id {
				return nil, gorm.ErrRecordNotFound
			}
			return &employee.Employee{ID: id, Code: "EMP001", FullName: "Jane Doe"}, nil
		},
	}
}

func strPtr(v string) *string { return &v }

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestAttendanceService_Mark(t *testing.T) {
	ctx := context.Background()

	t.Run("success joins employee display fields", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{}
		repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		}
		repo.createFn = func(ctx context.Context, a *Attendance) error {
			a.ID = 1
			return nil
		}

		svc := NewService(db, repo, knownEmployee(5))

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: 5,
			Date:       "2024-01-08",
			Status:     StatusPresent,
			Note:       strPtr("on site"),
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(1), resp.ID)
		assert.Equal(t, "2024-01-08", resp.Date)
		assert.Equal(t, "Jane Doe", resp.EmployeeName)
		assert.Equal(t, "EMP001", resp.EmployeeCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown employee -> not found", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		svc := NewService(db, &fakeRepo{}, knownEmployee(5))

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: 404,
			Date:       "2024-01-08",
			Status:     StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("second mark for same employee and day -> conflict naming both", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{}
		repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error) {
			return &Attendance{ID: 1, EmployeeID: employeeID, Date: date}, nil
		}

		svc := NewService(db, repo, knownEmployee(5))

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: 5,
			Date:       "2024-01-08",
			Status:     StatusAbsent,
		})

		assertAppErrorCode(t, err, apperror.CodeConflict)
		assert.Contains(t, err.Error(), "Jane Doe")
		assert.Contains(t, err.Error(), "2024-01-08")
	})

	t.Run("same employee next day succeeds", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{}
		repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error) {
			if date.Format(dateLayout) == "2024-01-08" {
				return &Attendance{ID: 1}, nil
			}
			return nil, gorm.ErrRecordNotFound
		}
		repo.createFn = func(ctx context.Context, a *Attendance) error {
			a.ID = 2
			return nil
		}

		svc := NewService(db, repo, knownEmployee(5))

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: 5,
			Date:       "2024-01-09",
			Status:     StatusPresent,
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(2), resp.ID)
	})

	t.Run("tomorrow UTC is allowed", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{}
		repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		}
		repo.createFn = func(ctx context.Context, a *Attendance) error {
			a.ID = 3
			return nil
		}

		svc := NewService(db, repo, knownEmployee(5))

		mock.ExpectBegin()
		mock.ExpectCommit()

		tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(dateLayout)
		_, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: 5,
			Date:       tomorrow,
			Status:     StatusPresent,
		})

		assert.NoError(t, err)
	})

	t.Run("day after tomorrow -> validation error before any tx", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		svc := NewService(db, &fakeRepo{}, knownEmployee(5))

		dayAfterTomorrow := time.Now().UTC().AddDate(0, 0, 2).Format(dateLayout)
		_, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: 5,
			Date:       dayAfterTomorrow,
			Status:     StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrFutureDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed date -> validation error", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := NewService(db, &fakeRepo{}, knownEmployee(5))

		_, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: 5,
			Date:       "08/01/2024",
			Status:     StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})

	t.Run("unique constraint at write time -> same conflict as pre-check", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{}
		repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		}
		repo.createFn = func(ctx context.Context, a *Attendance) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"}
		}

		svc := NewService(db, repo, knownEmployee(5))

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: 5,
			Date:       "2024-01-08",
			Status:     StatusPresent,
		})

		assertAppErrorCode(t, err, apperror.CodeConflict)
		assert.Contains(t, err.Error(), "Jane Doe")
	})
}

func TestAttendanceService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("only status and note change", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		recordDate := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
		repo := &fakeRepo{}
		repo.findByIDFn = func(ctx context.Context, id uint) (*Attendance, error) {
			return &Attendance{
				ID:         id,
				EmployeeID: 5,
				Date:       recordDate,
				Status:     StatusPresent,
				Employee:   &EmployeeRef{ID: 5, FullName: "Jane Doe", Code: "EMP001"},
			}, nil
		}
		var saved Attendance
		repo.updateFn = func(ctx context.Context, a *Attendance) error {
			saved = *a
			return nil
		}

		svc := NewService(db, repo, knownEmployee(5))

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Update(ctx, 1, UpdateAttendanceRequest{
			Status: StatusLate,
			Note:   strPtr("traffic"),
		})

		assert.NoError(t, err)
		assert.Equal(t, StatusLate, saved.Status)
		assert.Equal(t, "traffic", *saved.Note)
		assert.Equal(t, uint(5), saved.EmployeeID)
		assert.Equal(t, recordDate, saved.Date)
		assert.Equal(t, "Jane Doe", resp.EmployeeName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{}
		repo.findByIDFn = func(ctx context.Context, id uint) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		}

		svc := NewService(db, repo, knownEmployee(5))

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Update(ctx, 404, UpdateAttendanceRequest{Status: StatusAbsent})

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
	})
}

func TestAttendanceService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{}
		repo.findByIDFn = func(ctx context.Context, id uint) (*Attendance, error) {
			return &Attendance{ID: id}, nil
		}
		var deleted uint
		repo.deleteFn = func(ctx context.Context, id uint) error {
			deleted = id
			return nil
		}

		svc := NewService(db, repo, knownEmployee(5))

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := svc.Delete(ctx, 9)

		assert.NoError(t, err)
		assert.Equal(t, uint(9), deleted)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{}
		repo.findByIDFn = func(ctx context.Context, id uint) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		}

		svc := NewService(db, repo, knownEmployee(5))

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := svc.Delete(ctx, 404)

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
	})
}

func TestAttendanceService_GetAll(t *testing.T) {
	ctx := context.Background()

	db, _, _ := sqlmock.New()
	defer db.Close()

	from := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	employeeID := uint(5)

	var gotFilter ListFilter
	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context, filter ListFilter) ([]Attendance, error) {
		gotFilter = filter
		return []Attendance{
			{ID: 2, EmployeeID: 5, Date: to, Status: StatusPresent, Employee: &EmployeeRef{FullName: "Jane Doe", Code: "EMP001"}},
			{ID: 1, EmployeeID: 5, Date: from, Status: StatusLate, Employee: &EmployeeRef{FullName: "Jane Doe", Code: "EMP001"}},
		}, nil
	}

	svc := NewService(db, repo, knownEmployee(5))

	resp, err := svc.GetAll(ctx, ListFilter{
		DateFrom:   &from,
		DateTo:     &to,
		EmployeeID: &employeeID,
		Status:     StatusPresent,
	})

	assert.NoError(t, err)
	assert.Equal(t, &from, gotFilter.DateFrom)
	assert.Equal(t, &to, gotFilter.DateTo)
	assert.Equal(t, &employeeID, gotFilter.EmployeeID)
	assert.Equal(t, StatusPresent, gotFilter.Status)
	assert.Len(t, resp, 2)
	assert.Equal(t, "Jane Doe", resp[0].EmployeeName)
	assert.Equal(t, "EMP001", resp[0].EmployeeCode)
}

func TestAttendanceService_GetAllByEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown employee -> not found", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := NewService(db, &fakeRepo{}, knownEmployee(5))

		_, err := svc.GetAllByEmployee(ctx, 404, DateRange{})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("passes the date range through", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		from := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

		var gotRange DateRange
		repo := &fakeRepo{}
		repo.findAllByEmployeeFn = func(ctx context.Context, employeeID uint, dateRange DateRange) ([]Attendance, error) {
			gotRange = dateRange
			return nil, nil
		}

		svc := NewService(db, repo, knownEmployee(5))

		_, err := svc.GetAllByEmployee(ctx, 5, DateRange{DateFrom: &from})

		assert.NoError(t, err)
		assert.Equal(t, &from, gotRange.DateFrom)
	})
}
