package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "github.com/rohinisinghsenger-max/hrms-portal/internal/attendance/errors"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/employee"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Directory is the slice of the employee repository the ledger needs for
// referential checks and display-field joins.
type Directory interface {
	FindByID(ctx context.Context, id uint) (*employee.Employee, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID uint, dateRange DateRange) ([]AttendanceResponse, error)
	Update(ctx context.Context, id uint, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory Directory
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, directory Directory, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, directory: directory, logger: l}
}

func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("mark attendance requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)

	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		s.logger.Warn("mark attendance invalid date", zap.String("date", req.Date), zap.Error(err))
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}

	// Allow up to 1 day ahead of UTC to accommodate clients in timezones
	// east of UTC marking today's local date at night.
	maxAllowed := utcToday().AddDate(0, 0, 1)
	if date.After(maxAllowed) {
		s.logger.Warn("mark attendance future date", zap.String("date", req.Date))
		return AttendanceResponse{}, attendanceerrors.ErrFutureDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := s.directory.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return AttendanceResponse{}, err
	}

	if _, err := qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, date); err == nil {
		s.logger.Warn("mark attendance duplicate",
			zap.Uint("employee_id", req.EmployeeID),
			zap.String("date", req.Date),
		)
		return AttendanceResponse{}, attendanceerrors.AlreadyRecorded(emp.FullName, req.Date)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	row := &Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     req.Status,
		Note:       req.Note,
		CreatedAt:  time.Now().UTC(),
	}

	if err := qtx.Create(ctx, row); err != nil {
		if isDuplicateRecord(err) {
			return AttendanceResponse{}, attendanceerrors.AlreadyRecorded(emp.FullName, req.Date)
		}
		s.logger.Error("mark attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		if isDuplicateRecord(err) {
			return AttendanceResponse{}, attendanceerrors.AlreadyRecorded(emp.FullName, req.Date)
		}
		s.logger.Error("mark attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("mark attendance success",
		zap.String("request_id", rid),
		zap.Uint("attendance_id", row.ID),
		zap.Uint("employee_id", req.EmployeeID),
	)

	// Join the display fields from the already-loaded employee
	row.Employee = &EmployeeRef{ID: emp.ID, FullName: emp.FullName, Code: emp.Code}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID uint, dateRange DateRange) ([]AttendanceResponse, error) {
	if _, err := s.directory.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID, dateRange)
	if err != nil {
		s.logger.Error("get employee attendance failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update attendance requested",
		zap.String("request_id", rid),
		zap.Uint("attendance_id", id),
		zap.String("status", req.Status),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	// Status and note only; employee and date never change after creation
	row.Status = req.Status
	row.Note = req.Note

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("update attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update attendance commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("update attendance success", zap.Uint("attendance_id", id))

	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete attendance requested",
		zap.String("request_id", rid),
		zap.Uint("attendance_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete attendance begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete attendance failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete attendance commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete attendance success", zap.Uint("attendance_id", id))
	return nil
}

func utcToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format(dateLayout),
		Status:     a.Status,
		Note:       a.Note,
		CreatedAt:  a.CreatedAt,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
		resp.EmployeeCode = a.Employee.Code
	}
	return resp
}
