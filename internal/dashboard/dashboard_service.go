package dashboard

import (
	"context"
	"math"
	"time"

	"github.com/rohinisinghsenger-max/hrms-portal/internal/attendance"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/employee"

	"go.uber.org/zap"
)

const recentEmployeeLimit = 5

// EmployeeReader is the slice of the employee repository the dashboard
// aggregates over.
type EmployeeReader interface {
	CountAll(ctx context.Context) (int64, error)
	CountDistinctDepartments(ctx context.Context) (int64, error)
	CountPresentDays(ctx context.Context, employeeID uint) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]employee.Employee, error)
}

// AttendanceReader is the slice of the attendance repository the dashboard
// aggregates over.
type AttendanceReader interface {
	FindAllByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error)
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
}

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	GetStats(ctx context.Context) (StatsResponse, error)
}

type service struct {
	employees  EmployeeReader
	attendance AttendanceReader
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(employees EmployeeReader, attendanceRepo AttendanceReader, logger ...*zap.Logger) Service {
	return NewServiceWithClock(employees, attendanceRepo, time.Now, logger...)
}

// NewServiceWithClock lets tests pin "today".
func NewServiceWithClock(employees EmployeeReader, attendanceRepo AttendanceReader, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		employees:  employees,
		attendance: attendanceRepo,
		now:        now,
		logger:     l,
	}
}

func (s *service) GetStats(ctx context.Context) (StatsResponse, error) {
	s.logger.Debug("dashboard stats requested")

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := mondayOf(today)

	totalEmployees, err := s.employees.CountAll(ctx)
	if err != nil {
		s.logger.Error("count employees failed", zap.Error(err))
		return StatsResponse{}, err
	}

	totalDepartments, err := s.employees.CountDistinctDepartments(ctx)
	if err != nil {
		s.logger.Error("count departments failed", zap.Error(err))
		return StatsResponse{}, err
	}

	todayRows, err := s.attendance.FindAllByDate(ctx, today)
	if err != nil {
		s.logger.Error("load today's attendance failed", zap.Error(err))
		return StatsResponse{}, err
	}

	var presentToday, absentToday, lateToday int64
	for _, r := range todayRows {
		// Any clocked-in status counts as present here; the per-employee
		// present-day count elsewhere stays Present-only.
		switch r.Status {
		case attendance.StatusPresent, attendance.StatusLate, attendance.StatusHalfDay:
			presentToday++
		}
		switch r.Status {
		case attendance.StatusAbsent:
			absentToday++
		case attendance.StatusLate:
			lateToday++
		}
	}

	rate := 0.0
	if totalEmployees > 0 {
		rate = math.Round(float64(presentToday)/float64(totalEmployees)*1000) / 10
	}

	thisWeek, err := s.attendance.CountBetween(ctx, weekStart, today)
	if err != nil {
		s.logger.Error("count week attendance failed", zap.Error(err))
		return StatsResponse{}, err
	}

	recent, err := s.employees.FindRecent(ctx, recentEmployeeLimit)
	if err != nil {
		s.logger.Error("load recent employees failed", zap.Error(err))
		return StatsResponse{}, err
	}

	recentResponses := make([]employee.EmployeeResponse, len(recent))
	for i, e := range recent {
		presentDays, err := s.employees.CountPresentDays(ctx, e.ID)
		if err != nil {
			return StatsResponse{}, err
		}
		recentResponses[i] = employee.EmployeeResponse{
			ID:               e.ID,
			Code:             e.Code,
			FullName:         e.FullName,
			Email:            e.Email,
			Department:       e.Department,
			Position:         e.Position,
			Phone:            e.Phone,
			CreatedAt:        e.CreatedAt,
			TotalPresentDays: presentDays,
		}
	}

	return StatsResponse{
		TotalEmployees:      totalEmployees,
		TotalDepartments:    totalDepartments,
		PresentToday:        presentToday,
		AbsentToday:         absentToday,
		LateToday:           lateToday,
		AttendanceRateToday: rate,
		AttendanceThisWeek:  thisWeek,
		RecentEmployees:     recentResponses,
	}, nil
}

// mondayOf returns the most recent Monday on or before d (ISO week start).
func mondayOf(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
