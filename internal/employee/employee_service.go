package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	employeeerrors "github.com/rohinisinghsenger-max/hrms-portal/internal/employee/errors"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const DepartmentsCacheKey = "employees:departments"

var phonePattern = regexp.MustCompile(`^[+\d\s\-().]{7,20}$`)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id uint) (EmployeeResponse, error)
	GetDepartments(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("code", req.Code),
		zap.String("email", req.Email),
	)

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return EmployeeResponse{}, employeeerrors.ErrBlankCode
	}
	fullName := strings.TrimSpace(req.FullName)
	if len(fullName) < 2 {
		return EmployeeResponse{}, employeeerrors.ErrShortFullName
	}
	department := strings.TrimSpace(req.Department)
	if department == "" {
		return EmployeeResponse{}, employeeerrors.ErrBlankDepartment
	}
	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByCode(ctx, code); err == nil {
		s.logger.Warn("create employee duplicate code", zap.String("code", code))
		return EmployeeResponse{}, employeeerrors.CodeAlreadyExists(code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, err
	}

	if _, err := qtx.FindByEmail(ctx, req.Email); err == nil {
		s.logger.Warn("create employee duplicate email", zap.String("email", req.Email))
		return EmployeeResponse{}, employeeerrors.EmailAlreadyExists(req.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		Code:       code,
		FullName:   fullName,
		Email:      req.Email,
		Department: department,
		Position:   normalizeOptional(req.Position),
		Phone:      phone,
		CreatedAt:  time.Now().UTC(),
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err, empl)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err, empl)
	}

	s.invalidateDepartmentsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", empl.ID),
		zap.String("code", empl.Code),
	)

	// A fresh employee has no attendance yet
	return mapToResponse(*empl, 0), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested",
		zap.String("search", filter.Search),
		zap.String("department", filter.Department),
	)

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err, nil)
	}

	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		presentDays, err := s.repo.CountPresentDays(ctx, e.ID)
		if err != nil {
			return nil, mapRepositoryError(err, nil)
		}
		res[i] = mapToResponse(e, presentDays)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.Uint("employee_id", id))

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err, nil)
	}

	presentDays, err := s.repo.CountPresentDays(ctx, empl.ID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err, nil)
	}

	return mapToResponse(*empl, presentDays), nil
}

// GetDepartments returns the distinct department values, alphabetically.
// The listing is master data that changes rarely, so it is cached in Redis
// and concurrent cold reads are collapsed through singleflight.
func (s *service) GetDepartments(ctx context.Context) ([]string, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, DepartmentsCacheKey).Result(); err == nil {
			var resp []string
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(DepartmentsCacheKey, func() (interface{}, error) {
		departments, err := s.repo.ListDepartments(ctx)
		if err != nil {
			return nil, mapRepositoryError(err, nil)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(departments); err == nil {
				s.rdb.Set(ctx, DepartmentsCacheKey, jsonData, 1*time.Hour)
			}
		}

		return departments, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]string), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err, nil)
	}

	if req.Email != nil && *req.Email != empl.Email {
		if other, err := qtx.FindByEmail(ctx, *req.Email); err == nil && other.ID != id {
			s.logger.Warn("update employee duplicate email", zap.String("email", *req.Email))
			return EmployeeResponse{}, employeeerrors.EmailAlreadyExists(*req.Email)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, err
		}
	}

	// Patch semantics: only supplied fields are applied
	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		if len(fullName) < 2 {
			return EmployeeResponse{}, employeeerrors.ErrShortFullName
		}
		empl.FullName = fullName
	}
	if req.Email != nil {
		empl.Email = *req.Email
	}
	if req.Department != nil {
		department := strings.TrimSpace(*req.Department)
		if department == "" {
			return EmployeeResponse{}, employeeerrors.ErrBlankDepartment
		}
		empl.Department = department
	}
	if req.Position != nil {
		empl.Position = normalizeOptional(req.Position)
	}
	if req.Phone != nil {
		phone, err := normalizePhone(req.Phone)
		if err != nil {
			return EmployeeResponse{}, err
		}
		empl.Phone = phone
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err, empl)
	}

	// Read the count inside the transaction: once the commit succeeds the
	// caller must never see a failure.
	presentDays, err := qtx.CountPresentDays(ctx, empl.ID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err, nil)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err, empl)
	}

	s.invalidateDepartmentsCache(ctx)

	s.logger.Info("update employee success", zap.Uint("employee_id", id))

	return mapToResponse(*empl, presentDays), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", id),
	)

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err, nil)
	}

	// The repo deletes the employee together with its attendance rows
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err, nil)
	}

	s.invalidateDepartmentsCache(ctx)

	s.logger.Info("delete employee success", zap.Uint("employee_id", id))
	return nil
}

func (s *service) invalidateDepartmentsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DepartmentsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate departments cache",
			zap.Error(err),
			zap.String("key", DepartmentsCacheKey),
		)
	}
}

func normalizePhone(v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	phone := strings.TrimSpace(*v)
	if phone == "" {
		return nil, nil
	}
	if !phonePattern.MatchString(phone) {
		return nil, employeeerrors.ErrInvalidPhone
	}
	return &phone, nil
}

func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapToResponse(e Employee, presentDays int64) EmployeeResponse {
	return EmployeeResponse{
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
