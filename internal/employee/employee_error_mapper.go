package employee

import (
	"errors"
	"net/http"
	"strings"

	employeeerrors "github.com/rohinisinghsenger-max/hrms-portal/internal/employee/errors"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError normalizes storage errors into the app taxonomy.
// A unique-constraint violation surfaced at commit time is equivalent to the
// pre-check conflict: the pre-check-then-write window is racy under
// concurrent writers.
func mapRepositoryError(err error, e *Employee) error {
	if err == nil {
		return nil
	}
	if e == nil {
		e = &Employee{}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employees_code":
				return employeeerrors.CodeAlreadyExists(e.Code)
			case "uq_employees_email":
				return employeeerrors.EmailAlreadyExists(e.Email)
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employees_code") {
		return employeeerrors.CodeAlreadyExists(e.Code)
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employees_email") {
		return employeeerrors.EmailAlreadyExists(e.Email)
	}

	return apperror.Wrap(err, apperror.CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
}
