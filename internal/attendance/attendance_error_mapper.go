package attendance

import (
	"errors"
	"net/http"
	"strings"

	attendanceerrors "github.com/rohinisinghsenger-max/hrms-portal/internal/attendance/errors"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError normalizes storage errors into the app taxonomy.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrAttendanceNotFound
	}

	return apperror.Wrap(err, apperror.CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
}

// isDuplicateRecord reports whether err is the (employee_id, date) unique
// constraint firing at write time. The service treats it the same as its own
// pre-check conflict; the pre-check window is racy under concurrent writers.
func isDuplicateRecord(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_employee_date"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") &&
		strings.Contains(errMsg, "uq_attendance_employee_date")
}
