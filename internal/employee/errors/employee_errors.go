package employeeerrors

import (
	"fmt"
	"net/http"

	"github.com/rohinisinghsenger-max/hrms-portal/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrBlankCode = apperror.New(
		apperror.CodeInvalidInput,
		"Employee code cannot be blank",
		http.StatusBadRequest,
	)
	ErrShortFullName = apperror.New(
		apperror.CodeInvalidInput,
		"Full name must be at least 2 characters",
		http.StatusBadRequest,
	)
	ErrBlankDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"Department cannot be blank",
		http.StatusBadRequest,
	)
	ErrInvalidPhone = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid phone number format",
		http.StatusBadRequest,
	)
)

// CodeAlreadyExists names the conflicting employee code in the message.
func CodeAlreadyExists(code string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("Employee with code '%s' already exists", code),
		http.StatusConflict,
	)
}

// EmailAlreadyExists names the conflicting email in the message.
func EmailAlreadyExists(email string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("Employee with email '%s' already exists", email),
		http.StatusConflict,
	)
}
