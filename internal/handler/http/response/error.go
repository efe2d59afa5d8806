package response

import (
	"errors"
	"net/http"

	"github.com/arkalabs/payroll-engine-go/internal/domain/employee"
	"github.com/arkalabs/payroll-engine-go/internal/domain/payroll"
	"github.com/arkalabs/payroll-engine-go/internal/domain/user"
	"github.com/arkalabs/payroll-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Identity/role errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrIdentityNotResolvable):
		Unauthorized(w, "Caller identity could not be resolved")
	case errors.Is(err, user.ErrElevatedRoleRequired):
		Forbidden(w, "Admin or HR role required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNoActiveEmployees):
		NotFound(w, "No active employees found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrEmployeeHasNoBaseSalary):
		BadRequest(w, "Employee has no base salary configured", nil)
	case errors.Is(err, payroll.ErrNoWorkingDaysInPeriod):
		InternalServerError(w, "Period has no working days")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
