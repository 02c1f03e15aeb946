package salaryerrors

import (
	"net/http"

	"github.com/azirkitai/utamaHR-sub001/internal/shared/apperror"
)

var (
	ErrSalaryConfigNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary configuration not found",
		http.StatusNotFound,
	)
	ErrInvalidSalaryType = apperror.New(
		apperror.CodeInvalidInput,
		"salary type must be MONTHLY, DAILY or HOURLY",
		http.StatusBadRequest,
	)
	ErrNegativeSalary = apperror.New(
		apperror.CodeInvalidInput,
		"salary amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"effective date must be formatted YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
