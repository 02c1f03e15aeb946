package policyerrors

import (
	"net/http"

	"github.com/azirkitai/utamaHR-sub001/internal/shared/apperror"
)

var (
	ErrStatutoryRatesNotFound = apperror.New(
		apperror.CodeNotFound,
		"no statutory rates configured for this date",
		http.StatusNotFound,
	)
	ErrClaimPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"claim policy not found",
		http.StatusNotFound,
	)
	ErrOvertimePolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"overtime rate policy not found",
		http.StatusNotFound,
	)
	ErrClaimPolicyCategoryExists = apperror.New(
		apperror.CodeConflict,
		"claim policy for this category already exists",
		http.StatusConflict,
	)
	ErrInvalidLimitValue = apperror.New(
		apperror.CodeInvalidInput,
		"policy limits cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidRateValue = apperror.New(
		apperror.CodeInvalidInput,
		"rates must be decimal fractions between 0 and 1",
		http.StatusBadRequest,
	)
)
