// Package server provides the HTTP REST API for the ClarityCareer job board.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/claritycareer/claritycareer/internal/types"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrCompanyNotFound indicates the referenced company does not exist
type ErrCompanyNotFound struct {
	CompanyID uuid.UUID
}

func (e *ErrCompanyNotFound) Error() string {
	return fmt.Sprintf("company not found: %s", e.CompanyID)
}

// ErrJobNotFound indicates the referenced job listing does not exist
type ErrJobNotFound struct {
	JobID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.JobID)
}

// ErrApplicationNotFound indicates the referenced application does not exist
type ErrApplicationNotFound struct {
	ApplicationID uuid.UUID
}

func (e *ErrApplicationNotFound) Error() string {
	return fmt.Sprintf("application not found: %s", e.ApplicationID)
}

// ErrNotOwner indicates the caller does not own the resource they tried to
// write under. Surfaced as 403 and published on the permission-errors watch
// topic so dashboards can show the denial.
type ErrNotOwner struct {
	Resource   string // "company" or "job"
	ResourceID uuid.UUID
	UserID     uuid.UUID
}

func (e *ErrNotOwner) Error() string {
	return fmt.Sprintf("user %s does not own %s %s", e.UserID, e.Resource, e.ResourceID)
}

// ErrAlreadyApplied indicates the caller already applied to the job
type ErrAlreadyApplied struct {
	JobID uuid.UUID
}

func (e *ErrAlreadyApplied) Error() string {
	return fmt.Sprintf("already applied to job: %s", e.JobID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var fieldErr *types.FieldError
	if errors.As(err, &fieldErr) {
		return http.StatusBadRequest
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrAlreadyApplied:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrNotOwner:
		return http.StatusForbidden
	case *ErrUserNotFound, *ErrCompanyNotFound, *ErrJobNotFound, *ErrApplicationNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
