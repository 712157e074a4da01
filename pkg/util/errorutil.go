package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

// NewAccountDeactivated signals that the actor, its organization, or its
// department has been soft deleted. Fatal to the session.
func NewAccountDeactivated() error {
	return NewDomainError("ACCOUNT_DEACTIVATED", "account deactivated, contact an administrator", http.StatusForbidden, nil)
}

// NewForbidden carries no detail about which authorization rule failed.
func NewForbidden() error {
	return NewDomainError("FORBIDDEN", "insufficient permissions", http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewAlreadyDeleted rejects a soft delete on an already tombstoned record.
func NewAlreadyDeleted(resource string) error {
	return NewDomainError("ALREADY_DELETED", fmt.Sprintf("%s is already deleted", resource), http.StatusConflict, nil)
}

// NewNotDeleted rejects a restore on a record that is not tombstoned.
func NewNotDeleted(resource string) error {
	return NewDomainError("NOT_DELETED", fmt.Sprintf("%s is not deleted", resource), http.StatusConflict, nil)
}

// NewRestoreConflict rejects a restore that would collide with an active
// record holding the same unique key.
func NewRestoreConflict(resource string, details map[string]any) error {
	return NewDomainError("RESTORE_CONFLICT", fmt.Sprintf("an active %s with the same unique key exists", resource), http.StatusConflict, details)
}

// NewHardDeleteDisabled rejects direct permanent deletes. Permanent removal
// happens through the retention sweep or an explicit administrative bypass.
func NewHardDeleteDisabled() error {
	return NewDomainError("HARD_DELETE_DISABLED", "permanent delete is disabled", http.StatusMethodNotAllowed, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
