package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError for transport mapping.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindValidation
	KindUnauthorised
	KindNotFound
	KindConflict
	KindUnavailable
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidation       = "VALIDATION_FAILED"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInvalidLogin     = "INVALID_CREDENTIALS"
	ErrCodeEmailTaken       = "EMAIL_TAKEN"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeCategoryNotFound = "CATEGORY_NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeCategoryInUse    = "CATEGORY_IN_USE"
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
	ErrCodeRouteNotFound    = "ROUTE_NOT_FOUND"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DomainError is the error type returned by services for expected failures.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details []FieldError
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped sentinels compare equal.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewValidationError builds a validation error carrying every failing field.
func NewValidationError(details []FieldError) *DomainError {
	return &DomainError{
		Kind:    KindValidation,
		Code:    ErrCodeValidation,
		Message: "validation failed",
		Details: details,
	}
}

// NewCategoryInUseError reports a category delete blocked by dependent products.
func NewCategoryInUseError(name string, productCount int64) *DomainError {
	return NewDomainError(
		KindConflict,
		ErrCodeCategoryInUse,
		fmt.Sprintf("cannot delete category %q: it still has %d product(s)", name, productCount),
	)
}

// Common domain errors
var (
	ErrInvalidCredentials = NewDomainError(KindUnauthorised, ErrCodeInvalidLogin, "invalid email or password")
	ErrUnauthorised       = NewDomainError(KindUnauthorised, ErrCodeUnauthorised, "unauthorized")
	ErrEmailTaken         = NewDomainError(KindConflict, ErrCodeEmailTaken, "email is already registered")
	ErrUserNotFound       = NewDomainError(KindNotFound, ErrCodeUserNotFound, "user not found")
	ErrCategoryNotFound   = NewDomainError(KindNotFound, ErrCodeCategoryNotFound, "category not found")
	ErrProductNotFound    = NewDomainError(KindNotFound, ErrCodeProductNotFound, "product not found")
	ErrStoreUnavailable   = NewDomainError(KindUnavailable, ErrCodeStoreUnavailable, "data store is unavailable")
)

// AsDomainError unwraps err into a DomainError when one is present in its chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
