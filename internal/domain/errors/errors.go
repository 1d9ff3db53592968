package errors

import (
	"net/http"

	"cadastre/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Is reports whether target is a BaseError carrying the same error code,
// so copies made by WithDetails still match the predefined error.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid username or password",
		"",
	)

	ErrUserInactive = NewBaseError(
		http.StatusUnauthorized,
		"USER_INACTIVE",
		"The account is disabled",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Invalid or expired refresh token",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	// Password policy errors
	ErrPasswordTooShort = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_TOO_SHORT",
		"Password must be at least 8 characters long",
		"",
	)

	ErrPasswordNoLowercase = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_NO_LOWERCASE",
		"Password must contain at least one lowercase letter",
		"",
	)

	ErrPasswordNoUppercase = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_NO_UPPERCASE",
		"Password must contain at least one uppercase letter",
		"",
	)

	ErrPasswordNoNumber = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_NO_NUMBER",
		"Password must contain at least one number",
		"",
	)

	ErrPasswordNoSpecialChar = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_NO_SPECIAL_CHAR",
		"Password must contain at least one special character",
		"",
	)

	ErrPasswordForbiddenWords = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_FORBIDDEN_WORDS",
		"Password contains forbidden words",
		"",
	)

	// User, role and permission errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"Username or email is already registered",
		"",
	)

	ErrRoleNotFound = NewBaseError(
		http.StatusNotFound,
		"ROLE_NOT_FOUND",
		"Role not found",
		"",
	)

	ErrRoleAlreadyExists = NewBaseError(
		http.StatusConflict,
		"ROLE_ALREADY_EXISTS",
		"A role with this name already exists",
		"",
	)

	ErrRoleInUse = NewBaseError(
		http.StatusConflict,
		"ROLE_IN_USE",
		"The role is assigned to users and cannot be deleted",
		"",
	)

	ErrPermissionNotFound = NewBaseError(
		http.StatusNotFound,
		"PERMISSION_NOT_FOUND",
		"Permission not found",
		"",
	)

	ErrPermissionAlreadyExists = NewBaseError(
		http.StatusConflict,
		"PERMISSION_ALREADY_EXISTS",
		"A permission with this name already exists",
		"",
	)

	ErrPermissionInUse = NewBaseError(
		http.StatusConflict,
		"PERMISSION_IN_USE",
		"The permission is granted to roles and cannot be deleted",
		"",
	)

	// Lookup and location errors
	ErrLookupNotFound = NewBaseError(
		http.StatusNotFound,
		"LOOKUP_NOT_FOUND",
		"Referenced record not found",
		"",
	)

	ErrLookupAlreadyExists = NewBaseError(
		http.StatusConflict,
		"LOOKUP_ALREADY_EXISTS",
		"A record with this name already exists",
		"",
	)

	// Owner and responsible person errors
	ErrPersonNotFound = NewBaseError(
		http.StatusNotFound,
		"PERSON_NOT_FOUND",
		"Owner or responsible person not found",
		"",
	)

	ErrPersonAlreadyExists = NewBaseError(
		http.StatusConflict,
		"PERSON_ALREADY_EXISTS",
		"A person with this national ID already exists",
		"",
	)

	ErrPersonInUse = NewBaseError(
		http.StatusConflict,
		"PERSON_IN_USE",
		"The person is linked to properties and cannot be deleted",
		"",
	)

	// Property errors
	ErrPropertyNotFound = NewBaseError(
		http.StatusNotFound,
		"PROPERTY_NOT_FOUND",
		"Property not found",
		"",
	)

	ErrDuplicatePlateNumber = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_PLATE_NUMBER",
		"A property with this plate number already exists",
		"",
	)

	ErrPropertyContactRequired = NewBaseError(
		http.StatusBadRequest,
		"PROPERTY_CONTACT_REQUIRED",
		"A property must reference an owner or a responsible person",
		"",
	)

	ErrPropertyTypeNotFound = NewBaseError(
		http.StatusNotFound,
		"PROPERTY_TYPE_NOT_FOUND",
		"Property type not found",
		"",
	)

	ErrPhotoNotFound = NewBaseError(
		http.StatusNotFound,
		"PHOTO_NOT_FOUND",
		"The property has no photo",
		"",
	)

	ErrPhotoRejected = NewBaseError(
		http.StatusBadRequest,
		"PHOTO_REJECTED",
		"The uploaded photo was rejected",
		"",
	)

	ErrCertificateInvalid = NewBaseError(
		http.StatusBadRequest,
		"CERTIFICATE_INVALID",
		"The scanned certificate does not match a registered property",
		"",
	)

	// Payment errors
	ErrPaymentNotFound = NewBaseError(
		http.StatusNotFound,
		"PAYMENT_NOT_FOUND",
		"Payment not found",
		"",
	)

	ErrPaymentDetailNotFound = NewBaseError(
		http.StatusNotFound,
		"PAYMENT_DETAIL_NOT_FOUND",
		"Payment detail not found",
		"",
	)

	ErrInvalidAmount = NewBaseError(
		http.StatusBadRequest,
		"INVALID_AMOUNT",
		"The amount is invalid",
		"",
	)

	ErrPaymentExceedsBalance = NewBaseError(
		http.StatusBadRequest,
		"PAYMENT_EXCEEDS_BALANCE",
		"The payment exceeds the remaining balance",
		"",
	)

	ErrPaymentPropertyMismatch = NewBaseError(
		http.StatusBadRequest,
		"PAYMENT_PROPERTY_MISMATCH",
		"The payment belongs to another property",
		"",
	)

	ErrYearlyPaymentExists = NewBaseError(
		http.StatusConflict,
		"YEARLY_PAYMENT_EXISTS",
		"A yearly payment already exists for this property and year",
		"",
	)

	// Policy errors
	ErrPolicyNotFound = NewBaseError(
		http.StatusNotFound,
		"POLICY_NOT_FOUND",
		"Policy not found",
		"",
	)

	ErrNoActivePolicy = NewBaseError(
		http.StatusNotFound,
		"NO_ACTIVE_POLICY",
		"No active policy is configured",
		"",
	)

	ErrInvalidPercentage = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PERCENTAGE",
		"Percentages must be between 0 and 100",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap returns the underlying database error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database operation failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
