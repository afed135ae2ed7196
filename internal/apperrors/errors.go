package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
// It is also used when a referenced resource is missing from a request (bad request).
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyMember indicates that a stock is already listed on the exchange.
var ErrAlreadyMember = errors.New("stock already listed on exchange")

// ErrConflict indicates that a concurrent modification could not be resolved within the retry budget.
var ErrConflict = errors.New("concurrent modification conflict")

// ErrStaleVersion indicates that the in-memory version of a row no longer matches the persisted one.
var ErrStaleVersion = errors.New("stale version")

// ErrUniqueViolation indicates that a write collided with a unique index.
var ErrUniqueViolation = errors.New("unique constraint violation")

// ErrInternal is the catch-all kind for anything unexpected.
var ErrInternal = errors.New("internal error")

// Kind is the tagged failure kind of an error as seen by callers.
type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindBadRequest      Kind = "BAD_REQUEST"
	KindAlreadyExists   Kind = "ALREADY_EXISTS"
	KindAlreadyMember   Kind = "ALREADY_MEMBER"
	KindConflict        Kind = "CONFLICT"
	KindStaleVersion    Kind = "STALE_VERSION"
	KindUniqueViolation Kind = "UNIQUE_VIOLATION"
	KindTimeout         Kind = "TIMEOUT"
	KindInternal        Kind = "INTERNAL"
)

// KindOf resolves the failure kind carried by err. Unknown errors are INTERNAL.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindBadRequest
	case errors.Is(err, ErrDuplicate):
		return KindAlreadyExists
	case errors.Is(err, ErrAlreadyMember):
		return KindAlreadyMember
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrStaleVersion):
		return KindStaleVersion
	case errors.Is(err, ErrUniqueViolation):
		return KindUniqueViolation
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	default:
		return KindInternal
	}
}

// HTTPStatus maps a failure kind to the HTTP status code returned to clients.
// Retryable store kinds only reach this point when something bypassed the retry coordinator,
// so they are reported like an exhausted budget.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindAlreadyExists, KindAlreadyMember, KindConflict, KindStaleVersion, KindUniqueViolation:
		return http.StatusConflict
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// AppError is an error that carries an HTTP status, a default message and
// a message code plus arguments so the message can be localized later.
type AppError struct {
	Code        int    `json:"-"`
	Message     string `json:"message"`
	MessageCode string `json:"-"`
	Args        []any  `json:"-"`
	Err         error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with an explicit status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func newCodedError(status int, kind error, messageCode string, args ...any) *AppError {
	return &AppError{
		Code:        status,
		Message:     kind.Error(),
		MessageCode: messageCode,
		Args:        args,
		Err:         kind,
	}
}

// NewNotFoundError creates a NOT_FOUND error identified by a message code.
func NewNotFoundError(messageCode string, args ...any) *AppError {
	return newCodedError(http.StatusNotFound, ErrNotFound, messageCode, args...)
}

// NewBadRequestError creates a BAD_REQUEST error identified by a message code.
func NewBadRequestError(messageCode string, args ...any) *AppError {
	return newCodedError(http.StatusBadRequest, ErrValidation, messageCode, args...)
}

// NewDuplicateError creates an ALREADY_EXISTS error identified by a message code.
func NewDuplicateError(messageCode string, args ...any) *AppError {
	return newCodedError(http.StatusConflict, ErrDuplicate, messageCode, args...)
}

// NewAlreadyMemberError creates an ALREADY_MEMBER error identified by a message code.
func NewAlreadyMemberError(messageCode string, args ...any) *AppError {
	return newCodedError(http.StatusConflict, ErrAlreadyMember, messageCode, args...)
}

// NewConflictError wraps the last failure of an exhausted retry budget as CONFLICT.
func NewConflictError(messageCode string, cause error) *AppError {
	return &AppError{
		Code:        http.StatusConflict,
		Message:     ErrConflict.Error(),
		MessageCode: messageCode,
		Err:         fmt.Errorf("%w: %w", ErrConflict, cause),
	}
}

// NewStaleVersionError reports an optimistic locking failure on the given entity.
func NewStaleVersionError(entity string, id int64) error {
	return fmt.Errorf("%w: %s %d was modified concurrently", ErrStaleVersion, entity, id)
}

// NewUniqueViolationError reports a collision on a unique index.
func NewUniqueViolationError(constraint string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrUniqueViolation, constraint)
	}
	return fmt.Errorf("%w: %s: %w", ErrUniqueViolation, constraint, err)
}

// NewInternalServerError wraps an unexpected failure.
func NewInternalServerError(message string, err error) *AppError {
	return &AppError{
		Code:        http.StatusInternalServerError,
		Message:     message,
		MessageCode: "error.unexpected",
		Err:         err,
	}
}
