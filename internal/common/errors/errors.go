package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"
)

// ErrorCode код ошибки приложения
type ErrorCode string

const (
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"

	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrCodeCacheError    ErrorCode = "CACHE_ERROR"
	ErrCodeCacheExpired  ErrorCode = "CACHE_EXPIRED"
	ErrCodeTelegramAPI   ErrorCode = "TELEGRAM_API_ERROR"
)

// Ответы клиенту для внутренних ошибок не раскрывают причину.
const (
	MsgSomethingWrong = "Something went wrong"
	MsgCacheExpired   = "Cache expired"
	MsgUnauthorized   = "Unauthorized Access."
	MsgForbidden      = "Forbiden"
	MsgInvalidID      = "Invalid id."
	MsgAlreadyExists  = "数据已存在"
	MsgRecordExists   = "记录已存在"
	MsgNotRecorded    = "未记录存在"
)

// AppError типизированная ошибка приложения
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Stack     []string               `json:"stack,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsInternal ошибки хранилища, кэша и Telegram
func (e *AppError) IsInternal() bool {
	switch e.Code {
	case ErrCodeInternal, ErrCodeDatabaseError, ErrCodeCacheError, ErrCodeCacheExpired, ErrCodeTelegramAPI:
		return true
	}
	return false
}

// WithDetail добавляет деталь к ошибке
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

// New создает новую ошибку приложения
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Stack:     getStackTrace(),
	}
}

// Wrap оборачивает существующую ошибку
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

func getStackTrace() []string {
	var stack []string
	for i := 2; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		if strings.Contains(fn.Name(), "internal/common/errors") {
			continue
		}
		stack = append(stack, fmt.Sprintf("%s:%d %s", file, line, fn.Name()))
		if len(stack) >= 10 {
			break
		}
	}
	return stack
}

// NewValidationError ошибка валидации, message уходит клиенту как есть
func NewValidationError(field, message string) *AppError {
	return New(ErrCodeValidation, message).WithDetail("field", field)
}

// NewNotFoundError запись не найдена
func NewNotFoundError(resource string, id interface{}) *AppError {
	return New(ErrCodeNotFound, MsgNotRecorded).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

// NewConflictError конфликт при вставке
func NewConflictError(resource, message string) *AppError {
	return New(ErrCodeConflict, message).WithDetail("resource", resource)
}

func NewBadRequestError(message string) *AppError {
	return New(ErrCodeBadRequest, message)
}

func NewUnauthorizedError(reason string) *AppError {
	return New(ErrCodeUnauthorized, MsgUnauthorized).WithDetail("reason", reason)
}

func NewForbiddenError(reason string) *AppError {
	return New(ErrCodeForbidden, MsgForbidden).WithDetail("reason", reason)
}

// NewDatabaseError ошибка базы данных
func NewDatabaseError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeDatabaseError, MsgSomethingWrong).WithDetail("operation", operation)
}

// NewCacheError ошибка кэша
func NewCacheError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeCacheError, MsgSomethingWrong).WithDetail("operation", operation)
}

// NewCacheExpiredError ожидаемая запись в кэше отсутствует
func NewCacheExpiredError(key string) *AppError {
	return New(ErrCodeCacheExpired, MsgCacheExpired).WithDetail("key", key)
}

// NewTelegramAPIError ошибка Telegram API
func NewTelegramAPIError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeTelegramAPI, MsgSomethingWrong).WithDetail("operation", operation)
}

// AsAppError достает AppError из цепочки
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusCode HTTP статус для ошибки. Не найдено отдается как 400.
func StatusCode(err error) int {
	appErr, ok := AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case ErrCodeValidation, ErrCodeBadRequest, ErrCodeNotFound:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage текст, безопасный для ответа клиенту.
func PublicMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return MsgSomethingWrong
	}
	return appErr.Message
}
