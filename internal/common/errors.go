package common

// ServiceError 是业务层向处理层传递的统一错误类型。
// Code 决定 HTTP 状态，Message 为面向用户的说明，
// Fields 可选地携带字段级校验错误（字段名到错误说明）。
type ServiceError struct {
	Code    string
	Message string
	Fields  map[string]string
}

func (e *ServiceError) Error() string {
	return e.Message
}

const (
	ErrCodeValidation   = "validation"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeInternal     = "internal"
)

// NewValidationError 构造参数校验错误
func NewValidationError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeValidation, Message: message}
}

// NewFieldError 构造携带字段明细的校验错误
func NewFieldError(message string, fields map[string]string) *ServiceError {
	return &ServiceError{Code: ErrCodeValidation, Message: message, Fields: fields}
}

func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeUnauthorized, Message: message}
}

func NewForbiddenError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeForbidden, Message: message}
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeConflict, Message: message}
}

func NewInternalError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeInternal, Message: message}
}
