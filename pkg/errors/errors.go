package errors

import "errors"

// Codes shared between the domain and transport layers.
const (
	CodeInvalidInput        = "invalid_input"
	CodeUpstreamValidation  = "upstream_validation"
	CodeUpstreamError       = "upstream_error"
	CodeUpstreamUnreachable = "upstream_unreachable"
	CodeUpstreamNetwork     = "upstream_network"
	CodeUpstreamMalformed   = "upstream_malformed"
	CodeBusy                = "busy"
	CodeInvalidToken        = "invalid_token"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode helps handler differentiate failures.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the first AppError in the chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
