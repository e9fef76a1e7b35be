package serverutils

import "github.com/gofiber/fiber/v2"

// ApiError carries an HTTP status alongside the underlying cause so the
// error handler middleware can map service failures to responses.
type ApiError struct {
	Code    int
	Message string
	Err     error
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

func NewApiError(code int, message string, err error) *ApiError {
	return &ApiError{Code: code, Message: message, Err: err}
}

func NewBadRequestError(message string, err error) *ApiError {
	return NewApiError(fiber.StatusBadRequest, message, err)
}

func NewNotFoundError(message string) *ApiError {
	return NewApiError(fiber.StatusNotFound, message, nil)
}
