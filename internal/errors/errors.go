package errors

import "net/http"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func New(message string, statusCode int) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: statusCode}
}

// IsNotFound reports whether err carries a 404 status code.
func IsNotFound(err error) bool {
	e, ok := err.(*ErrorWithStatusCode)
	return ok && e.StatusCode == http.StatusNotFound
}

// StatusCode extracts the http status from err, defaulting to 500.
func StatusCode(err error) int {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
