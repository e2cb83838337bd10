package pagesApi

import (
	"errors"
	"fmt"
)

// RequestError reports an API call whose envelope did not signal success.
type RequestError struct {
	Operation string
	Payload   string
}

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	if e.Operation != "" {
		return fmt.Sprintf("failed to %s: %s", e.Operation, e.Payload)
	}
	return fmt.Sprintf("request failed: %s", e.Payload)
}

// IsRequestError returns true when err is (or wraps) a RequestError.
func IsRequestError(err error) bool {
	if err == nil {
		return false
	}
	var re *RequestError
	return errors.As(err, &re)
}
