package common

import (
	"errors"
	"fmt"
)

// Returned when a record from the API lacks a required field.
var ErrInvalidRecord = errors.New("invalid record")

// Returned when a http request did not answer with a success status.
type HttpStatusError struct {
	Url        string
	StatusCode int
	Body       string
}

func (e *HttpStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request to '%s' failed with status code %d", e.Url, e.StatusCode)
	}
	return fmt.Sprintf("request to '%s' failed with status code %d: %s", e.Url, e.StatusCode, e.Body)
}
