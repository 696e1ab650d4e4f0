package remote

import (
	"errors"
	"fmt"
	"strings"
)

// RequestError is a non-2xx response of the remote API.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

var schemaRejectionSignals = []string{
	"invalid column",
	"unknown column",
	"invalid field",
	"unknown field",
	"no such column",
}

// IsSchemaRejection reports whether an error body says the request referenced
// columns the remote table does not have.
func IsSchemaRejection(body string) bool {
	body = strings.ToLower(body)

	for _, s := range schemaRejectionSignals {
		if strings.Contains(body, s) {
			return true
		}
	}

	return false
}

// SchemaRejected reports whether err is a remote response rejecting the query's columns.
func SchemaRejected(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return IsSchemaRejection(reqErr.Body)
	}

	return false
}
