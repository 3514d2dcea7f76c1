// Error handling utilities for the admin API.

package admin

import (
	"errors"
	"net/http"

	"github.com/getmockd/mockswitch/pkg/httputil"
	"github.com/getmockd/mockswitch/pkg/store"
)

// Safe error messages for client responses.
const (
	// ErrMsgInternalError is returned for unexpected internal errors.
	ErrMsgInternalError = "An internal error occurred"

	// ErrMsgInvalidJSON is returned for JSON parsing errors.
	ErrMsgInvalidJSON = "Invalid JSON in request body"

	// ErrMsgOperationFailed is returned for generic operation failures.
	ErrMsgOperationFailed = "Operation failed"

	// ErrMsgNotFound is returned when a resource is not found.
	ErrMsgNotFound = "Resource not found"

	// ErrMsgDisabled is returned when the controller is globally disabled.
	ErrMsgDisabled = "Mock controller is disabled"

	// ErrMsgReadOnly is returned when storage refuses writes.
	ErrMsgReadOnly = "Handler state storage is read-only"
)

// writeOperationError logs err server-side and writes a sanitized response.
// Storage errors keep their underlying cause out of the response body.
func (a *API) writeOperationError(w http.ResponseWriter, err error, operation string, details ...any) {
	args := []any{"operation", operation, "error", err}
	args = append(args, details...)
	a.log.Error("operation failed", args...)

	switch {
	case errors.Is(err, store.ErrReadOnly):
		httputil.WriteConflict(w, "storage_read_only", ErrMsgReadOnly)
	case errors.Is(err, store.ErrClosed):
		httputil.WriteInternalError(w, "storage_closed", ErrMsgInternalError)
	default:
		httputil.WriteInternalError(w, "operation_failed", ErrMsgOperationFailed)
	}
}

// writeJSONError logs a request decoding failure and writes a 400.
func (a *API) writeJSONError(w http.ResponseWriter, err error) {
	a.log.Debug("JSON parsing failed", "error", err)
	httputil.WriteBadRequest(w, "invalid_json", ErrMsgInvalidJSON)
}
