// internal/adapter/logger/types.go
package logger

import "fmt"

// Field names of a log entry.
const (
	FieldTimestamp = "timestamp"
	FieldService   = "service"
	FieldHostname  = "hostname"
	FieldRequestID = "request_id"
	FieldAction    = "action"
	FieldMessage   = "message"
	FieldDetails   = "details"
	FieldError     = "error"
)

func errorType(err error) string {
	return fmt.Sprintf("%T", err)
}
