package logger

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Logger interface {
	Info(action, message, requestID string, details map[string]interface{})
	Debug(action, message, requestID string, details map[string]interface{})
	Warn(action, message, requestID string, details map[string]interface{})
	Error(action, message, requestID string, details map[string]interface{}, err error)
}

type jsonLogger struct {
	zl zerolog.Logger
}

func New(service string) Logger {
	return NewWithWriter(service, os.Stdout)
}

func NewWithWriter(service string, w io.Writer) Logger {
	hostname, _ := os.Hostname()
	zerolog.TimestampFieldName = FieldTimestamp
	zerolog.MessageFieldName = FieldMessage
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	zl := zerolog.New(w).With().
		Timestamp().
		Str(FieldService, service).
		Str(FieldHostname, hostname).
		Logger()
	return &jsonLogger{zl: zl}
}

// Nop discards everything; used by tests.
func Nop() Logger {
	return &jsonLogger{zl: zerolog.Nop()}
}

// NewRequestID returns an identifier that ties a request to its log lines.
func NewRequestID() string {
	return "req-" + uuid.NewString()
}

func (l *jsonLogger) Info(action, message, requestID string, details map[string]interface{}) {
	l.log(l.zl.Info(), action, message, requestID, details, nil)
}

func (l *jsonLogger) Debug(action, message, requestID string, details map[string]interface{}) {
	l.log(l.zl.Debug(), action, message, requestID, details, nil)
}

func (l *jsonLogger) Warn(action, message, requestID string, details map[string]interface{}) {
	l.log(l.zl.Warn(), action, message, requestID, details, nil)
}

func (l *jsonLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
	l.log(l.zl.Error(), action, message, requestID, details, err)
}

func (l *jsonLogger) log(ev *zerolog.Event, action, message, requestID string, details map[string]interface{}, err error) {
	ev = ev.Str(FieldAction, action).Str(FieldRequestID, requestID)
	if len(details) > 0 {
		ev = ev.Interface(FieldDetails, details)
	}
	if err != nil {
		ev = ev.Dict(FieldError, zerolog.Dict().
			Str("msg", err.Error()).
			Str("type", errorType(err)))
	}
	ev.Msg(message)
}
