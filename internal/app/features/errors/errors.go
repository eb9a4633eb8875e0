// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waitlist/internal/app/system/requestlog"
	"go.uber.org/zap"
)

// ErrorLogger records handler-level failures with request correlation so
// a redirect to the error page can be traced back to its cause.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger on top of the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// Internal logs a server-side failure for the given request.
func (e *ErrorLogger) Internal(r *http.Request, msg string, err error) {
	e.log.Error(msg,
		zap.Error(err),
		zap.String("request_id", requestlog.RequestID(r)),
		zap.String("path", r.URL.Path))
}

// Rejected logs a request the handler refused (bad state, denied
// consent). These are warnings, not failures.
func (e *ErrorLogger) Rejected(r *http.Request, msg string, fields ...zap.Field) {
	fields = append(fields,
		zap.String("request_id", requestlog.RequestID(r)),
		zap.String("path", r.URL.Path))
	e.log.Warn(msg, fields...)
}
