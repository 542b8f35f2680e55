// Package logging implements structured request logging for the REST server.
package logging

import (
	"net/http"
	"time"

	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Middleware logs one line per handled request.
type Middleware struct {
	logger *zap.Logger
}

// New creates a new request logging middleware.
func New(logger *zap.Logger) *Middleware {
	return &Middleware{
		logger: logger.Named("http"),
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler for request logging.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		err := next(recorder, req)

		fields := []zap.Field{
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("duration", time.Since(start)),
		}

		if err != nil {
			fields = append(fields, zap.Error(err))
			m.logger.Warn("Request failed", fields...)

			return err
		}

		m.logger.Debug("Request handled", fields...)

		return nil
	}
}

type statusRecorder struct {
	http.ResponseWriter

	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
