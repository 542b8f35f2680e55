// Package auth implements API key authentication for the REST server.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Middleware rejects requests lacking a configured API key. With no keys
// configured the middleware passes everything through, for local development.
type Middleware struct {
	keys   []string
	logger *zap.Logger
}

// New creates a new authentication middleware.
func New(keys []string, logger *zap.Logger) *Middleware {
	return &Middleware{
		keys:   keys,
		logger: logger.Named("auth"),
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler for API key checks.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		if len(m.keys) == 0 {
			return next(w, req)
		}

		key := extractKey(req.Request)
		if key == "" || !m.keyAllowed(key) {
			m.logger.Debug("Rejected request with missing or invalid API key",
				zap.String("path", req.URL.Path))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)

			return nil
		}

		return next(w, req)
	}
}

func (m *Middleware) keyAllowed(key string) bool {
	for _, allowed := range m.keys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(allowed)) == 1 {
			return true
		}
	}

	return false
}

func extractKey(r *http.Request) string {
	if key := r.Header.Get("X-Api-Key"); key != "" {
		return key
	}

	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	return ""
}
