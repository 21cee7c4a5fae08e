package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"

	"clipvault/internal/logging"
	"clipvault/internal/services"
)

// requestID stamps every request with a correlation identifier, honoring one
// supplied by the client.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := services.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// basicAuth guards the admin surface. Credentials missing from the server
// configuration are a deployment fault and answer 500, never a 401 challenge
// that would invite retries with valid credentials.
func (s *Server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantUser := s.cfg.Server.AdminUser
		wantPass := s.cfg.Server.AdminPassword
		if wantUser == "" || wantPass == "" {
			s.logger.Error("admin credentials are not configured")
			s.writeMessage(w, http.StatusInternalServerError, "server configuration error")
			return
		}

		user, pass, ok := r.BasicAuth()
		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(wantUser)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(wantPass)) == 1
		if !ok || !userOK || !passOK {
			w.Header().Set("WWW-Authenticate", `Basic realm="Admin Area"`)
			s.writeMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// logRequests emits one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := services.RequestIDFromContext(r.Context())
		s.logger.Debug("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String(logging.FieldRequestID, id))
		next.ServeHTTP(w, r)
	})
}
