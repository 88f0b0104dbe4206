package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	logpkg "github.com/mavropro/mavro-api/internal/logger"
	"github.com/mavropro/mavro-api/internal/models"
	"github.com/mavropro/mavro-api/internal/request"
)

// SessionResolver loads the session named by the X-Session-ID header, creating
// a fresh one when the header is absent or names an expired session.
type SessionResolver interface {
	GetOrCreate(ctx context.Context, id string) (*models.Session, error)
}

// Session resolves the dashboard session for every request. The resolved
// session is placed in the request context and its ID is echoed back in the
// X-Session-ID response header so clients learn freshly minted IDs.
func Session(store SessionResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := request.SessionID(r)
			sess, err := store.GetOrCreate(r.Context(), id)
			if err != nil {
				logger.Error("session_resolve_failed",
					zap.String("session_id", logpkg.SanitizeSessionID(id)),
					zap.Error(err),
				)
				respondErrorJSON(w, r, http.StatusServiceUnavailable, "Service Unavailable", "Session store is unreachable", logger)
				return
			}

			if id != "" && sess.ID != id {
				logger.Info("session_replaced",
					zap.String("requested_id", logpkg.SanitizeSessionID(id)),
					zap.String("session_id", logpkg.SanitizeSessionID(sess.ID)),
				)
			}

			w.Header().Set(request.SessionHeader, sess.ID)
			next.ServeHTTP(w, r.WithContext(request.WithSession(r.Context(), sess)))
		})
	}
}
