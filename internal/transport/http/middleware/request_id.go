package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appCtx "github.com/verimail/signup-service/internal/pkg/context"
)

const RequestIDHeader = "X-Request-Id"

// RequestID attaches a request id to the context and echoes it in the
// response header. An incoming X-Request-Id is trusted as-is.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(appCtx.WithRequestID(r.Context(), id)))
	})
}
