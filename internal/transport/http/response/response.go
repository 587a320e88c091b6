package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/verimail/signup-service/internal/domain"
	"github.com/verimail/signup-service/internal/logger"
)

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Text writes a plain-text body with the given status.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprint(w, body)
}

// Error maps a domain error to its HTTP status and writes a JSON
// {"message": ...} body. Non-domain errors become a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusAndMessage(r, err)
	JSON(w, status, map[string]string{"message": msg})
}

// TextError is Error with a plain-text body instead of JSON.
func TextError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusAndMessage(r, err)
	Text(w, status, msg)
}

func statusAndMessage(r *http.Request, err error) (int, string) {
	l := logger.WithCtx(r.Context())
	var de *domain.Error
	if !errors.As(err, &de) {
		l.Error().Err(err).Msg("unhandled error")
		return http.StatusInternalServerError, "internal error"
	}
	status := StatusFromKind(de.Kind)
	if status >= http.StatusInternalServerError {
		l.Error().Err(de).Str("code", de.Code).Msg("request failed")
	} else {
		l.Debug().Str("code", de.Code).Int("status", status).Msg("request rejected")
	}
	return status, de.Message
}

// StatusFromKind maps an error kind to its HTTP status.
func StatusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	case domain.KindInfrastructure:
		return http.StatusServiceUnavailable
	case domain.KindDelivery, domain.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidJSON(err)
	}
	return nil
}
