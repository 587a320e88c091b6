package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/verimail/signup-service/internal/domain"
	"github.com/verimail/signup-service/internal/transport/http/response"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps map[string]Pinger
}

// NewHealthHandler takes the named dependencies readiness should check.
// Nil entries are skipped so optional backends can be passed directly.
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// Healthz reports process liveness only.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports whether all backing stores answer a ping.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for name, dep := range h.deps {
		if dep == nil {
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			response.Error(w, r, domain.ErrDBUnavailable(errors.New(name+" unreachable")))
			return
		}
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
