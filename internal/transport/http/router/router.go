package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	redisinfra "github.com/verimail/signup-service/internal/infrastructure/redis"
	"github.com/verimail/signup-service/internal/metrics"
	"github.com/verimail/signup-service/internal/transport/http/handlers"
	"github.com/verimail/signup-service/internal/transport/http/middleware"
)

// Limits holds the per-route request budgets (requests per minute, per
// client). Zero disables the limit for that route.
type Limits struct {
	Register int
	Login    int
	Verify   int
}

func DefaultLimits() Limits {
	return Limits{Register: 3, Login: 5, Verify: 10}
}

func New(
	authH *handlers.AuthHandler,
	healthH *handlers.HealthHandler,
	limiter *redisinfra.FixedWindowLimiter,
	limits Limits,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)

	window := time.Minute
	r.Route("/auth/v1", func(r chi.Router) {
		r.With(middleware.RateLimit(limiter, "register", limits.Register, window)).
			Post("/register", authH.Register)
		r.With(middleware.RateLimit(limiter, "verify", limits.Verify, window)).
			Post("/verify", authH.Verify)
		r.With(middleware.RateLimit(limiter, "login", limits.Login, window)).
			Post("/login", authH.Login)
	})

	r.Get("/healthz", healthH.Healthz)
	r.Get("/readyz", healthH.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
