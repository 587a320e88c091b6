package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/verimail/signup-service/internal/application/auth"
	"github.com/verimail/signup-service/internal/config"
	"github.com/verimail/signup-service/internal/infrastructure/db/postgres"
	"github.com/verimail/signup-service/internal/infrastructure/email"
	"github.com/verimail/signup-service/internal/infrastructure/emailcheck"
	"github.com/verimail/signup-service/internal/infrastructure/memory"
	redisinfra "github.com/verimail/signup-service/internal/infrastructure/redis"
	"github.com/verimail/signup-service/internal/infrastructure/security"
	"github.com/verimail/signup-service/internal/logger"
	"github.com/verimail/signup-service/internal/transport/http/handlers"
	"github.com/verimail/signup-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string) (*sql.DB, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewSender func(cfg *config.Config) auth.CodeSender

	NewChecker func(cfg *config.Config) auth.EmailChecker
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		NewRedis: func(addr, password string, db int) RedisClient {
			return redisinfra.New(addr, password, db)
		},
		NewSender:  newSender,
		NewChecker: newChecker,
	}
}

func newSender(cfg *config.Config) auth.CodeSender {
	if cfg.EmailProvider == "fake" {
		return email.NewFakeSender(logger.Logger)
	}
	return email.NewSMTPSender(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		Insecure: cfg.SMTPInsecure,
		Timeout:  10 * time.Second,
	}, logger.Logger)
}

func newChecker(cfg *config.Config) auth.EmailChecker {
	if cfg.ZeroBounceAPIKey == "" {
		logger.Logger.Warn().Msg("no email validation API key; remote validation disabled")
		return emailcheck.NoopChecker{}
	}
	return emailcheck.NewZeroBounceClient(cfg.ZeroBounceBaseURL, cfg.ZeroBounceAPIKey, logger.Logger)
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()

	// 1) account repo: postgres when configured, in-memory in dev
	var accounts auth.AccountRepo
	var dbPinger handlers.Pinger

	if cfg.DBAddr != "" {
		db, err := deps.NewDB(cfg.DBAddr)
		if err != nil {
			return nil, nil, err
		}
		cleanupFns = append(cleanupFns, func() { _ = db.Close() })
		accounts = postgres.NewAccountRepo(db)
		dbPinger = sqlPinger{db}
	} else {
		if cfg.Env != "dev" {
			return nil, nil, errors.New("bootstrap: DB_ADDR required outside dev")
		}
		logger.Logger.Warn().Msg("no DB_ADDR; using in-memory account store")
		accounts = memory.NewAccountRepo()
	}

	// 2) redis (best-effort; rate limiting disabled without it)
	var fwLimiter *redisinfra.FixedWindowLimiter
	var redisPinger handlers.Pinger

	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, "", 0)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			if rc, ok := c.(*redisinfra.Client); ok {
				fwLimiter = redisinfra.NewFixedWindowLimiter(rc)
				redisPinger = rc
			}
		}
	}

	// 3) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, "signup-service")

	// seed (dev only)
	if cfg.Env == "dev" {
		postgres.SeedAccounts(context.Background(), accounts, hasher)
	}

	// 4) outbound collaborators
	sender := deps.NewSender(cfg)
	checker := deps.NewChecker(cfg)

	// 5) service
	authSvc := auth.NewService(
		accounts,
		hasher,
		signer,
		checker,
		sender,
		auth.Config{TokenTTL: cfg.TokenTTL},
	)

	authSvc = authSvc.WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	})

	// 6) handlers + router
	authH := handlers.NewAuthHandler(authSvc)
	healthH := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"db":    dbPinger,
		"redis": redisPinger,
	})

	h := router.New(authH, healthH, fwLimiter, router.Limits{
		Register: cfg.RegisterLimit,
		Login:    cfg.LoginLimit,
		Verify:   cfg.VerifyLimit,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() { runCleanup(cleanupFns) }
	return srv, cleanup, nil
}

// sqlPinger adapts *sql.DB to the readiness Pinger.
type sqlPinger struct{ db *sql.DB }

func (p sqlPinger) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

// runCleanup executes cleanups in reverse registration order.
func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
