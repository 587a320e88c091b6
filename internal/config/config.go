package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	//App
	Env string // dev / staging / prod
	//HTTP
	HTTPAddr string
	//Auth / Security
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	// Infrastructure
	DBAddr    string
	RedisAddr string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Rate limits (requests per minute, per client; 0 disables)
	RegisterLimit int
	LoginLimit    int
	VerifyLimit   int

	// Email validation API
	ZeroBounceAPIKey  string
	ZeroBounceBaseURL string

	// Outbound mail
	EmailProvider string // "smtp" or "fake"
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	SMTPFrom      string
	SMTPInsecure  bool
}

func Load() (*Config, error) {
	// .env is a dev convenience; absence is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}

	ttl, err := getDuration("TOKEN_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.TokenTTL = ttl

	cost, err := getInt("BCRYPT_COST", 0) // 0 -> hasher default
	if err != nil {
		return nil, err
	}
	cfg.BcryptCost = cost

	// DB is required outside dev; dev falls back to the in-memory store.
	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" && cfg.Env != "dev" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	// Redis is optional everywhere; without it rate limiting is off.
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	if cfg.RegisterLimit, err = getInt("REGISTER_RATE_LIMIT", 3); err != nil {
		return nil, err
	}
	if cfg.LoginLimit, err = getInt("LOGIN_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.VerifyLimit, err = getInt("VERIFY_RATE_LIMIT", 10); err != nil {
		return nil, err
	}

	// Email validation API. Required outside dev; a dev instance without a
	// key skips remote validation via the "unknown" verdict path.
	cfg.ZeroBounceAPIKey = os.Getenv("ZEROBOUNCE_API_KEY")
	if cfg.ZeroBounceAPIKey == "" && cfg.Env != "dev" {
		return nil, fmt.Errorf("missing required env var: ZEROBOUNCE_API_KEY")
	}
	cfg.ZeroBounceBaseURL = getEnv("ZEROBOUNCE_BASE_URL", "https://api.zerobounce.net")

	cfg.EmailProvider = getEnv("EMAIL_PROVIDER", "smtp")
	switch cfg.EmailProvider {
	case "smtp":
		cfg.SMTPHost = os.Getenv("SMTP_HOST")
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("missing required env var: SMTP_HOST")
		}
		if cfg.SMTPPort, err = getInt("SMTP_PORT", 587); err != nil {
			return nil, err
		}
		cfg.SMTPUser = os.Getenv("SMTP_USER")
		cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
		cfg.SMTPFrom = getEnv("SMTP_FROM", cfg.SMTPUser)
		if cfg.SMTPFrom == "" {
			return nil, fmt.Errorf("missing required env var: SMTP_FROM")
		}
		cfg.SMTPInsecure = os.Getenv("SMTP_INSECURE") == "true"
	case "fake":
		// dev/test transport, nothing to configure
	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER: %q", cfg.EmailProvider)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}
