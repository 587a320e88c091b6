package auth

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/verimail/signup-service/internal/domain"
)

type Service struct {
	accounts AccountRepo
	hasher   PasswordHasher
	signer   TokenSigner
	checker  EmailChecker
	sender   CodeSender

	tokenTTL time.Duration
	audit    func(action string, fields map[string]string)
}

type Config struct {
	TokenTTL time.Duration
}

func NewService(
	accounts AccountRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	checker EmailChecker,
	sender CodeSender,
	cfg Config,
) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		signer:   signer,
		checker:  checker,
		sender:   sender,
		tokenTTL: ttl,
		audit:    func(string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

type RegisterResult struct {
	Account       domain.Account
	AlreadyExists bool
}

type VerifyResult struct {
	Account   domain.Account
	Token     string
	ExpiresIn int64 // seconds
}

type LoginResult struct {
	Account   domain.Account
	Token     string
	ExpiresIn int64 // seconds
}

// signEmailToken issues the bearer token returned by verify and login.
func (s *Service) signEmailToken(email string) (string, int64, error) {
	tok, err := s.signer.SignEmailToken(email, s.tokenTTL)
	if err != nil {
		return "", 0, err
	}
	return tok, int64(s.tokenTTL.Seconds()), nil
}

// newConfirmationCode returns a uniformly random 4-digit code in [1000, 9999].
func newConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", domain.ErrRandomFailed(err)
	}
	return (&big.Int{}).Add(n, big.NewInt(1000)).String(), nil
}
