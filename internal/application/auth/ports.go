package auth

import (
	"context"
	"time"

	"github.com/verimail/signup-service/internal/domain"
)

/*
AccountRepo
-----------
Persistence port for accounts.
Only describes WHAT the workflow needs, not HOW it's stored.
*/
type AccountRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.Account, error)

	// GetByEmailAndCode matches exactly this email AND this pending code.
	// A confirmed account has no code and therefore never matches.
	GetByEmailAndCode(ctx context.Context, email, code string) (domain.Account, error)

	Create(ctx context.Context, a domain.Account) (domain.Account, error)

	// Confirm sets confirmed=true and clears the confirmation code.
	Confirm(ctx context.Context, id string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies the bearer token carrying the account email.
*/
type TokenClaims struct {
	Email string
	Exp   time.Time
}

type TokenSigner interface {
	SignEmailToken(email string, ttl time.Duration) (string, error)
	VerifyEmailToken(token string) (TokenClaims, error)
}

/*
EmailChecker
------------
Remote reputation/validation API. Untrusted and potentially slow;
only an explicit "invalid" verdict blocks registration.
*/
type EmailStatus string

const (
	EmailStatusValid   EmailStatus = "valid"
	EmailStatusInvalid EmailStatus = "invalid"
	EmailStatusUnknown EmailStatus = "unknown"
)

type EmailChecker interface {
	Check(ctx context.Context, email string) (EmailStatus, error)
}

/*
CodeSender
----------
Delivers the one-time confirmation code to the registrant's mailbox.
Register persists nothing unless this succeeds.
*/
type CodeSender interface {
	SendConfirmationCode(ctx context.Context, toEmail, code string) error
}
