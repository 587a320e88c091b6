package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/verimail/signup-service/internal/domain"
)

// Register runs the sequential registration pipeline:
// existence check -> remote email validation -> code delivery -> hash & persist.
// Nothing is persisted unless the confirmation email was handed to the
// transport: no account without a deliverable code.
func (s *Service) Register(ctx context.Context, username, email, password string) (RegisterResult, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return RegisterResult{}, domain.ErrRegistrationFieldsRequired()
	}

	if existing, err := s.accounts.GetByEmail(ctx, email); err == nil {
		// Idempotent duplicate signal, not an error.
		return RegisterResult{Account: existing, AlreadyExists: true}, nil
	} else if !domain.Is(err, "account_not_found") {
		return RegisterResult{}, domain.ErrRegistrationFailed(err)
	}

	// Fail closed: an unreachable or misbehaving validator aborts registration.
	status, err := s.checker.Check(ctx, email)
	if err != nil {
		return RegisterResult{}, domain.ErrRegistrationFailed(err)
	}
	if status == EmailStatusInvalid {
		return RegisterResult{}, domain.ErrEmailInvalid()
	}

	code, err := newConfirmationCode()
	if err != nil {
		return RegisterResult{}, domain.ErrRegistrationFailed(err)
	}

	if err := s.sender.SendConfirmationCode(ctx, email, code); err != nil {
		return RegisterResult{}, domain.ErrDeliveryFailed(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return RegisterResult{}, domain.ErrRegistrationFailed(err)
	}

	created, err := s.accounts.Create(ctx, domain.Account{
		ID:               uuid.NewString(),
		Username:         username,
		Email:            email,
		PasswordHash:     hash,
		ConfirmationCode: code,
		Confirmed:        false,
	})
	if err != nil {
		if domain.Is(err, "email_already_exists") {
			// Lost a concurrent duplicate race; the unique index caught it.
			return RegisterResult{AlreadyExists: true}, nil
		}
		return RegisterResult{}, domain.ErrRegistrationFailed(err)
	}

	s.audit("account_registered", map[string]string{
		"account_id": created.ID,
		"email":      created.Email,
	})

	return RegisterResult{Account: created}, nil
}
