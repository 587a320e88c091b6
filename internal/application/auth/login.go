package auth

import (
	"context"
	"strings"

	"github.com/verimail/signup-service/internal/domain"
)

// Login authenticates a confirmed account and issues a bearer token.
// Read-only: no account state is mutated.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrLoginFieldsRequired()
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "account_not_found") {
			return LoginResult{}, domain.ErrUnknownEmail()
		}
		return LoginResult{}, err
	}

	if !a.Confirmed {
		return LoginResult{}, domain.ErrAccountNotConfirmed()
	}

	// A comparison error (including an unusable stored hash) collapses into
	// invalid credentials; it must never surface as a server error.
	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	tok, expiresIn, err := s.signEmailToken(a.Email)
	if err != nil {
		return LoginResult{}, err
	}

	s.audit("account_logged_in", map[string]string{
		"account_id": a.ID,
	})

	return LoginResult{Account: a, Token: tok, ExpiresIn: expiresIn}, nil
}
