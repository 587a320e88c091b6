package auth

import (
	"context"
	"strings"

	"github.com/verimail/signup-service/internal/domain"
)

// Verify confirms a pending account and issues the first bearer token.
// Wrong code, unknown email and already-confirmed accounts are intentionally
// indistinguishable to the caller.
func (s *Service) Verify(ctx context.Context, email, code string) (VerifyResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	code = strings.TrimSpace(code)

	if email == "" || code == "" {
		return VerifyResult{}, domain.ErrVerificationFieldsRequired()
	}

	a, err := s.accounts.GetByEmailAndCode(ctx, email, code)
	if err != nil {
		if domain.Is(err, "account_not_found") {
			return VerifyResult{}, domain.ErrInvalidConfirmationCode()
		}
		return VerifyResult{}, err
	}

	if err := s.accounts.Confirm(ctx, a.ID); err != nil {
		return VerifyResult{}, err
	}
	a.Confirmed = true
	a.ConfirmationCode = ""

	tok, expiresIn, err := s.signEmailToken(a.Email)
	if err != nil {
		return VerifyResult{}, err
	}

	s.audit("account_confirmed", map[string]string{
		"account_id": a.ID,
		"email":      a.Email,
	})

	return VerifyResult{Account: a, Token: tok, ExpiresIn: expiresIn}, nil
}
