package dto

import (
	"strings"

	"github.com/verimail/signup-service/internal/domain"
)

// RegisterRequest is the payload for POST /auth/v1/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r RegisterRequest) Validate() error {
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return domain.ErrRegistrationFieldsRequired()
	}
	return nil
}

// VerifyRequest is the payload for POST /auth/v1/verify.
type VerifyRequest struct {
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmationCode"`
}

func (r *VerifyRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.ConfirmationCode = strings.TrimSpace(r.ConfirmationCode)
}

func (r VerifyRequest) Validate() error {
	if r.Email == "" || r.ConfirmationCode == "" {
		return domain.ErrVerificationFieldsRequired()
	}
	return nil
}

// LoginRequest is the payload for POST /auth/v1/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return domain.ErrLoginFieldsRequired()
	}
	return nil
}
