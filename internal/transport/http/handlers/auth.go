package handlers

import (
	"errors"
	"net/http"

	"github.com/verimail/signup-service/internal/application/auth"
	"github.com/verimail/signup-service/internal/domain"
	"github.com/verimail/signup-service/internal/logger"
	"github.com/verimail/signup-service/internal/metrics"
	"github.com/verimail/signup-service/internal/transport/http/dto"
	"github.com/verimail/signup-service/internal/transport/http/response"
)

const (
	msgCodeSent      = "confirmation code sent by email"
	msgAccountExists = "account already exists"
	msgVerified      = "registration completed successfully"
	msgLoggedIn      = "login successful"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /auth/v1/register.
//
// A duplicate email is a 200 with an exists flag, not an error; clients
// poll this endpoint to decide whether to show the login form instead.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		metrics.RecordRegistration("error")
		response.Error(w, r, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		metrics.RecordRegistration("error")
		response.Error(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		metrics.RecordRegistration(registrationOutcome(err))
		response.Error(w, r, err)
		return
	}
	if res.AlreadyExists {
		metrics.RecordRegistration("exists")
		response.JSON(w, http.StatusOK, dto.RegisterExistsResponse{Exists: true, Message: msgAccountExists})
		return
	}

	metrics.RecordRegistration("created")
	l := logger.WithCtx(r.Context())
	l.Info().Str("email", req.Email).Msg("account registered")
	response.JSON(w, http.StatusCreated, dto.RegisterResponse{Message: msgCodeSent})
}

// Verify handles POST /auth/v1/verify. The bearer token travels in the
// Authorization response header, the body is a plain-text confirmation.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		response.Error(w, r, err)
		return
	}

	res, err := h.svc.Verify(r.Context(), req.Email, req.ConfirmationCode)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	l := logger.WithCtx(r.Context())
	l.Info().Str("email", req.Email).Msg("account confirmed")
	w.Header().Set("Authorization", "Bearer "+res.Token)
	response.Text(w, http.StatusOK, msgVerified)
}

// Login handles POST /auth/v1/login. Failures are plain text, matching
// the success body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.TextError(w, r, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		response.TextError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.TextError(w, r, err)
		return
	}

	l := logger.WithCtx(r.Context())
	l.Info().Str("email", req.Email).Msg("account logged in")
	w.Header().Set("Authorization", "Bearer "+res.Token)
	response.Text(w, http.StatusOK, msgLoggedIn)
}

func registrationOutcome(err error) string {
	switch {
	case errorCode(err) == "email_invalid":
		return "invalid_email"
	case errorCode(err) == "delivery_failed":
		return "delivery_failed"
	default:
		return "error"
	}
}

func errorCode(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
