package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindAuth           ErrKind = "auth"           // 401
	KindNotFound       ErrKind = "not_found"      // 404
	KindConflict       ErrKind = "conflict"       // 409
	KindRateLimited    ErrKind = "rate_limited"   // 429
	KindDelivery       ErrKind = "delivery"       // 500 (email send failure)
	KindInfrastructure ErrKind = "infrastructure" // 503
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Meta: optional details (field, reason, etc.)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

// Register with any of username/email/password missing.
func ErrRegistrationFieldsRequired() *Error {
	return New(KindValidation, "fields_required", "Username, email, and password are required")
}

// Verify with email or confirmation code missing.
func ErrVerificationFieldsRequired() *Error {
	return New(KindValidation, "fields_required", "Email and confirmation code are required")
}

// Login with email or password missing.
func ErrLoginFieldsRequired() *Error {
	return New(KindValidation, "fields_required", "Email and password are required")
}

// The validation API reported the address as undeliverable.
func ErrEmailInvalid() *Error {
	return New(KindValidation, "email_invalid", "invalid email")
}

// Covers wrong code, unknown email and already-confirmed accounts alike;
// callers must not be able to tell them apart.
func ErrInvalidConfirmationCode() *Error {
	return New(KindValidation, "invalid_confirmation_code", "invalid confirmation code")
}

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, "missing_field", "missing required field"), map[string]string{
		"field": field,
	})
}

// ----------------------
// Auth errors (401)
// ----------------------

func ErrUnknownEmail() *Error {
	return New(KindAuth, "unknown_email", "invalid email")
}

func ErrAccountNotConfirmed() *Error {
	return New(KindAuth, "account_not_confirmed", "account not confirmed, check your email")
}

// Also covers a stored hash the comparator cannot parse; hash-format
// failures must not surface as server errors.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "invalid credentials")
}

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "invalid token")
}

func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", "token is expired")
}

// ----------------------
// Not found / conflict
// ----------------------

func ErrAccountNotFound() *Error {
	return New(KindNotFound, "account_not_found", "account not found")
}

func ErrEmailAlreadyExists() *Error {
	return New(KindConflict, "email_already_exists", "account already exists")
}

// ----------------------
// Rate limit (429)
// ----------------------

func ErrRateLimited(scope string) *Error {
	return WithMeta(New(KindRateLimited, "rate_limited", "too many requests"), map[string]string{
		"scope": scope,
	})
}

// ----------------------
// Delivery / infrastructure / internal (5xx)
// ----------------------

func ErrDeliveryFailed(cause error) *Error {
	return Wrap(KindDelivery, "delivery_failed", "failed to send confirmation email", cause)
}

func ErrRegistrationFailed(cause error) *Error {
	return Wrap(KindInternal, "registration_failed", "failed to register user", cause)
}

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrRandomFailed(cause error) *Error {
	return Wrap(KindInternal, "random_failed", "random generation failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
