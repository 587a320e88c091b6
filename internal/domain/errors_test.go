package domain

import (
	"errors"
	"testing"
)

func TestError_ErrorString_NoCause(t *testing.T) {
	err := New(KindAuth, "invalid_credentials", "invalid credentials")

	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty error string")
	}
}

func TestError_ErrorString_WithCause(t *testing.T) {
	root := errors.New("root cause")
	err := Wrap(KindInternal, "hash_failed", "hash failed", root)

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}
}

func TestError_Unwrap(t *testing.T) {
	root := errors.New("root")
	err := Wrap(KindInternal, "internal_error", "internal", root)

	if errors.Unwrap(err) != root {
		t.Fatalf("unwrap did not return cause")
	}
}

func TestIs_MatchesCode(t *testing.T) {
	err := ErrInvalidCredentials()

	if !Is(err, "invalid_credentials") {
		t.Fatalf("expected code match")
	}
	if Is(err, "something_else") {
		t.Fatalf("unexpected code match")
	}
}

func TestIs_NonDomainError(t *testing.T) {
	err := errors.New("plain error")

	if Is(err, "invalid_credentials") {
		t.Fatalf("should not match non-domain error")
	}
}

func TestFieldsRequiredMessages(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
	}{
		{ErrRegistrationFieldsRequired(), "Username, email, and password are required"},
		{ErrVerificationFieldsRequired(), "Email and confirmation code are required"},
		{ErrLoginFieldsRequired(), "Email and password are required"},
	}
	for _, c := range cases {
		if c.err.Kind != KindValidation {
			t.Fatalf("expected validation kind, got %s", c.err.Kind)
		}
		if c.err.Message != c.want {
			t.Fatalf("unexpected message: %q", c.err.Message)
		}
	}
}

func TestAuthErrors(t *testing.T) {
	err := ErrAccountNotConfirmed()
	if err.Kind != KindAuth || err.Code != "account_not_confirmed" {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err.Message != "account not confirmed, check your email" {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

func TestDeliveryError_WrapsCause(t *testing.T) {
	root := errors.New("smtp down")
	err := ErrDeliveryFailed(root)

	if err.Kind != KindDelivery {
		t.Fatalf("expected delivery kind, got %s", err.Kind)
	}
	if err.Message != "failed to send confirmation email" {
		t.Fatalf("unexpected message: %q", err.Message)
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected cause to be wrapped")
	}
}
