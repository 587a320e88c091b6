package email

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestFakeSender_RecordsDeliveries(t *testing.T) {
	s := NewFakeSender(zerolog.Nop())

	if err := s.SendConfirmationCode(context.Background(), "ana@b.com", "1234"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := s.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(sent))
	}
	if sent[0].To != "ana@b.com" || sent[0].Code != "1234" {
		t.Fatalf("unexpected delivery: %+v", sent[0])
	}
}

func TestFakeSender_FailMode(t *testing.T) {
	t.Setenv("FAKE_FAIL_MODE", "fail")

	s := NewFakeSender(zerolog.Nop())
	if err := s.SendConfirmationCode(context.Background(), "ana@b.com", "1234"); err == nil {
		t.Fatalf("expected failure in fail mode")
	}
	if len(s.Sent()) != 0 {
		t.Fatalf("failed send must not be recorded")
	}
}
