package email

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// FakeSender is a development/testing sender. It records every send and can
// simulate delivery failure via env var.
//
// FAKE_FAIL_MODE:
// - "none" (default): always succeed
// - "fail": return an error (register must not persist an account)
type FakeSender struct {
	lg zerolog.Logger

	mu   sync.Mutex
	sent []FakeDelivery
}

type FakeDelivery struct {
	To   string
	Code string
}

func NewFakeSender(lg zerolog.Logger) *FakeSender {
	return &FakeSender{
		lg: lg.With().Str("component", "fake_sender").Logger(),
	}
}

func (s *FakeSender) SendConfirmationCode(ctx context.Context, toEmail, code string) error {
	mode := strings.TrimSpace(strings.ToLower(os.Getenv("FAKE_FAIL_MODE")))
	if mode == "fail" {
		return errors.New("fake delivery failure")
	}

	s.lg.Info().
		Str("to", toEmail).
		Str("code", code).
		Msg("FAKE send confirmation code")

	s.mu.Lock()
	s.sent = append(s.sent, FakeDelivery{To: toEmail, Code: code})
	s.mu.Unlock()
	return nil
}

// Sent returns a copy of everything delivered so far.
func (s *FakeSender) Sent() []FakeDelivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FakeDelivery, len(s.sent))
	copy(out, s.sent)
	return out
}
