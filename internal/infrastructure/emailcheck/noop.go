package emailcheck

import (
	"context"

	"github.com/verimail/signup-service/internal/application/auth"
)

// NoopChecker answers "unknown" for every address. Used in dev when no
// validation API key is configured; "unknown" never blocks registration.
type NoopChecker struct{}

func (NoopChecker) Check(ctx context.Context, email string) (auth.EmailStatus, error) {
	return auth.EmailStatusUnknown, nil
}
