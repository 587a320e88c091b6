package domain

import "time"

// Account is the single persisted identity of the service.
//
// ConfirmationCode is non-empty only while Confirmed is false; Verify clears
// it and flips Confirmed exactly once. There is no reversion path.
type Account struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	ConfirmationCode string
	Confirmed        bool
	CreatedAt        time.Time
}
