package postgres

import (
	"database/sql"
	"time"
)

// accountRow mirrors the accounts table.
// confirmation_code is NULL once the account is confirmed.
type accountRow struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	ConfirmationCode sql.NullString
	Confirmed        bool
	CreatedAt        time.Time
}
