package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/verimail/signup-service/internal/domain"
)

type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *AccountRepo) scanAccountRow(row *sql.Row) (accountRow, error) {
	var ar accountRow
	err := row.Scan(
		&ar.ID,
		&ar.Username,
		&ar.Email,
		&ar.PasswordHash,
		&ar.ConfirmationCode,
		&ar.Confirmed,
		&ar.CreatedAt,
	)
	return ar, err
}

func toDomainAccount(ar accountRow) domain.Account {
	return domain.Account{
		ID:               ar.ID,
		Username:         ar.Username,
		Email:            ar.Email,
		PasswordHash:     ar.PasswordHash,
		ConfirmationCode: ar.ConfirmationCode.String,
		Confirmed:        ar.Confirmed,
		CreatedAt:        ar.CreatedAt,
	}
}

// ---------- auth.AccountRepo ----------

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT id, username, email, password_hash, confirmation_code, confirmed, created_at
FROM accounts
WHERE email = $1
LIMIT 1;
`
	ar, err := r.scanAccountRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

func (r *AccountRepo) GetByEmailAndCode(ctx context.Context, email, code string) (domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}
	if code == "" {
		return domain.Account{}, domain.ErrMissingField("confirmation_code")
	}

	// A confirmed account carries a NULL code and never matches here.
	const q = `
SELECT id, username, email, password_hash, confirmation_code, confirmed, created_at
FROM accounts
WHERE email = $1 AND confirmation_code = $2
LIMIT 1;
`
	ar, err := r.scanAccountRow(r.db.QueryRowContext(ctx, q, email, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

func (r *AccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	a.Email = normalizeEmail(a.Email)
	if a.ID == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}
	if a.Email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}
	if a.PasswordHash == "" {
		return domain.Account{}, domain.ErrMissingField("password_hash")
	}

	const q = `
INSERT INTO accounts (id, username, email, password_hash, confirmation_code, confirmed)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id, username, email, password_hash, confirmation_code, confirmed, created_at;
`

	code := sql.NullString{String: a.ConfirmationCode, Valid: a.ConfirmationCode != ""}

	var ar accountRow
	err := r.db.QueryRowContext(ctx, q,
		a.ID, a.Username, a.Email, a.PasswordHash, code, a.Confirmed,
	).Scan(
		&ar.ID,
		&ar.Username,
		&ar.Email,
		&ar.PasswordHash,
		&ar.ConfirmationCode,
		&ar.Confirmed,
		&ar.CreatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return domain.Account{}, domain.ErrEmailAlreadyExists()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

func (r *AccountRepo) Confirm(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	const q = `
UPDATE accounts
SET confirmed = TRUE,
    confirmation_code = NULL
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAccountNotFound()
	}
	return nil
}
