package postgres

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/verimail/signup-service/internal/domain"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

type SeederRepo interface {
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
}

// SeedAccounts inserts dev fixtures: one confirmed account ready for login
// and one pending account with a known confirmation code.
func SeedAccounts(ctx context.Context, repo SeederRepo, hasher SeederHasher) {
	type seedAccount struct {
		Username  string
		Email     string
		Pass      string
		Code      string
		Confirmed bool
	}

	seeds := []seedAccount{
		{Username: "ana", Email: "ana@example.com", Pass: "AnaPassword123!", Confirmed: true},
		{Username: "bruno", Email: "bruno@example.com", Pass: "BrunoPassword123!", Code: "1234"},
	}

	for _, s := range seeds {
		hash, err := hasher.Hash(s.Pass)
		if err != nil {
			log.Printf("[seed] hash failed (%s): %v", s.Email, err)
			continue
		}

		a := domain.Account{
			ID:               uuid.NewString(),
			Username:         s.Username,
			Email:            s.Email,
			PasswordHash:     hash,
			ConfirmationCode: s.Code,
			Confirmed:        s.Confirmed,
		}

		_, err = repo.Create(ctx, a)
		if err != nil {
			// ignore duplicates (restart safe)
			continue
		}
	}

	log.Println("[seed] postgres accounts seeded")
}
