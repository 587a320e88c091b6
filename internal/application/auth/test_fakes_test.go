package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/verimail/signup-service/internal/domain"
)

/*
Shared audit capture
*/

type auditEntry struct {
	action string
	fields map[string]string
}

/*
Fakes for ports
*/

type fakeAccountRepo struct {
	mu sync.Mutex

	byID    map[string]domain.Account
	byEmail map[string]domain.Account

	// injected errors (if set, method returns error)
	getByEmailErr error
	getByCodeErr  error
	createErr     error
	confirmErr    error

	created   []domain.Account
	confirmed []string
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byID:    map[string]domain.Account{},
		byEmail: map[string]domain.Account{},
	}
}

func (f *fakeAccountRepo) add(a domain.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[a.ID] = a
	f.byEmail[a.Email] = a
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.Account{}, f.getByEmailErr
	}
	a, ok := f.byEmail[email]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (f *fakeAccountRepo) GetByEmailAndCode(ctx context.Context, email, code string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByCodeErr != nil {
		return domain.Account{}, f.getByCodeErr
	}
	a, ok := f.byEmail[email]
	if !ok || a.ConfirmationCode == "" || a.ConfirmationCode != code {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (f *fakeAccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.Account{}, f.createErr
	}
	if _, exists := f.byEmail[a.Email]; exists {
		return domain.Account{}, domain.ErrEmailAlreadyExists()
	}
	f.byID[a.ID] = a
	f.byEmail[a.Email] = a
	f.created = append(f.created, a)
	return a, nil
}

func (f *fakeAccountRepo) Confirm(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.confirmErr != nil {
		return f.confirmErr
	}
	a, ok := f.byID[id]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	a.Confirmed = true
	a.ConfirmationCode = ""
	f.byID[id] = a
	f.byEmail[a.Email] = a
	f.confirmed = append(f.confirmed, id)
	return nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type fakeSigner struct {
	signErr error
	signed  []string // emails signed
}

func (f *fakeSigner) SignEmailToken(email string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.signed = append(f.signed, email)
	return "tok:" + email, nil
}

func (f *fakeSigner) VerifyEmailToken(token string) (TokenClaims, error) {
	return TokenClaims{}, domain.ErrTokenInvalid()
}

type fakeChecker struct {
	status   EmailStatus
	checkErr error
	checked  []string
}

func (f *fakeChecker) Check(ctx context.Context, email string) (EmailStatus, error) {
	f.checked = append(f.checked, email)
	if f.checkErr != nil {
		return "", f.checkErr
	}
	if f.status == "" {
		return EmailStatusValid, nil
	}
	return f.status, nil
}

type sentMail struct {
	to   string
	code string
}

type fakeCodeSender struct {
	sendErr error
	sent    []sentMail
}

func (f *fakeCodeSender) SendConfirmationCode(ctx context.Context, to, code string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{to: to, code: code})
	return nil
}

/*
Wiring helper
*/

func newSvcForTest(t *testing.T) (*Service, *fakeAccountRepo, *fakeHasher, *fakeSigner, *fakeChecker, *fakeCodeSender, *[]auditEntry) {
	t.Helper()

	accounts := newFakeAccountRepo()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	checker := &fakeChecker{}
	sender := &fakeCodeSender{}

	svc := NewService(accounts, hasher, signer, checker, sender, Config{TokenTTL: time.Hour})

	var audits []auditEntry
	svc = svc.WithAudit(func(action string, fields map[string]string) {
		audits = append(audits, auditEntry{action: action, fields: fields})
	})

	return svc, accounts, hasher, signer, checker, sender, &audits
}
