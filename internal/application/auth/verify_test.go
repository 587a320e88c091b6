package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/verimail/signup-service/internal/domain"
)

func TestVerify_MissingFields_FixedMessage(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _, _ := newSvcForTest(t)

	for _, c := range []struct{ email, code string }{
		{"", "1234"},
		{"ana@b.com", ""},
		{"", ""},
	} {
		_, err := svc.Verify(context.Background(), c.email, c.code)
		requireErrCode(t, err, "fields_required")
	}
}

func TestVerify_WrongCode_InvalidCode(t *testing.T) {
	t.Parallel()

	svc, accounts, _, _, _, _, _ := newSvcForTest(t)
	accounts.add(domain.Account{ID: "a1", Email: "ana@b.com", ConfirmationCode: "1234"})

	_, err := svc.Verify(context.Background(), "ana@b.com", "9999")
	requireErrCode(t, err, "invalid_confirmation_code")
}

func TestVerify_UnknownEmail_SameInvalidCode(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _, _ := newSvcForTest(t)

	// Indistinguishable from a wrong code.
	_, err := svc.Verify(context.Background(), "nobody@b.com", "1234")
	requireErrCode(t, err, "invalid_confirmation_code")
}

func TestVerify_AlreadyConfirmed_SameInvalidCode(t *testing.T) {
	t.Parallel()

	svc, accounts, _, _, _, _, _ := newSvcForTest(t)
	accounts.add(domain.Account{ID: "a1", Email: "ana@b.com", Confirmed: true})

	_, err := svc.Verify(context.Background(), "ana@b.com", "1234")
	requireErrCode(t, err, "invalid_confirmation_code")
}

func TestVerify_Success_ConfirmsClearsCodeAndIssuesToken(t *testing.T) {
	t.Parallel()

	svc, accounts, _, signer, _, _, audits := newSvcForTest(t)
	accounts.add(domain.Account{ID: "a1", Email: "ana@b.com", ConfirmationCode: "1234"})

	res, err := svc.Verify(context.Background(), " Ana@B.com ", "1234")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected bearer token")
	}
	if res.ExpiresIn != 3600 {
		t.Fatalf("expected 1h expiry, got %d", res.ExpiresIn)
	}
	if !res.Account.Confirmed || res.Account.ConfirmationCode != "" {
		t.Fatalf("expected confirmed account with cleared code, got %+v", res.Account)
	}

	stored := accounts.byID["a1"]
	if !stored.Confirmed || stored.ConfirmationCode != "" {
		t.Fatalf("expected persisted confirmation, got %+v", stored)
	}

	if len(signer.signed) != 1 || signer.signed[0] != "ana@b.com" {
		t.Fatalf("token must carry the account email, got %+v", signer.signed)
	}
	if len(*audits) != 1 || (*audits)[0].action != "account_confirmed" {
		t.Fatalf("expected confirmation audit, got %+v", *audits)
	}
}

func TestVerify_ConfirmError_Propagates(t *testing.T) {
	t.Parallel()

	svc, accounts, _, _, _, _, _ := newSvcForTest(t)
	accounts.add(domain.Account{ID: "a1", Email: "ana@b.com", ConfirmationCode: "1234"})
	accounts.confirmErr = domain.ErrDBUnavailable(errors.New("down"))

	_, err := svc.Verify(context.Background(), "ana@b.com", "1234")
	requireErrCode(t, err, "db_unavailable")
}

func TestVerify_SignError_Propagates(t *testing.T) {
	t.Parallel()

	svc, accounts, _, signer, _, _, _ := newSvcForTest(t)
	accounts.add(domain.Account{ID: "a1", Email: "ana@b.com", ConfirmationCode: "1234"})
	signer.signErr = domain.ErrTokenSignFailed(errors.New("boom"))

	_, err := svc.Verify(context.Background(), "ana@b.com", "1234")
	requireErrCode(t, err, "token_sign_failed")
}
