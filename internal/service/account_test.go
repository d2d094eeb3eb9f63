package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sakif/qna-service/internal/apperror"
	"github.com/sakif/qna-service/internal/auth"
	"github.com/sakif/qna-service/internal/model"
)

// fakeAccountRepo is an in-memory AccountRepository. A hand-written fake
// keeps the tests readable — no mock framework indirection.
type fakeAccountRepo struct {
	byEmail map[string]*model.Account
	nextID  int
	// set to simulate a storage failure
	createErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byEmail: make(map[string]*model.Account), nextID: 1}
}

func (f *fakeAccountRepo) CreateAccount(ctx context.Context, account *model.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[account.Email]; ok {
		return apperror.EmailExists()
	}
	account.ID = f.nextID
	f.nextID++
	copied := *account
	f.byEmail[account.Email] = &copied
	return nil
}

func (f *fakeAccountRepo) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	account, ok := f.byEmail[email]
	if !ok {
		return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "account not found"}
	}
	copied := *account
	return &copied, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAccountService(t *testing.T) (*AccountService, *fakeAccountRepo, *auth.TokenService) {
	t.Helper()
	repo := newFakeAccountRepo()
	tokens, err := auth.NewTokenService([]byte("test-key-must-be-32-bytes-long!!"), time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	svc := NewAccountService(repo, auth.NewPasswordServiceForTest(), tokens, testLogger())
	return svc, repo, tokens
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, repo, _ := newTestAccountService(t)

	account, err := svc.Register(context.Background(), "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if account.ID == 0 {
		t.Error("Register() did not assign an ID")
	}

	stored := repo.byEmail["a@x.com"]
	if stored.PasswordHash == "" || stored.PasswordHash == "secret123" {
		t.Errorf("stored hash = %q — plaintext must never be persisted", stored.PasswordHash)
	}
}

func TestRegister_EmailExists(t *testing.T) {
	svc, _, _ := newTestAccountService(t)

	if _, err := svc.Register(context.Background(), "a@x.com", "secret123"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	_, err := svc.Register(context.Background(), "a@x.com", "different")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("second Register() error = %v, want ErrConflict", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _, tokens := newTestAccountService(t)

	account, err := svc.Register(context.Background(), "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, err := svc.Login(context.Background(), "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// The token must verify and carry the registered account's identity.
	gotID, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify() on issued token: %v", err)
	}
	if gotID != account.ID {
		t.Errorf("token accountID = %d, want %d", gotID, account.ID)
	}
}

// Unknown email and wrong password must be indistinguishable: same error
// kind, same client-facing message.
func TestLogin_FailuresIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAccountService(t)

	if _, err := svc.Register(context.Background(), "a@x.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, errUnknown := svc.Login(context.Background(), "nobody@x.com", "secret123")
	_, errWrongPw := svc.Login(context.Background(), "a@x.com", "wrong-password")

	for name, err := range map[string]error{"unknown email": errUnknown, "wrong password": errWrongPw} {
		if !errors.Is(err, apperror.ErrUnauthorized) {
			t.Errorf("%s: error = %v, want ErrUnauthorized", name, err)
		}
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("messages differ: %q vs %q — leaks which half failed", errUnknown.Error(), errWrongPw.Error())
	}
}

func TestLogin_MostRecentRegistrationWins(t *testing.T) {
	svc, repo, _ := newTestAccountService(t)

	if _, err := svc.Register(context.Background(), "a@x.com", "first-password"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Simulate an out-of-scope password change by re-hashing directly.
	newHash, err := auth.NewPasswordServiceForTest().Hash("second-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	repo.byEmail["a@x.com"].PasswordHash = newHash

	if _, err := svc.Login(context.Background(), "a@x.com", "first-password"); err == nil {
		t.Error("Login() with stale password should fail")
	}
	if _, err := svc.Login(context.Background(), "a@x.com", "second-password"); err != nil {
		t.Errorf("Login() with current password: %v", err)
	}
}
