package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"finledger-go/internal/config"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]User)}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			result := user
			return &result, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, userID string) (*User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	result := user
	return &result, nil
}

func (r *fakeUserRepo) CountUsersByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Email == email {
			count++
		}
	}
	return count, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, config.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo)

	user, token, err := service.Register(context.Background(), RegisterInput{
		Email:    " Alice@Example.com ",
		Password: "hunter22",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email = %q", user.Email)
	}
	if token == "" {
		t.Fatal("no token issued")
	}
	if strings.Contains(string(user.PasswordHash), "hunter22") {
		t.Fatal("password stored in the clear")
	}

	loggedIn, loginToken, err := service.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID || loginToken == "" {
		t.Fatalf("login user = %s", loggedIn.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	service := newTestService(newFakeUserRepo())

	_, _, err := service.Register(context.Background(), RegisterInput{Email: "not-an-email", Password: "hunter22"})
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("err = %v, want ErrInvalidEmail", err)
	}

	_, _, err = service.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "short"})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("err = %v, want ErrWeakPassword", err)
	}
}

func TestRegisterEmailTaken(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo)

	if _, _, err := service.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := service.Register(context.Background(), RegisterInput{Email: "A@Example.com", Password: "hunter22"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo)

	if _, _, err := service.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := service.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "wrong-password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}

	// Unknown email yields the same error as a wrong password.
	_, _, err = service.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "hunter22"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo)

	user, token, err := service.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	subject, err := service.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("subject = %s, want %s", subject, user.ID)
	}

	if _, err := service.VerifyToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage token err = %v, want ErrInvalidToken", err)
	}

	other := newTestService(repo)
	other.secret = []byte("different-secret")
	if _, err := other.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo)
	service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	_, token, err := service.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	verifier := newTestService(repo)
	if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token err = %v, want ErrInvalidToken", err)
	}
}
