package app

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"blogpress/internal/model"
	"blogpress/internal/pkg/jwtutil"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewAuthService(users, "jwt-secret", time.Hour)

	result, err := svc.Register(RegisterInput{Username: "alice", Email: "Alice@Example.com", Password: "some-password"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.User.Email != "alice@example.com" {
		t.Errorf("stored email = %q, want lowercased", result.User.Email)
	}
	if result.User.PasswordHash == "some-password" {
		t.Fatal("password stored in plain text")
	}
	claims, err := jwtutil.ParseToken("jwt-secret", result.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != result.User.ID || claims.Username != "alice" || claims.Admin {
		t.Errorf("claims = %+v", claims)
	}

	login, err := svc.Login(LoginInput{Email: "alice@example.com", Password: "some-password"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != result.User.ID {
		t.Errorf("login user id = %d, want %d", login.User.ID, result.User.ID)
	}

	if _, err := svc.Login(LoginInput{Email: "alice@example.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("login with wrong password = %v, want ErrInvalidCredential", err)
	}
	if _, err := svc.Login(LoginInput{Email: "ghost@example.com", Password: "some-password"}); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("login with unknown email = %v, want ErrInvalidCredential", err)
	}
}

func TestAuthService_RegisterRejectsDuplicates(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewAuthService(users, "jwt-secret", time.Hour)

	if _, err := svc.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "some-password"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Register(RegisterInput{Username: "alice", Email: "other@example.com", Password: "some-password"}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("duplicate username = %v, want ErrUsernameExists", err)
	}
	if _, err := svc.Register(RegisterInput{Username: "other", Email: "alice@example.com", Password: "some-password"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email = %v, want ErrEmailExists", err)
	}
}

func TestAuthService_RegisterDuplicateKeyRace(t *testing.T) {
	t.Parallel()

	// A registration that passes both pre-checks can still lose the insert
	// race; the unique index failure must come back as the right conflict.
	users := newFakeUserStore()
	svc := NewAuthService(users, "jwt-secret", time.Hour)

	// The racer commits the same username between the pre-checks and the
	// insert, so only the index failure reveals the conflict.
	users.createHook = func(user *model.User) error {
		users.users[99] = &model.User{ID: 99, Username: user.Username, Email: "racer@example.com"}
		return fmt.Errorf("create user failed: %w", gorm.ErrDuplicatedKey)
	}
	if _, err := svc.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "some-password"}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("racing username register = %v, want ErrUsernameExists", err)
	}

	// Same race on the email index: the username stays free, so the
	// conflict can only be the address.
	users.createHook = func(user *model.User) error {
		users.users[100] = &model.User{ID: 100, Username: "racer", Email: user.Email}
		return fmt.Errorf("create user failed: %w", gorm.ErrDuplicatedKey)
	}
	if _, err := svc.Register(RegisterInput{Username: "bob", Email: "bob@example.com", Password: "some-password"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("racing email register = %v, want ErrEmailExists", err)
	}
}

func TestAuthService_UpdateAccountDuplicateKeyRace(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewAuthService(users, "jwt-secret", time.Hour)

	alice, err := svc.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "some-password"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	users.updateErr = fmt.Errorf("update user account failed: %w", gorm.ErrDuplicatedKey)

	// Keeping her own username means only the email index can collide.
	if _, err := svc.UpdateAccount(alice.User.ID, UpdateAccountInput{Username: "alice", Email: "taken@example.com"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("racing email update = %v, want ErrEmailExists", err)
	}
}

func TestAuthService_RegisterRejectsBadInput(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewAuthService(users, "jwt-secret", time.Hour)

	cases := []RegisterInput{
		{Username: "", Email: "a@example.com", Password: "some-password"},
		{Username: "alice", Email: "", Password: "some-password"},
		{Username: "alice", Email: "a@example.com", Password: ""},
		{Username: "alice", Email: "a@example.com", Password: "short"},
	}
	for _, input := range cases {
		if _, err := svc.Register(input); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Register(%+v) = %v, want ErrInvalidInput", input, err)
		}
	}
}

func TestAuthService_UpdateAccount(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewAuthService(users, "jwt-secret", time.Hour)

	alice, err := svc.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "some-password"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(RegisterInput{Username: "bob", Email: "bob@example.com", Password: "some-password"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	updated, err := svc.UpdateAccount(alice.User.ID, UpdateAccountInput{Username: "alice2", Email: "alice2@example.com"})
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	if updated.Username != "alice2" || updated.Email != "alice2@example.com" {
		t.Errorf("updated user = %+v", updated)
	}

	if _, err := svc.UpdateAccount(alice.User.ID, UpdateAccountInput{Username: "bob", Email: "alice2@example.com"}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("take bob's username = %v, want ErrUsernameExists", err)
	}
	if _, err := svc.UpdateAccount(alice.User.ID, UpdateAccountInput{Username: "alice2", Email: "bob@example.com"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("take bob's email = %v, want ErrEmailExists", err)
	}

	// Keeping your own name and address is not a conflict.
	if _, err := svc.UpdateAccount(alice.User.ID, UpdateAccountInput{Username: "alice2", Email: "alice2@example.com"}); err != nil {
		t.Fatalf("no-op update: %v", err)
	}

	if _, err := svc.UpdateAccount(999, UpdateAccountInput{Username: "x", Email: "x@example.com"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("update missing user = %v, want ErrUserNotFound", err)
	}
}
