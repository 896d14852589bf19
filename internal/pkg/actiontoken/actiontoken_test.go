package actiontoken

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndRedeem_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec("super-secret")
	claim := map[string]string{"user_id": "42"}

	token, err := codec.Issue(claim)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := codec.Redeem(token, time.Hour)
	if err != nil {
		t.Fatalf("Redeem error: %v", err)
	}
	if got["user_id"] != "42" {
		t.Fatalf("claim mismatch: got %q want %q", got["user_id"], "42")
	}
}

func TestRedeem_Expired(t *testing.T) {
	t.Parallel()

	codec := NewCodec("secret")
	token, err := codec.Issue(map[string]string{"email": "bob@x.com"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Move the codec clock past the window instead of sleeping.
	codec.now = func() time.Time { return time.Now().Add(10 * time.Minute) }

	_, err = codec.Redeem(token, 3*time.Minute)
	if err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestRedeem_WithinWindow(t *testing.T) {
	t.Parallel()

	codec := NewCodec("secret")
	token, err := codec.Issue(map[string]string{"email": "bob@x.com"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	codec.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if _, err := codec.Redeem(token, 3*time.Minute); err != nil {
		t.Fatalf("expected success inside the window, got %v", err)
	}
}

func TestRedeem_ImmediatelyAfterIssue(t *testing.T) {
	t.Parallel()

	// IssuedAt is serialized at whole seconds; a sub-second clock offset
	// between issue and redeem must not count against the window, even a
	// zero-length one.
	codec := NewCodec("secret")
	issuedAt := time.Date(2026, 8, 31, 12, 0, 0, 900*int(time.Millisecond), time.UTC)
	codec.now = func() time.Time { return issuedAt }

	token, err := codec.Issue(map[string]string{"email": "bob@x.com"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	for _, maxAge := range []time.Duration{0, 500 * time.Millisecond, time.Second} {
		if _, err := codec.Redeem(token, maxAge); err != nil {
			t.Fatalf("Redeem with maxAge %v right after issue: %v", maxAge, err)
		}
	}
}

func TestRedeem_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewCodec("right-secret").Issue(map[string]string{"user_id": "1"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewCodec("wrong-secret").Redeem(token, time.Hour)
	if err != ErrInvalid {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestRedeem_TamperedToken(t *testing.T) {
	t.Parallel()

	codec := NewCodec("secret")
	token, err := codec.Issue(map[string]string{"user_id": "1"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip one character in the payload segment.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = codec.Redeem(tampered, time.Hour)
	if err != ErrInvalid {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestRedeem_Garbage(t *testing.T) {
	t.Parallel()

	_, err := NewCodec("secret").Redeem("not-a-token", time.Hour)
	if err != ErrInvalid {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestRedeem_MissingIssuedAt(t *testing.T) {
	t.Parallel()

	secret := "secret"
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"data": map[string]string{"user_id": "1"},
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	_, err = NewCodec(secret).Redeem(raw, time.Hour)
	if err != ErrInvalid {
		t.Fatalf("expected ErrInvalid for token without issuance time, got %v", err)
	}
}
