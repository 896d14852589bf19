package app

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"blogpress/internal/mail"
)

var (
	ErrNoSuchAccount = errors.New("no account with that email")
	// ErrInvalidOrExpiredToken deliberately covers both a bad signature and
	// an out-of-window token, so callers cannot probe which one it was.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
)

// TokenCodec issues and redeems the signed claims carried in emailed links.
type TokenCodec interface {
	Issue(claim map[string]string) (string, error)
	Redeem(token string, maxAge time.Duration) (map[string]string, error)
}

// MailPublisher enqueues a message for async delivery.
type MailPublisher interface {
	Publish(ctx context.Context, msg mail.Message) error
}

type PasswordResetService struct {
	users     UserStore
	codec     TokenCodec
	publisher MailPublisher
	baseURL   string
	maxAge    time.Duration
}

func NewPasswordResetService(users UserStore, codec TokenCodec, publisher MailPublisher, baseURL string, maxAge time.Duration) *PasswordResetService {
	return &PasswordResetService{
		users:     users,
		codec:     codec,
		publisher: publisher,
		baseURL:   baseURL,
		maxAge:    maxAge,
	}
}

// RequestReset issues a reset token for the account behind email and
// enqueues the link. A failed enqueue does not fail the request: the token
// is already minted and the user can simply ask again.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ErrInvalidInput
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNoSuchAccount
	}

	token, err := s.codec.Issue(map[string]string{"user_id": strconv.FormatUint(uint64(user.ID), 10)})
	if err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, mail.PasswordResetMessage(s.baseURL, user.Email, token)); err != nil {
		log.Printf("enqueue password reset mail for %s failed: %v", user.Email, err)
	}
	return nil
}

// RedeemReset verifies the token and stores a new password hash. A token
// that decodes to a user deleted since issuance counts as invalid. Within
// the expiry window the same token can be redeemed again; expiry is the
// only replay bound for this flow.
func (s *PasswordResetService) RedeemReset(ctx context.Context, token, newPassword string) error {
	newPassword = strings.TrimSpace(newPassword)
	if len(newPassword) < 8 {
		return ErrInvalidInput
	}

	claim, err := s.codec.Redeem(token, s.maxAge)
	if err != nil {
		return ErrInvalidOrExpiredToken
	}

	id, err := strconv.ParseUint(claim["user_id"], 10, 64)
	if err != nil {
		return ErrInvalidOrExpiredToken
	}

	user, err := s.users.GetByID(uint(id))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidOrExpiredToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(user.ID, string(hash))
}
