package app

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"blogpress/internal/mail"
	"blogpress/internal/model"
)

var (
	ErrInvalidEmail       = errors.New("email address is invalid")
	ErrAlreadySubscribed  = errors.New("email is already subscribed")
	ErrSubscriberNotFound = errors.New("subscriber not found")
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,7}$`)

type SubscriberStore interface {
	Create(subscriber *model.Subscriber) error
	GetByEmail(email string) (*model.Subscriber, error)
	GetByID(id uint) (*model.Subscriber, error)
	List(offset, limit int) ([]model.Subscriber, error)
	ListAll() ([]model.Subscriber, error)
	Delete(id uint) error
}

type SubscriptionService struct {
	subscribers SubscriberStore
	codec       TokenCodec
	publisher   MailPublisher
	baseURL     string
	maxAge      time.Duration
	now         func() time.Time
}

func NewSubscriptionService(subscribers SubscriberStore, codec TokenCodec, publisher MailPublisher, baseURL string, maxAge time.Duration) *SubscriptionService {
	return &SubscriptionService{
		subscribers: subscribers,
		codec:       codec,
		publisher:   publisher,
		baseURL:     baseURL,
		maxAge:      maxAge,
		now:         time.Now,
	}
}

// RequestSubscription validates the address and emails a confirmation link.
// An address already on the list short-circuits before any token is minted,
// so repeated requests stay side-effect free.
func (s *SubscriptionService) RequestSubscription(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}

	existing, err := s.subscribers.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadySubscribed
	}

	token, err := s.codec.Issue(map[string]string{"email": email})
	if err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, mail.SubscribeConfirmMessage(s.baseURL, email, token)); err != nil {
		log.Printf("enqueue subscribe confirmation for %s failed: %v", email, err)
	}
	return nil
}

// RedeemSubscription turns a confirmed token into a subscriber row. The
// existence check and the insert are not one transaction; the unique index
// on email is the authoritative guard, and a duplicate-key insert from a
// racing redemption is reported as already subscribed rather than a fault.
func (s *SubscriptionService) RedeemSubscription(ctx context.Context, token string) (*model.Subscriber, error) {
	claim, err := s.codec.Redeem(token, s.maxAge)
	if err != nil {
		return nil, ErrInvalidOrExpiredToken
	}

	email := claim["email"]
	if email == "" {
		return nil, ErrInvalidOrExpiredToken
	}

	existing, err := s.subscribers.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySubscribed
	}

	subscriber := &model.Subscriber{
		Email:        email,
		SubscribedAt: s.now().UTC(),
	}
	if err := s.subscribers.Create(subscriber); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return subscriber, nil
}

func (s *SubscriptionService) ListSubscribers(actor Actor, page, perPage int) ([]model.Subscriber, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}
	offset, limit := pageBounds(page, perPage)
	return s.subscribers.List(offset, limit)
}

func (s *SubscriptionService) DeleteSubscriber(actor Actor, id uint) error {
	if !actor.Admin {
		return ErrForbidden
	}
	subscriber, err := s.subscribers.GetByID(id)
	if err != nil {
		return err
	}
	if subscriber == nil {
		return ErrSubscriberNotFound
	}
	return s.subscribers.Delete(id)
}
