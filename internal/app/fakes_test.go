package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"blogpress/internal/mail"
	"blogpress/internal/model"
)

// In-memory stand-ins for the gorm repositories, the mail queue and the
// SMTP dispatcher. They mimic the repository contract: not-found is
// (nil, nil), duplicate inserts wrap gorm.ErrDuplicatedKey.

type fakeUserStore struct {
	users  map[uint]*model.User
	nextID uint
	// createHook, when set, replaces Create; used to simulate a racing
	// insert that the pre-checks could not see.
	createHook func(user *model.User) error
	updateErr  error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]*model.User{}}
}

func (f *fakeUserStore) Create(user *model.User) error {
	if f.createHook != nil {
		return f.createHook(user)
	}
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("create user failed: %w", gorm.ErrDuplicatedKey)
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByID(id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserStore) List(offset, limit int) ([]model.User, error) {
	users := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserStore) UpdateAccount(id uint, username, email string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if u, ok := f.users[id]; ok {
		u.Username = username
		u.Email = email
	}
	return nil
}

func (f *fakeUserStore) UpdatePasswordHash(id uint, passwordHash string) error {
	if u, ok := f.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserStore) SetAdmin(id uint, admin bool) error {
	if u, ok := f.users[id]; ok {
		u.Admin = admin
	}
	return nil
}

func (f *fakeUserStore) Delete(id uint) error {
	delete(f.users, id)
	return nil
}

type fakeSubscriberStore struct {
	subscribers map[uint]*model.Subscriber
	nextID      uint
	createErr   error
}

func newFakeSubscriberStore() *fakeSubscriberStore {
	return &fakeSubscriberStore{subscribers: map[uint]*model.Subscriber{}}
}

func (f *fakeSubscriberStore) Create(subscriber *model.Subscriber) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, s := range f.subscribers {
		if s.Email == subscriber.Email {
			return fmt.Errorf("create subscriber failed: %w", gorm.ErrDuplicatedKey)
		}
	}
	f.nextID++
	subscriber.ID = f.nextID
	clone := *subscriber
	f.subscribers[subscriber.ID] = &clone
	return nil
}

func (f *fakeSubscriberStore) GetByEmail(email string) (*model.Subscriber, error) {
	for _, s := range f.subscribers {
		if s.Email == email {
			clone := *s
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriberStore) GetByID(id uint) (*model.Subscriber, error) {
	s, ok := f.subscribers[id]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSubscriberStore) List(offset, limit int) ([]model.Subscriber, error) {
	return f.all(), nil
}

func (f *fakeSubscriberStore) ListAll() ([]model.Subscriber, error) {
	return f.all(), nil
}

func (f *fakeSubscriberStore) Delete(id uint) error {
	delete(f.subscribers, id)
	return nil
}

func (f *fakeSubscriberStore) all() []model.Subscriber {
	subscribers := make([]model.Subscriber, 0, len(f.subscribers))
	for _, s := range f.subscribers {
		subscribers = append(subscribers, *s)
	}
	return subscribers
}

type fakeNewsletterStore struct {
	newsletters map[uint]*model.Newsletter
	nextID      uint
}

func newFakeNewsletterStore() *fakeNewsletterStore {
	return &fakeNewsletterStore{newsletters: map[uint]*model.Newsletter{}}
}

func (f *fakeNewsletterStore) Create(newsletter *model.Newsletter) error {
	f.nextID++
	newsletter.ID = f.nextID
	newsletter.CreatedAt = time.Now()
	clone := *newsletter
	f.newsletters[newsletter.ID] = &clone
	return nil
}

func (f *fakeNewsletterStore) GetByID(id uint) (*model.Newsletter, error) {
	n, ok := f.newsletters[id]
	if !ok {
		return nil, nil
	}
	clone := *n
	return &clone, nil
}

func (f *fakeNewsletterStore) List(offset, limit int) ([]model.Newsletter, error) {
	newsletters := make([]model.Newsletter, 0, len(f.newsletters))
	for _, n := range f.newsletters {
		newsletters = append(newsletters, *n)
	}
	return newsletters, nil
}

func (f *fakeNewsletterStore) Update(newsletter *model.Newsletter) error {
	clone := *newsletter
	f.newsletters[newsletter.ID] = &clone
	return nil
}

func (f *fakeNewsletterStore) MarkEmailed(id uint, emailedAt time.Time) error {
	if n, ok := f.newsletters[id]; ok {
		n.EmailedAt = &emailedAt
	}
	return nil
}

func (f *fakeNewsletterStore) Delete(id uint) error {
	delete(f.newsletters, id)
	return nil
}

type fakeAttachmentStore struct {
	saved   []string
	deleted []string
	nextID  int
}

func (f *fakeAttachmentStore) Save(originalName string, content io.Reader) (string, error) {
	f.nextID++
	name := fmt.Sprintf("attachment-%d", f.nextID)
	f.saved = append(f.saved, name)
	return name, nil
}

func (f *fakeAttachmentStore) Path(name string) string {
	return "/attachments/" + name
}

func (f *fakeAttachmentStore) Delete(name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

type fakePublisher struct {
	published []mail.Message
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

type fakeDispatcher struct {
	sent    []mail.Message
	batches [][]mail.Message
	err     error
}

func (f *fakeDispatcher) Send(ctx context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeDispatcher) SendBatch(ctx context.Context, msgs []mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, msgs)
	return nil
}

type fakeCodec struct {
	issueToken string
	issueErr   error
	redeemOut  map[string]string
	redeemErr  error
}

func (f *fakeCodec) Issue(claim map[string]string) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return f.issueToken, nil
}

func (f *fakeCodec) Redeem(token string, maxAge time.Duration) (map[string]string, error) {
	if f.redeemErr != nil {
		return nil, f.redeemErr
	}
	return f.redeemOut, nil
}
