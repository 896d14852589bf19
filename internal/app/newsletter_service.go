package app

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"blogpress/internal/mail"
	"blogpress/internal/model"
)

var (
	ErrNewsletterNotFound = errors.New("newsletter not found")
	ErrNoSubscribers      = errors.New("no subscribers to email")
	ErrDispatchFailed     = errors.New("newsletter dispatch failed")
)

type NewsletterStore interface {
	Create(newsletter *model.Newsletter) error
	GetByID(id uint) (*model.Newsletter, error)
	List(offset, limit int) ([]model.Newsletter, error)
	Update(newsletter *model.Newsletter) error
	MarkEmailed(id uint, emailedAt time.Time) error
	Delete(id uint) error
}

type AttachmentStore interface {
	Save(originalName string, content io.Reader) (string, error)
	Path(name string) string
	Delete(name string) error
}

type NewsletterService struct {
	newsletters NewsletterStore
	subscribers SubscriberStore
	attachments AttachmentStore
	dispatcher  mail.Dispatcher
	now         func() time.Time
}

type NewsletterInput struct {
	Subject        string
	Message        string
	Attachment     io.Reader
	AttachmentName string
}

func NewNewsletterService(newsletters NewsletterStore, subscribers SubscriberStore, attachments AttachmentStore, dispatcher mail.Dispatcher) *NewsletterService {
	return &NewsletterService{
		newsletters: newsletters,
		subscribers: subscribers,
		attachments: attachments,
		dispatcher:  dispatcher,
		now:         time.Now,
	}
}

func (s *NewsletterService) Create(actor Actor, input NewsletterInput) (*model.Newsletter, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}

	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if subject == "" || message == "" || input.Attachment == nil {
		return nil, ErrInvalidInput
	}

	fileName, err := s.attachments.Save(input.AttachmentName, input.Attachment)
	if err != nil {
		return nil, err
	}

	newsletter := &model.Newsletter{
		Subject:        subject,
		Message:        message,
		AttachmentFile: fileName,
		AuthorName:     actor.Username,
	}
	if err := s.newsletters.Create(newsletter); err != nil {
		if removeErr := s.attachments.Delete(fileName); removeErr != nil {
			log.Printf("cleanup attachment %s failed: %v", fileName, removeErr)
		}
		return nil, err
	}
	return newsletter, nil
}

func (s *NewsletterService) Get(actor Actor, id uint) (*model.Newsletter, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}
	newsletter, err := s.newsletters.GetByID(id)
	if err != nil {
		return nil, err
	}
	if newsletter == nil {
		return nil, ErrNewsletterNotFound
	}
	return newsletter, nil
}

func (s *NewsletterService) List(actor Actor, page, perPage int) ([]model.Newsletter, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}
	offset, limit := pageBounds(page, perPage)
	return s.newsletters.List(offset, limit)
}

func (s *NewsletterService) Update(actor Actor, id uint, input NewsletterInput) (*model.Newsletter, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}

	newsletter, err := s.newsletters.GetByID(id)
	if err != nil {
		return nil, err
	}
	if newsletter == nil {
		return nil, ErrNewsletterNotFound
	}

	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if subject == "" || message == "" {
		return nil, ErrInvalidInput
	}

	if input.Attachment != nil {
		fileName, err := s.attachments.Save(input.AttachmentName, input.Attachment)
		if err != nil {
			return nil, err
		}
		if err := s.attachments.Delete(newsletter.AttachmentFile); err != nil {
			log.Printf("delete old attachment %s failed: %v", newsletter.AttachmentFile, err)
		}
		newsletter.AttachmentFile = fileName
	}

	newsletter.Subject = subject
	newsletter.Message = message
	if err := s.newsletters.Update(newsletter); err != nil {
		return nil, err
	}
	return newsletter, nil
}

func (s *NewsletterService) Delete(actor Actor, id uint) error {
	if !actor.Admin {
		return ErrForbidden
	}

	newsletter, err := s.newsletters.GetByID(id)
	if err != nil {
		return err
	}
	if newsletter == nil {
		return ErrNewsletterNotFound
	}

	if err := s.newsletters.Delete(id); err != nil {
		return err
	}
	if err := s.attachments.Delete(newsletter.AttachmentFile); err != nil {
		log.Printf("delete attachment %s failed: %v", newsletter.AttachmentFile, err)
	}
	return nil
}

// Broadcast sends the newsletter to every subscriber over one SMTP
// connection and stamps EmailedAt only when the whole loop succeeded.
// An empty subscriber list is its own outcome, not a failure.
func (s *NewsletterService) Broadcast(ctx context.Context, actor Actor, id uint) error {
	if !actor.Admin {
		return ErrForbidden
	}

	newsletter, err := s.newsletters.GetByID(id)
	if err != nil {
		return err
	}
	if newsletter == nil {
		return ErrNewsletterNotFound
	}

	subscribers, err := s.subscribers.ListAll()
	if err != nil {
		return err
	}
	if len(subscribers) == 0 {
		return ErrNoSubscribers
	}

	msgs := make([]mail.Message, 0, len(subscribers))
	for _, subscriber := range subscribers {
		msgs = append(msgs, mail.Message{
			To:             subscriber.Email,
			Subject:        newsletter.Subject,
			Body:           newsletter.Message,
			AttachmentPath: s.attachments.Path(newsletter.AttachmentFile),
		})
	}

	if err := s.dispatcher.SendBatch(ctx, msgs); err != nil {
		log.Printf("broadcast newsletter %d failed: %v", id, err)
		return ErrDispatchFailed
	}

	return s.newsletters.MarkEmailed(id, s.now().UTC())
}
