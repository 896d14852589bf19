package app

import (
	"context"
	"strings"

	"blogpress/internal/mail"
)

type ContactService struct {
	publisher    MailPublisher
	contactEmail string
}

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

func NewContactService(publisher MailPublisher, contactEmail string) *ContactService {
	return &ContactService{
		publisher:    publisher,
		contactEmail: contactEmail,
	}
}

// SubmitQuery forwards a visitor query to the site admin through the mail
// queue. Unlike the token flows a failed enqueue fails the request: the
// query is recorded nowhere else.
func (s *ContactService) SubmitQuery(ctx context.Context, input ContactInput) error {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	message := strings.TrimSpace(input.Message)

	if name == "" || message == "" {
		return ErrInvalidInput
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}

	return s.publisher.Publish(ctx, mail.ContactQueryMessage(s.contactEmail, name, email, message))
}
