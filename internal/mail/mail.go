// Package mail is the outbound email boundary. Services hand it fully
// rendered messages; transport details (SMTP dialing, attachments) stay here.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type Message struct {
	To             string `json:"to"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentPath string `json:"attachment_path,omitempty"`
}

type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
	// SendBatch reuses one SMTP connection for the whole slice. Used by
	// newsletter broadcast, where the loop outcome decides success.
	SendBatch(ctx context.Context, msgs []Message) error
}

type SMTPDispatcher struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPDispatcher(host string, port int, username, password, from string) *SMTPDispatcher {
	return &SMTPDispatcher{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (d *SMTPDispatcher) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.dialer.DialAndSend(d.build(msg)); err != nil {
		return fmt.Errorf("send mail to %s failed: %w", msg.To, err)
	}
	return nil
}

func (d *SMTPDispatcher) SendBatch(ctx context.Context, msgs []Message) error {
	if len(msgs) == 0 {
		return nil
	}

	sender, err := d.dialer.Dial()
	if err != nil {
		return fmt.Errorf("dial smtp failed: %w", err)
	}
	defer sender.Close()

	for _, msg := range msgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := gomail.Send(sender, d.build(msg)); err != nil {
			return fmt.Errorf("send mail to %s failed: %w", msg.To, err)
		}
	}
	return nil
}

func (d *SMTPDispatcher) build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if msg.AttachmentPath != "" {
		m.Attach(msg.AttachmentPath)
	}
	return m
}
