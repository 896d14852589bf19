package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"blogpress/internal/mail"
)

// MailDispatchWorker drains the mail queue and hands each message to the
// SMTP dispatcher. A failed send is requeued once by the broker; a message
// that cannot even be decoded is dropped.
type MailDispatchWorker struct {
	conn       *amqp.Connection
	dispatcher mail.Dispatcher
	queueName  string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMailDispatchWorker(conn *amqp.Connection, dispatcher mail.Dispatcher, queueName string) *MailDispatchWorker {
	return &MailDispatchWorker{
		conn:       conn,
		dispatcher: dispatcher,
		queueName:  queueName,
	}
}

func (w *MailDispatchWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var msg mail.Message
				if err := json.Unmarshal(d.Body, &msg); err != nil {
					log.Printf("worker decode mail failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.dispatcher.Send(workerCtx, msg); err != nil {
					log.Printf("worker send mail to %s failed: %v", msg.To, err)
					_ = d.Nack(false, !d.Redelivered)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *MailDispatchWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
