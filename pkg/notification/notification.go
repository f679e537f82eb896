// Package notification is the transactional-email collaborator.
//
// Define a notification:
//
//	type BookingConfirmation struct{ Booking models.Booking }
//	func (n *BookingConfirmation) Subject() string { ... }
//	func (n *BookingConfirmation) Body() string    { ... }
//
// and deliver it through a Dispatcher:
//
//	d.Send(ctx, "customer@example.com", &BookingConfirmation{Booking: b})
//	d.SendAsync("customer@example.com", &BookingConfirmation{Booking: b})
//
// Send is synchronous and returns the delivery error (used by the
// password-reset flow, which rolls back its OTP on failure). SendAsync is
// best-effort: it runs on a bounded worker pool, never blocks the caller,
// and on failure only logs and counts the miss; booking confirmation must
// never fail a booking.
package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/inbasree/weddingvista/pkg/logger"
	"github.com/inbasree/weddingvista/pkg/mail"
	"github.com/inbasree/weddingvista/pkg/metrics"
	"github.com/inbasree/weddingvista/pkg/workerpool"
)

// Notification is a renderable transactional email.
type Notification interface {
	Subject() string
	Body() string // HTML
}

// Sender delivers a rendered message to one address. The default is SMTP
// via pkg/mail; tests swap in a recorder.
type Sender func(address, subject, body string) error

// SMTPSender delivers through the fluent mailer.
func SMTPSender(address, subject, body string) error {
	return mail.To(address).Subject(subject).Body(body).Send()
}

// Dispatcher fans notifications out to a Sender, asynchronously when asked.
type Dispatcher struct {
	send Sender
	pool *workerpool.Pool
}

// NewDispatcher builds a Dispatcher delivering through send on pool.
// A nil send defaults to SMTP.
func NewDispatcher(send Sender, pool *workerpool.Pool) *Dispatcher {
	if send == nil {
		send = SMTPSender
	}
	return &Dispatcher{send: send, pool: pool}
}

// Send delivers n to address synchronously and returns the delivery error.
func (d *Dispatcher) Send(ctx context.Context, address string, n Notification) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("notification: %w", err)
	}
	if err := d.send(address, n.Subject(), n.Body()); err != nil {
		metrics.NotificationFailures.Inc()
		return fmt.Errorf("notification: send: %w", err)
	}
	return nil
}

// SendAsync delivers n to address in the background, best-effort. Failures
// are logged and counted, never surfaced to the caller; a full pool drops
// the message rather than blocking the request path.
func (d *Dispatcher) SendAsync(address string, n Notification) {
	task := func() {
		if err := d.send(address, n.Subject(), n.Body()); err != nil {
			metrics.NotificationFailures.Inc()
			logger.Error("notification: async delivery failed",
				"to", address, "subject", n.Subject(), "error", err)
		}
	}

	if d.pool == nil {
		go task()
		return
	}

	if err := d.pool.Submit(task); err != nil {
		if errors.Is(err, workerpool.ErrPoolFull) {
			metrics.NotificationFailures.Inc()
			logger.Warn("notification: pool full, message dropped",
				"to", address, "subject", n.Subject())
			return
		}
		// Pool closed during shutdown: deliver inline as a last resort.
		task()
	}
}
