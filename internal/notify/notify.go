// Package notify turns booking events into notices for the rental desk.
package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/kafka"
)

// Mailer is the part of *mail.Client the sender needs.
type Mailer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Sender logs every notice and mails it too when a Mailer is set.
type Sender struct {
	log    *zap.Logger
	mailer Mailer
	from   string
	to     []string
}

type SenderOption func(*Sender)

func WithMailer(mailer Mailer, from string, to []string) SenderOption {
	return func(s *Sender) {
		s.mailer = mailer
		s.from = from
		s.to = to
	}
}

func NewSender(log *zap.Logger, opts ...SenderOption) *Sender {
	s := &Sender{log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSMTPClient dials nothing; the connection is opened per send.
func NewSMTPClient(cfg config.NotifyConfig) (*mail.Client, error) {
	opts := []mail.Option{mail.WithPort(cfg.SMTPPort)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("init smtp client: %w", err)
	}
	return client, nil
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info("booking notice",
		zap.String("event_id", event.ID),
		zap.String("type", event.Type),
		zap.Int64("booking_id", event.BookingID),
		zap.String("user", event.User),
		zap.String("car", event.Car),
		zap.String("status", event.Status),
	)
	if s.mailer == nil {
		return nil
	}

	msg, err := s.message(event)
	if err != nil {
		return err
	}
	// A mail failure is not retried; the event is already logged.
	if err := s.mailer.DialAndSendWithContext(ctx, msg); err != nil {
		s.log.Warn("booking notice not mailed", zap.Int64("booking_id", event.BookingID), zap.Error(err))
	}
	return nil
}

func (s *Sender) message(event kafka.BookingEvent) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("notice from address: %w", err)
	}
	if err := msg.To(s.to...); err != nil {
		return nil, fmt.Errorf("notice recipients: %w", err)
	}
	msg.Subject(fmt.Sprintf("Booking #%d %s", event.BookingID, event.Status))

	user := event.User
	if user == "" {
		user = "a guest"
	}
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Booking #%d for %s by %s is now %s.\nTotal: ₹%.0f\n\nThis is a system-generated message.",
		event.BookingID, event.Car, user, event.Status, event.TotalPrice,
	))
	return msg, nil
}
