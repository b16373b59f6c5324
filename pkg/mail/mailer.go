package mail

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"

	"github.com/cinevault/cinevault/pkg/config"
	"github.com/cinevault/cinevault/pkg/observability"
)

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Mailer sends email over SMTP. With no username configured the dialer skips
// authentication, which is what MailHog expects.
type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	log     *logrus.Entry
	metrics *observability.Metrics
}

func NewMailer(cfg config.SMTPConfig, metrics *observability.Metrics) *Mailer {
	return &Mailer{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.From,
		log:     logrus.WithField("component", "mailer"),
		metrics: metrics,
	}
}

// Send delivers one HTML email. gomail dials per message, which is fine at
// our volume; the reminder sweep sends sequentially.
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.WithFields(logrus.Fields{"to": to, "subject": subject}).Debug("email sent")
	return nil
}

// SendTest delivers the delivery-check reminder email to the given address.
func (m *Mailer) SendTest(ctx context.Context, to, name string) (string, error) {
	subject, body, err := ReleaseReminderEmail(name, testMovie())
	if err != nil {
		return "", err
	}
	subject = "[TEST] " + subject

	if err := m.Send(ctx, to, subject, body); err != nil {
		if m.metrics != nil {
			m.metrics.EmailSendFailures.WithLabelValues("test").Inc()
		}
		return "", err
	}
	if m.metrics != nil {
		m.metrics.EmailsSentTotal.WithLabelValues("test").Inc()
	}
	return subject, nil
}
