package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// dialer is the part of *gomail.Dialer the mailer uses.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer 通过 SMTP 把联系表单留言转发给站长。
type Mailer struct {
	from   string
	to     string
	dialer dialer
	logger *logrus.Logger
}

// NewMailer builds a Mailer from the SMTP config. It returns nil when SMTP is not configured,
// which callers treat as "notifications disabled".
func NewMailer(cfg config.SMTPConfig, logger *logrus.Logger) *Mailer {
	if !cfg.Enabled() {
		return nil
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.UseSSL // true = 465 SSL, false = 587 STARTTLS

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &Mailer{from: from, to: cfg.ContactTo, dialer: d, logger: logger}
}

// NotifyContact sends the submission to the configured recipient with Reply-To set to the sender.
func (m *Mailer) NotifyContact(ctx context.Context, submission db.ContactSubmission) error {
	if m == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Reply-To", submission.Email)
	msg.SetHeader("Subject", fmt.Sprintf("[Portfolio] %s", submission.Subject))
	msg.SetBody("text/plain", contactPlainBody(submission))
	msg.AddAlternative("text/html", contactHTMLBody(submission))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return eris.Wrap(err, "failed to send contact notification")
	}
	if m.logger != nil {
		m.logger.WithField("submission_id", submission.ID).Info("contact notification sent")
	}
	return nil
}

func contactPlainBody(s db.ContactSubmission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\n", s.Name, s.Email)
	fmt.Fprintf(&b, "Subject: %s\n\n", s.Subject)
	b.WriteString(s.Message)
	b.WriteString("\n")
	return b.String()
}

func contactHTMLBody(s db.ContactSubmission) string {
	message := strings.ReplaceAll(html.EscapeString(s.Message), "\n", "<br>")
	return fmt.Sprintf(
		"<p><strong>%s</strong> &lt;%s&gt; wrote:</p><h3>%s</h3><p>%s</p>",
		html.EscapeString(s.Name),
		html.EscapeString(s.Email),
		html.EscapeString(s.Subject),
		message,
	)
}
