package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestNewMailerDisabledWithoutHost(t *testing.T) {
	assert.Nil(t, NewMailer(config.SMTPConfig{}, nil))

	var m *Mailer
	assert.NoError(t, m.NotifyContact(context.Background(), db.ContactSubmission{}))
}

func TestNotifyContact(t *testing.T) {
	fake := &fakeDialer{}
	m := &Mailer{from: "site@example.com", to: "owner@example.com", dialer: fake}

	err := m.NotifyContact(context.Background(), db.ContactSubmission{
		ID:      7,
		Name:    "Ada <script>",
		Email:   "ada@example.com",
		Subject: "Collab",
		Message: "Line one\nLine two",
	})
	require.NoError(t, err)
	require.Len(t, fake.sent, 1)

	msg := fake.sent[0]
	assert.Equal(t, []string{"owner@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"ada@example.com"}, msg.GetHeader("Reply-To"))
	assert.Equal(t, []string{"[Portfolio] Collab"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/plain")
	assert.Contains(t, buf.String(), "text/html")
}

func TestContactBodies(t *testing.T) {
	submission := db.ContactSubmission{
		Name:    "Ada <script>",
		Email:   "ada@example.com",
		Subject: "Collab",
		Message: "Line one\nLine two",
	}

	htmlBody := contactHTMLBody(submission)
	assert.Contains(t, htmlBody, "Ada &lt;script&gt;")
	assert.NotContains(t, htmlBody, "<script>")
	assert.Contains(t, htmlBody, "Line one<br>Line two")

	// 纯文本部分保留原始输入。
	plain := contactPlainBody(submission)
	assert.Contains(t, plain, "From: Ada <script> <ada@example.com>")
	assert.Contains(t, plain, "Line one\nLine two")
}

func TestNotifyContactWrapsErrors(t *testing.T) {
	m := &Mailer{from: "a@example.com", to: "b@example.com", dialer: &fakeDialer{err: errors.New("refused")}}
	err := m.NotifyContact(context.Background(), db.ContactSubmission{Subject: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
}
