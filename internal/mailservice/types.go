package mailservice

import (
	"bytes"
	"sync"
	"time"

	"github.com/go-mail/mail/v2"
)

type MailService struct {
	m         Mailer
	recipient string
	logger    MailLogger
	retries   int
	baseDelay time.Duration
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// ContactMessage is what a visitor submits through the contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Ref     string
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, headers map[string]string, data any, templateFile string) error
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}
