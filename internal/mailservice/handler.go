package mailservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/xid"
	"golang.org/x/exp/rand"

	"github.com/sushihentaime/blogsite/internal/common"
)

const (
	contactTemplate = "contact_email.html"
	refHeader       = "X-Blogsite-Ref"
)

var ErrMailDisabled = errors.New("contact mail is not configured")

// NewMailService returns a service that delivers contact messages to recipient.
// With an empty host or recipient the service is disabled and every send fails with ErrMailDisabled.
func NewMailService(host string, port int, username, password, sender, recipient string, logger *slog.Logger) *MailService {
	s := &MailService{
		recipient: recipient,
		logger:    logger,
		retries:   3,
		baseDelay: 500 * time.Millisecond,
	}

	if host != "" && recipient != "" {
		s.m = NewMailer(host, port, username, password, sender, NewTemplate())
	}

	return s
}

func (s *MailService) Enabled() bool {
	return s.m != nil
}

// SendContactMessage validates msg and mails it to the site owner. It returns the reference given to the message.
func (s *MailService) SendContactMessage(ctx context.Context, msg ContactMessage) (string, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Phone = strings.TrimSpace(msg.Phone)
	msg.Message = strings.TrimSpace(msg.Message)

	v := common.NewValidator()
	validateContactMessage(v, msg)
	if !v.Valid() {
		return "", v.ValidationError()
	}

	if !s.Enabled() {
		return "", ErrMailDisabled
	}

	msg.Ref = xid.New().String()

	headers := map[string]string{
		"Reply-To": msg.Email,
		refHeader:  msg.Ref,
	}

	// using exponential backoff with jitter
	var err error
	for attempt := 0; attempt < s.retries; attempt++ {
		err = s.m.send(s.recipient, headers, msg, contactTemplate)
		if err == nil {
			s.logger.Info("contact message sent", slog.String("ref", msg.Ref))
			return msg.Ref, nil
		}

		if attempt == s.retries-1 {
			break
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying contact message", slog.String("ref", msg.Ref), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	s.logger.Error("could not send contact message", slog.String("ref", msg.Ref), slog.String("error", err.Error()))

	return "", err
}

func validateContactMessage(v *common.Validator, msg ContactMessage) {
	v.Check(common.NotBlank(msg.Name), "name", "must be provided")
	v.Check(!strings.ContainsAny(msg.Name, "\r\n"), "name", "must be a single line")
	v.Check(common.NotBlank(msg.Email), "email", "must be provided")
	v.Check(!strings.ContainsAny(msg.Email, "\r\n"), "email", "must be a single line")
	v.Check(common.NotBlank(msg.Message), "message", "must be provided")
	v.Check(len(msg.Message) <= 5000, "message", "must not be more than 5000 bytes long")
}
