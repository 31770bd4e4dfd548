package notify

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// Message is one rendered message for one recipient.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers rendered messages over one channel.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SendGridSender delivers email through the SendGrid v3 API.
type SendGridSender struct {
	key  string
	from *sgmail.Email
	host string
}

// NewSendGridSender builds an email sender for the given API key and from address.
func NewSendGridSender(key, fromName, fromAddress string) *SendGridSender {
	return &SendGridSender{key: key, from: sgmail.NewEmail(fromName, fromAddress), host: sendGridHost}
}

// Send posts the message and fails on any 4xx/5xx response. The SendGrid
// client takes no context, so ctx is only checked before the request.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	req := sendgrid.GetRequest(s.key, sendGridEndpoint, s.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(msg))

	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

func (s *SendGridSender) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail("", msg.To))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.Body))
	return m
}

// LogSender writes messages to the logger instead of a provider. It keeps the
// last messages in memory so local runs can inspect what was sent.
type LogSender struct {
	channel string
	logger  *zap.Logger

	mu   sync.Mutex
	sent []Message
}

// NewLogSender builds a logging sender labelled with channel.
func NewLogSender(channel string, logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{channel: channel, logger: logger}
}

// Send logs the message.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("notification sent",
		zap.String("channel", s.channel),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("body_length", len(msg.Body)),
	)
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	if len(s.sent) > 100 {
		s.sent = s.sent[len(s.sent)-100:]
	}
	s.mu.Unlock()
	return nil
}

// Sent returns a copy of the recently logged messages.
func (s *LogSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}
