package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/emekaobi/jollofkitchen-backend/pkg/config"
	"github.com/emekaobi/jollofkitchen-backend/pkg/logger"
)

const senderName = "JollofKitchen"

// Sender delivers transactional email.
type Sender interface {
	Send(ctx context.Context, to, subject, plainBody, htmlBody string) error
}

// SendGridSender delivers mail through the SendGrid v3 API.
type SendGridSender struct {
	apiKey string
	from   string
	logg   *logger.Logger
}

// NewSendGridSender builds a sender from config. The API key and a default
// from address are both required.
func NewSendGridSender(cfg config.SendgridConfig, logg *logger.Logger) (*SendGridSender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sendgrid api key is required")
	}
	if cfg.DefaultFrom == "" {
		return nil, fmt.Errorf("sendgrid from address is required")
	}
	return &SendGridSender{apiKey: cfg.APIKey, from: cfg.DefaultFrom, logg: logg}, nil
}

// Send delivers a single email to one recipient.
func (s *SendGridSender) Send(ctx context.Context, to, subject, plainBody, htmlBody string) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}
	if htmlBody == "" {
		htmlBody = fmt.Sprintf("<pre>%s</pre>", plainBody)
	}

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(senderName, s.from),
		subject,
		sgmail.NewEmail("", to),
		plainBody,
		htmlBody,
	)

	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"to": to, "subject": subject})
		s.logg.Info(ctx, "mail sent")
	}
	return nil
}

// LogSender writes mail to the log instead of delivering it. Used in dev
// when no SendGrid key is configured.
type LogSender struct {
	logg *logger.Logger
}

// NewLogSender builds a sender that only logs.
func NewLogSender(logg *logger.Logger) *LogSender {
	return &LogSender{logg: logg}
}

func (s *LogSender) Send(ctx context.Context, to, subject, plainBody, _ string) error {
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"to":      to,
			"subject": subject,
			"body":    plainBody,
		})
		s.logg.Info(ctx, "mail suppressed (log sender)")
	}
	return nil
}
