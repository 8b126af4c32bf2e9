package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

// ResendClient delivers emails through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}
}

// SetBaseURL points the client at another Resend-compatible endpoint.
func (c *ResendClient) SetBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimRight(raw, "/") + "/")
	if err != nil {
		return fmt.Errorf("invalid resend base url: %w", err)
	}
	c.client.BaseURL = u
	return nil
}

// NewSender returns a Resend client, or a LogSender when no API key is set.
func NewSender(apiKey, fromName, fromEmail string) adapter.EmailSender {
	if apiKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails will only be logged")
		return LogSender{}
	}
	return NewResendClient(apiKey, fromName, fromEmail)
}

// Send implements adapter.EmailSender.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		if isPermanentError(err) {
			return nil, domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"permanent email failure",
				err,
			)
		}
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure,
			"temporary email failure",
			err,
		)
	}

	return &adapter.SendEmailResult{
		ResendID: resp.Id,
	}, nil
}

// permanentMarkers flag provider errors that will fail again on retry:
// bad credentials, forbidden senders and rejected payloads.
var permanentMarkers = []string{"401", "403", "422", "unauthorized", "forbidden", "validation_error", "invalid"}

func isPermanentError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range permanentMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// LogSender writes emails to the log instead of delivering them.
type LogSender struct{}

// Send implements adapter.EmailSender.
func (LogSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	slog.Info("Email not delivered, no provider configured",
		"to", input.To,
		"subject", input.Subject,
	)
	return &adapter.SendEmailResult{ResendID: "logged"}, nil
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = LogSender{}
)
