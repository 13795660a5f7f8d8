package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-consultancy-backend/config"
	"go-consultancy-backend/pkg/logger"
)

const sendEndpoint = "https://api.sendgrid.com/v3/mail/send"

// ErrNotConfigured indicates the SendGrid API key is absent.
var ErrNotConfigured = errors.New("mailer: SENDGRID_API_KEY is not configured")

// Result reports the outcome of a single dispatch attempt. Dispatch never
// panics or propagates transport faults; a failed send comes back as
// Delivered=false with the detail captured here. No retries are performed.
type Result struct {
	Delivered  bool
	StatusCode int
	Err        error
}

// OK reports whether the message was accepted by the provider.
func (r Result) OK() bool {
	return r.Delivered
}

// Attachment is a SendGrid attachment: base64 content plus MIME metadata.
type Attachment struct {
	Content     string `json:"content"`
	Type        string `json:"type"`
	Filename    string `json:"filename"`
	Disposition string `json:"disposition,omitempty"`
}

// HTMLEmail is a fully pre-rendered message for one or more recipients.
type HTMLEmail struct {
	Subject     string
	Recipients  []string
	HTMLBody    string
	ReplyTo     string
	Attachments []Attachment
	SenderName  string
}

// TemplateEmail is a message whose layout lives at the provider and is
// populated with named data fields at send time.
type TemplateEmail struct {
	Recipient   string
	TemplateID  string
	DynamicData map[string]string
	ReplyTo     string
	SenderName  string
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalization struct {
	To                  []emailAddress    `json:"to"`
	DynamicTemplateData map[string]string `json:"dynamic_template_data,omitempty"`
}

type bodyContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendPayload struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject,omitempty"`
	Content          []bodyContent     `json:"content,omitempty"`
	ReplyTo          *emailAddress     `json:"reply_to,omitempty"`
	Attachments      []Attachment      `json:"attachments,omitempty"`
	TemplateID       string            `json:"template_id,omitempty"`
}

// SendGridMailer sends transactional email through SendGrid's v3 API.
type SendGridMailer struct {
	apiKey        string
	defaultSender string
	endpoint      string
	client        *http.Client
}

// NewSendGridMailer creates a mailer from application configuration.
func NewSendGridMailer(cfg *config.Config) *SendGridMailer {
	timeout := time.Duration(cfg.MailTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SendGridMailer{
		apiKey:        cfg.SendGridAPIKey,
		defaultSender: cfg.MailDefaultSender,
		endpoint:      sendEndpoint,
		client:        &http.Client{Timeout: timeout},
	}
}

// IsConfigured checks if a SendGrid API key is available.
func (m *SendGridMailer) IsConfigured() bool {
	return m.apiKey != ""
}

// SendHTMLEmail sends a pre-rendered HTML email.
func (m *SendGridMailer) SendHTMLEmail(ctx context.Context, msg HTMLEmail) Result {
	to := formatRecipients(msg.Recipients)
	if len(to) == 0 {
		return Result{Err: errors.New("mailer: at least one recipient email address is required")}
	}

	senderName := msg.SenderName
	if senderName == "" {
		senderName = "Palmertech"
	}

	payload := sendPayload{
		Personalizations: []personalization{{To: to}},
		From:             emailAddress{Email: m.defaultSender, Name: senderName},
		Subject:          msg.Subject,
		Content:          []bodyContent{{Type: "text/html", Value: msg.HTMLBody}},
		Attachments:      msg.Attachments,
	}
	if msg.ReplyTo != "" {
		payload.ReplyTo = &emailAddress{Email: msg.ReplyTo}
	}

	return m.dispatch(ctx, payload, "standard email")
}

// SendDynamicTemplateEmail sends a transactional email using a dynamic
// template defined at the provider.
func (m *SendGridMailer) SendDynamicTemplateEmail(ctx context.Context, msg TemplateEmail) Result {
	if msg.TemplateID == "" {
		return Result{Err: errors.New("mailer: template id is required")}
	}
	to := formatRecipients([]string{msg.Recipient})
	if len(to) == 0 {
		return Result{Err: errors.New("mailer: at least one recipient email address is required")}
	}

	senderName := msg.SenderName
	if senderName == "" {
		senderName = "Palmertech Web Team"
	}

	payload := sendPayload{
		Personalizations: []personalization{{To: to, DynamicTemplateData: msg.DynamicData}},
		From:             emailAddress{Email: m.defaultSender, Name: senderName},
		TemplateID:       msg.TemplateID,
	}
	if msg.ReplyTo != "" {
		payload.ReplyTo = &emailAddress{Email: msg.ReplyTo}
	}

	return m.dispatch(ctx, payload, "dynamic template email")
}

// dispatch posts the payload to SendGrid and captures failure detail.
func (m *SendGridMailer) dispatch(ctx context.Context, payload sendPayload, kind string) Result {
	if !m.IsConfigured() {
		logger.Log.Error("Email dispatch aborted", "context", kind, "error", ErrNotConfigured)
		return Result{Err: ErrNotConfigured}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Err: fmt.Errorf("mailer: encode payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Err: fmt.Errorf("mailer: build request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		logger.Log.Error("Error sending email via SendGrid", "context", kind, "error", err)
		return Result{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Log.Error("SendGrid rejected email",
			"context", kind, "status", resp.StatusCode, "response", string(detail))
		return Result{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("mailer: sendgrid returned status %d", resp.StatusCode),
		}
	}

	return Result{Delivered: true, StatusCode: resp.StatusCode}
}

// formatRecipients returns SendGrid-ready recipient entries, dropping empty
// addresses.
func formatRecipients(recipients []string) []emailAddress {
	out := make([]emailAddress, 0, len(recipients))
	for _, addr := range recipients {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		out = append(out, emailAddress{Email: addr})
	}
	return out
}
