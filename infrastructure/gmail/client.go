package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strings"

	"asset-size-action/domain/notification"
	"asset-size-action/infrastructure/logging"

	"google.golang.org/api/gmail/v1"
)

// GmailService sends raw messages through the Gmail API
type GmailService interface {
	SendMessage(ctx context.Context, userID string, message *gmail.Message) (*gmail.Message, error)
}

// GoogleGmailService is the production implementation using the Gmail API
type GoogleGmailService struct {
	service *gmail.Service
}

// SendMessage sends an email via Gmail API
func (s *GoogleGmailService) SendMessage(ctx context.Context, userID string, message *gmail.Message) (*gmail.Message, error) {
	return s.service.Users.Messages.Send(userID, message).Context(ctx).Do()
}

// Client implements notification.EmailSender using Gmail API
type Client struct {
	gmailService GmailService
	from         notification.Recipient
	template     notification.EmailTemplate
}

// ClientOption is a functional option for configuring Client
type ClientOption func(*Client)

// WithGmailService sets a custom Gmail service (for testing)
func WithGmailService(svc GmailService) ClientOption {
	return func(c *Client) {
		c.gmailService = svc
	}
}

// WithTemplate sets a custom email template
func WithTemplate(tmpl notification.EmailTemplate) ClientOption {
	return func(c *Client) {
		c.template = tmpl
	}
}

// NewClient creates a new Gmail client
func NewClient(from notification.Recipient, opts ...ClientOption) *Client {
	c := &Client{
		from:     from,
		template: notification.DefaultTemplate,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Send sends an email using the Gmail API
func (c *Client) Send(ctx context.Context, req *notification.EmailRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid email request: %w", err)
	}

	data := notification.TemplateData{
		Greeting:   notification.FormatGreeting(req.To),
		Repository: req.Repository,
		Reference:  notification.FormatReference(req.Number),
		Title:      req.Title,
		Summary:    req.Summary,
		Report:     req.Report,
		SenderName: req.SenderName,
	}

	subject, err := c.template.RenderSubject(data)
	if err != nil {
		return fmt.Errorf("failed to render subject: %w", err)
	}

	plainText, err := c.template.RenderPlainText(data)
	if err != nil {
		return fmt.Errorf("failed to render plain text: %w", err)
	}

	// The HTML template is plain text/template, so user content is escaped here
	htmlData := data
	htmlData.Title = html.EscapeString(data.Title)
	htmlData.Report = html.EscapeString(data.Report)
	htmlBody, err := c.template.RenderHTML(htmlData)
	if err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}

	raw, err := c.buildMessage(req, subject, plainText, htmlBody)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	message := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}
	if _, err := c.gmailService.SendMessage(ctx, "me", message); err != nil {
		return fmt.Errorf("%w: %v", notification.ErrSendFailed, err)
	}

	logging.Info("sent report email",
		logging.String("repository", req.Repository),
		logging.Int("recipients", len(req.To)+len(req.CC)))
	return nil
}

// buildMessage assembles a multipart/alternative message with a plain text
// and an HTML part
func (c *Client) buildMessage(req *notification.EmailRequest, subject, plainText, htmlBody string) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=\"UTF-8\"", plainText},
		{"text/html; charset=\"UTF-8\"", htmlBody},
	}
	for _, part := range parts {
		w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {part.contentType}})
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(w, part.content+"\r\n"); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", formatAddress(c.from))
	fmt.Fprintf(&msg, "To: %s\r\n", formatAddresses(req.To))
	if len(req.CC) > 0 {
		fmt.Fprintf(&msg, "Cc: %s\r\n", formatAddresses(req.CC))
	}
	fmt.Fprintf(&msg, "Subject: %s\r\n", encodeHeader(subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())
	msg.Write(body.Bytes())

	return msg.Bytes(), nil
}

func formatAddress(r notification.Recipient) string {
	if r.Name == "" {
		return r.Address
	}
	return fmt.Sprintf("%s <%s>", r.Name, r.Address)
}

func formatAddresses(rs []notification.Recipient) string {
	addrs := make([]string, len(rs))
	for i, r := range rs {
		addrs[i] = formatAddress(r)
	}
	return strings.Join(addrs, ", ")
}

// encodeHeader applies RFC 2047 encoding when the value is not plain ASCII
func encodeHeader(s string) string {
	return mime.BEncoding.Encode("UTF-8", s)
}

// Ensure Client implements notification.EmailSender
var _ notification.EmailSender = (*Client)(nil)
