package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"asset-size-action/domain/notification"

	"google.golang.org/api/gmail/v1"
)

// mockGmailService is a mock implementation for testing
type mockGmailService struct {
	sentMessages []*gmail.Message
	shouldFail   bool
	failError    error
}

func (m *mockGmailService) SendMessage(ctx context.Context, userID string, message *gmail.Message) (*gmail.Message, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	m.sentMessages = append(m.sentMessages, message)
	return &gmail.Message{Id: "test-message-id"}, nil
}

const testReport = "Files that got Bigger 🚨:\n\nFile | raw | gzip\n--- | --- | ---\nvendor.js|+2.0 kB|+512 B"

func TestClient_Send(t *testing.T) {
	mock := &mockGmailService{}
	from := notification.Recipient{Name: "Size Bot", Address: "bot@example.com"}

	client := NewClient(from, WithGmailService(mock))

	req := &notification.EmailRequest{
		To:         []notification.Recipient{{Name: "John Doe", Address: "john@example.com"}},
		CC:         []notification.Recipient{{Name: "Jane Doe", Address: "jane@example.com"}},
		Repository: "acme/web",
		Number:     7,
		Title:      "Add <Chart> component",
		Summary:    "js +2.0 kB",
		Report:     testReport,
		SenderName: "Size Bot",
	}

	err := client.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(mock.sentMessages) != 1 {
		t.Fatalf("expected 1 message sent, got %d", len(mock.sentMessages))
	}

	// The message is base64 URL encoded
	rawBytes, err := decodeBase64URL(mock.sentMessages[0].Raw)
	if err != nil {
		t.Fatalf("failed to decode message: %v", err)
	}
	raw := string(rawBytes)

	checks := []string{
		"From: Size Bot <bot@example.com>",
		"To: John Doe <john@example.com>",
		"Cc: Jane Doe <jane@example.com>",
		"Subject: acme/web#7: asset sizes (js +2.0 kB)",
		"Hi John,",
		"vendor.js|+2.0 kB|+512 B",
		"Add &lt;Chart&gt; component",
		"~Size Bot",
	}

	for _, check := range checks {
		if !strings.Contains(raw, check) {
			t.Errorf("message missing %q in:\n%s", check, raw)
		}
	}
}

func TestClient_Send_MultipleRecipients(t *testing.T) {
	mock := &mockGmailService{}
	client := NewClient(notification.Recipient{Address: "bot@example.com"}, WithGmailService(mock))

	req := &notification.EmailRequest{
		To: []notification.Recipient{
			{Name: "John Doe", Address: "john@example.com"},
			{Name: "Alice Smith", Address: "alice@example.com"},
		},
		Repository: "acme/web",
		Report:     testReport,
	}

	if err := client.Send(context.Background(), req); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	rawBytes, _ := decodeBase64URL(mock.sentMessages[0].Raw)
	raw := string(rawBytes)

	if !strings.Contains(raw, "From: bot@example.com\r\n") {
		t.Errorf("unnamed sender should be a bare address:\n%s", raw)
	}
	if !strings.Contains(raw, "To: John Doe <john@example.com>, Alice Smith <alice@example.com>") {
		t.Errorf("message missing multiple recipients in To header:\n%s", raw)
	}
	if !strings.Contains(raw, "Hi John & Alice,") {
		t.Errorf("message should greet both recipients by name:\n%s", raw)
	}
	if !strings.Contains(raw, "Subject: acme/web: asset sizes\r\n") {
		t.Errorf("offline report subject should have no reference:\n%s", raw)
	}
}

func TestClient_Send_ValidationError(t *testing.T) {
	mock := &mockGmailService{}
	client := NewClient(notification.Recipient{Address: "bot@example.com"}, WithGmailService(mock))

	req := &notification.EmailRequest{
		Repository: "acme/web",
		Report:     testReport,
	}

	err := client.Send(context.Background(), req)
	if err == nil {
		t.Fatal("Send() expected error for invalid request, got nil")
	}
	if !errors.Is(err, notification.ErrNoRecipients) {
		t.Errorf("Send() error = %v, want ErrNoRecipients", err)
	}
	if len(mock.sentMessages) != 0 {
		t.Error("no message should be sent for an invalid request")
	}
}

func TestClient_Send_APIError(t *testing.T) {
	mock := &mockGmailService{shouldFail: true, failError: errors.New("quota exceeded")}
	client := NewClient(notification.Recipient{Address: "bot@example.com"}, WithGmailService(mock))

	err := client.Send(context.Background(), &notification.EmailRequest{
		To:         []notification.Recipient{{Address: "john@example.com"}},
		Repository: "acme/web",
		Report:     testReport,
	})
	if !errors.Is(err, notification.ErrSendFailed) {
		t.Errorf("Send() error = %v, want ErrSendFailed", err)
	}
}

func TestEncodeHeader(t *testing.T) {
	if got := encodeHeader("acme/web: asset sizes"); got != "acme/web: asset sizes" {
		t.Errorf("ASCII header changed: %q", got)
	}
	got := encodeHeader("sizes 🚨")
	if !strings.HasPrefix(got, "=?UTF-8?b?") || !strings.HasSuffix(got, "?=") {
		t.Errorf("non-ASCII header not encoded: %q", got)
	}
}

func TestNewClientWithServiceAccount_MissingKey(t *testing.T) {
	_, err := NewClientWithServiceAccount(context.Background(),
		ServiceAccountConfig{CredentialsFile: "/nonexistent/key.json"},
		notification.Recipient{Address: "bot@example.com"})
	if err == nil || !strings.Contains(err.Error(), "service account key") {
		t.Errorf("NewClientWithServiceAccount() error = %v", err)
	}
}

func TestNewClientWithServiceAccount_InjectedService(t *testing.T) {
	mock := &mockGmailService{}
	c, err := NewClientWithServiceAccount(context.Background(),
		ServiceAccountConfig{CredentialsFile: "/nonexistent/key.json"},
		notification.Recipient{Address: "bot@example.com"},
		WithGmailService(mock))
	if err != nil {
		t.Fatalf("NewClientWithServiceAccount() error = %v", err)
	}
	if c.gmailService != mock {
		t.Error("injected service should be used without reading credentials")
	}
}

// decodeBase64URL decodes a base64 URL encoded string
func decodeBase64URL(s string) ([]byte, error) {
	return base64.URLEncoding.DecodeString(s)
}
