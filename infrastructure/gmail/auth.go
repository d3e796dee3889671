package gmail

import (
	"context"
	"fmt"
	"os"

	"asset-size-action/domain/notification"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// ServiceAccountConfig holds the settings for sending as a Workspace user
// through a service account with domain-wide delegation
type ServiceAccountConfig struct {
	CredentialsFile string // Path to the service account key JSON
	Subject         string // Mailbox to send as; usually the from address
}

// newServiceAccountGmailService creates a Gmail service that impersonates cfg.Subject
func newServiceAccountGmailService(ctx context.Context, cfg ServiceAccountConfig) (*GoogleGmailService, error) {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}
	jwtConfig.Subject = cfg.Subject

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create gmail service: %w", err)
	}

	return &GoogleGmailService{service: srv}, nil
}

// NewClientWithServiceAccount creates a Gmail client authenticated with a
// service account key. It needs no browser, so it works on CI runners.
func NewClientWithServiceAccount(ctx context.Context, cfg ServiceAccountConfig, from notification.Recipient, opts ...ClientOption) (*Client, error) {
	c := NewClient(from, opts...)

	if c.gmailService == nil {
		if cfg.Subject == "" {
			cfg.Subject = from.Address
		}
		svc, err := newServiceAccountGmailService(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c.gmailService = svc
	}

	return c, nil
}
