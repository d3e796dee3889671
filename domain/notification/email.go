package notification

import "context"

// Recipient represents an email recipient with name and address
type Recipient struct {
	Name    string
	Address string
}

// EmailRequest contains all the data needed to mail an asset size report
type EmailRequest struct {
	To         []Recipient // Primary recipients
	CC         []Recipient // Carbon copy recipients
	Repository string      // "owner/repo"
	Number     int         // Pull request number, zero for offline comparisons
	Title      string      // Pull request title
	Summary    string      // One-line change summary for the subject
	Report     string      // Rendered Markdown report
	SenderName string      // Name to sign the email
}

// Validate checks that the email request has all required fields
func (r *EmailRequest) Validate() error {
	if len(r.To) == 0 {
		return ErrNoRecipients
	}
	for _, to := range r.To {
		if to.Address == "" {
			return ErrInvalidRecipient
		}
	}
	for _, cc := range r.CC {
		if cc.Address == "" {
			return ErrInvalidRecipient
		}
	}
	if r.Repository == "" {
		return ErrNoRepository
	}
	if r.Report == "" {
		return ErrNoReport
	}
	return nil
}

// EmailSender defines the interface for sending emails
type EmailSender interface {
	Send(ctx context.Context, req *EmailRequest) error
}
