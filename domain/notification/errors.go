package notification

import "errors"

var (
	// ErrNoRecipients is returned when no To recipients are provided
	ErrNoRecipients = errors.New("at least one recipient is required")

	// ErrInvalidRecipient is returned when a recipient has no email address
	ErrInvalidRecipient = errors.New("recipient must have an email address")

	// ErrNoRepository is returned when the repository name is missing
	ErrNoRepository = errors.New("repository is required")

	// ErrNoReport is returned when the rendered report is empty
	ErrNoReport = errors.New("report body is required")

	// ErrSendFailed is returned when the email fails to send
	ErrSendFailed = errors.New("failed to send email")
)
