package report

import "errors"

var (
	// ErrNoPullRequest is returned when a publisher needs a pull request but the report has none
	ErrNoPullRequest = errors.New("report is not attached to a pull request")

	// ErrEmptyReport is returned when there is nothing to publish
	ErrEmptyReport = errors.New("report is empty")

	// ErrPublishFailed is returned when a publisher could not deliver the report
	ErrPublishFailed = errors.New("failed to publish report")
)
