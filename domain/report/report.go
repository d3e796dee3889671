package report

import (
	"context"

	"asset-size-action/domain/assets"
	"asset-size-action/domain/pullrequest"
)

// Report is a rendered size comparison together with the data behind it
type Report struct {
	PullRequest *pullrequest.PullRequest // nil when comparing offline
	Markdown    string
	Files       assets.Diff
	Removed     assets.SizeMap
	BaseTotals  assets.TypeTotals
	PRTotals    assets.TypeTotals
	TotalDiffs  assets.TypeDelta
}

// Publisher defines the interface for delivering a rendered report.
// This is a port that can be implemented by different infrastructure adapters
type Publisher interface {
	// Name identifies the publisher in progress output and errors
	Name() string

	// Publish delivers the report
	Publish(ctx context.Context, r *Report) error
}
