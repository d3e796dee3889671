package notification

import (
	"context"
	"fmt"
	"strings"

	"asset-size-action/domain/assets"
	"asset-size-action/domain/notification"
	"asset-size-action/domain/report"
)

// Service mails rendered size reports
type Service struct {
	sender     notification.EmailSender
	to         []notification.Recipient
	cc         []notification.Recipient
	repository string
	senderName string
}

// NewService creates a new notification service. repository is used for
// reports that are not attached to a pull request.
func NewService(sender notification.EmailSender, to, cc []notification.Recipient, repository, senderName string) *Service {
	return &Service{
		sender:     sender,
		to:         to,
		cc:         cc,
		repository: repository,
		senderName: senderName,
	}
}

// Name implements report.Publisher
func (s *Service) Name() string {
	return "email"
}

// Publish implements report.Publisher
func (s *Service) Publish(ctx context.Context, r *report.Report) error {
	return s.sender.Send(ctx, s.BuildRequest(r))
}

// BuildRequest turns a report into an email request
func (s *Service) BuildRequest(r *report.Report) *notification.EmailRequest {
	req := &notification.EmailRequest{
		To:         s.to,
		CC:         s.cc,
		Repository: s.repository,
		Summary:    Summarize(r.TotalDiffs),
		Report:     r.Markdown,
		SenderName: s.senderName,
	}

	if pr := r.PullRequest; pr != nil {
		req.Repository = pr.Slug()
		req.Number = pr.Number
		req.Title = pr.Title
	}

	return req
}

// Summarize describes the raw total change per asset type, e.g.
// "js +2.0 kB, css -120 B". Unchanged types are left out.
func Summarize(d assets.TypeDelta) string {
	var parts []string
	for _, t := range []assets.AssetType{assets.TypeJS, assets.TypeCSS} {
		if raw := d.Get(t).Raw; raw != 0 {
			parts = append(parts, fmt.Sprintf("%s %s", t, report.FormatBytes(raw, true)))
		}
	}
	return strings.Join(parts, ", ")
}

// Ensure Service implements report.Publisher
var _ report.Publisher = (*Service)(nil)
