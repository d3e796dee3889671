package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"asset-size-action/domain/report"
	"asset-size-action/infrastructure/logging"
)

// CommentPublisher posts the report as a pull request comment. A hidden
// marker identifies the comment so later runs update it in place.
type CommentPublisher struct {
	client *Client
	marker string
}

// NewCommentPublisher creates a publisher that tags its comment with marker
func NewCommentPublisher(client *Client, marker string) *CommentPublisher {
	return &CommentPublisher{client: client, marker: marker}
}

// Name implements report.Publisher
func (p *CommentPublisher) Name() string {
	return "pull request comment"
}

// Publish implements report.Publisher
func (p *CommentPublisher) Publish(ctx context.Context, r *report.Report) error {
	if r.PullRequest == nil {
		return report.ErrNoPullRequest
	}
	pr := r.PullRequest
	body := p.body(r.Markdown)

	existing, err := p.findComment(ctx, pr.Owner, pr.Repo, pr.Number)
	if err != nil {
		return err
	}

	if existing != nil {
		_, _, err := p.client.Issues.EditComment(ctx, pr.Owner, pr.Repo, existing.GetID(), &gh.IssueComment{Body: gh.String(body)})
		if err != nil {
			return fmt.Errorf("failed to update comment on %s: %w", pr, err)
		}
		logging.Info("updated pull request comment", logging.String("pr", pr.String()), logging.Int64("comment_id", existing.GetID()))
		return nil
	}

	created, _, err := p.client.Issues.CreateComment(ctx, pr.Owner, pr.Repo, pr.Number, &gh.IssueComment{Body: gh.String(body)})
	if err != nil {
		return fmt.Errorf("failed to comment on %s: %w", pr, err)
	}
	logging.Info("created pull request comment", logging.String("pr", pr.String()), logging.Int64("comment_id", created.GetID()))
	return nil
}

func (p *CommentPublisher) body(markdown string) string {
	if p.marker == "" {
		return markdown
	}
	return p.marker + "\n" + markdown
}

func (p *CommentPublisher) findComment(ctx context.Context, owner, repo string, number int) (*gh.IssueComment, error) {
	if p.marker == "" {
		return nil, nil
	}

	opts := &gh.IssueListCommentsOptions{ListOptions: gh.ListOptions{PerPage: 100}}
	for {
		comments, resp, err := p.client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments: %w", err)
		}
		for _, c := range comments {
			if strings.Contains(c.GetBody(), p.marker) {
				return c, nil
			}
		}
		if resp == nil || resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}

// Ensure CommentPublisher implements report.Publisher
var _ report.Publisher = (*CommentPublisher)(nil)
