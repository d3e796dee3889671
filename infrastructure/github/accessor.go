package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"asset-size-action/domain/pullrequest"
	"asset-size-action/infrastructure/filesystem"
)

// Accessor implements pullrequest.Accessor from the Actions event payload
type Accessor struct {
	client     *Client
	eventPath  string
	repository string
}

// AccessorOption is a functional option for configuring Accessor
type AccessorOption func(*Accessor)

// WithRepository sets the owner/repo used when the payload does not name one
func WithRepository(slug string) AccessorOption {
	return func(a *Accessor) {
		a.repository = slug
	}
}

// NewAccessor creates an accessor reading the event JSON at eventPath
func NewAccessor(client *Client, eventPath string, opts ...AccessorOption) *Accessor {
	a := &Accessor{client: client, eventPath: eventPath}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Get implements pullrequest.Accessor. The payload only identifies the pull
// request; base and head SHAs are read from the API so they are current.
func (a *Accessor) Get(ctx context.Context) (*pullrequest.PullRequest, error) {
	event, err := a.readEvent()
	if err != nil {
		return nil, err
	}
	if event.PullRequest == nil {
		return nil, pullrequest.ErrNoPullRequest
	}

	owner, repo, err := a.repoOf(event)
	if err != nil {
		return nil, err
	}

	number := event.PullRequest.GetNumber()
	if number == 0 {
		number = event.GetNumber()
	}
	if number == 0 {
		return nil, pullrequest.ErrNoPullRequest
	}

	pr, _, err := a.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request %s/%s#%d: %w", owner, repo, number, err)
	}

	return &pullrequest.PullRequest{
		Owner:  owner,
		Repo:   repo,
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Base:   pullrequest.Branch{Ref: pr.GetBase().GetRef(), SHA: pr.GetBase().GetSHA()},
		Head:   pullrequest.Branch{Ref: pr.GetHead().GetRef(), SHA: pr.GetHead().GetSHA()},
	}, nil
}

func (a *Accessor) readEvent() (*gh.PullRequestEvent, error) {
	if a.eventPath == "" {
		return nil, pullrequest.ErrNoPullRequest
	}

	var event gh.PullRequestEvent
	if err := filesystem.ReadJSON(a.eventPath, &event); err != nil {
		return nil, fmt.Errorf("event payload: %w", err)
	}
	return &event, nil
}

func (a *Accessor) repoOf(event *gh.PullRequestEvent) (string, string, error) {
	base := event.PullRequest.GetBase().GetRepo()
	if owner, name := base.GetOwner().GetLogin(), base.GetName(); owner != "" && name != "" {
		return owner, name, nil
	}

	owner, name, ok := strings.Cut(a.repository, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("cannot determine repository for pull request (got %q)", a.repository)
	}
	return owner, name, nil
}

// Ensure Accessor implements pullrequest.Accessor
var _ pullrequest.Accessor = (*Accessor)(nil)
