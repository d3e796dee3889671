package pullrequest

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoPullRequest is returned when the triggering event carries no pull request
var ErrNoPullRequest = errors.New("could not get pull request number from context")

// Branch is one side of a pull request
type Branch struct {
	Ref string // branch name, e.g. "main"
	SHA string // commit to build
}

// PullRequest contains the metadata needed to pick the two builds to compare
type PullRequest struct {
	Owner  string
	Repo   string
	Number int
	Title  string
	Base   Branch
	Head   Branch
}

// Slug returns "owner/repo"
func (p *PullRequest) Slug() string {
	return p.Owner + "/" + p.Repo
}

// String returns "owner/repo#number"
func (p *PullRequest) String() string {
	return fmt.Sprintf("%s#%d", p.Slug(), p.Number)
}

// Accessor defines the interface for looking up the pull request being built.
// This is a port that can be implemented by different infrastructure adapters
type Accessor interface {
	// Get returns the pull request for the current run, or ErrNoPullRequest
	Get(ctx context.Context) (*PullRequest, error)
}
