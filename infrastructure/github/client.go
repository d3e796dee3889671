// Package github talks to the GitHub REST API for pull request metadata and comments.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// DefaultAPIURL is the public GitHub REST endpoint
const DefaultAPIURL = "https://api.github.com"

// Client is the go-github REST client used by the accessor and publishers
type Client = gh.Client

// NewClient creates an authenticated API client. A non-default apiURL is
// treated as a GitHub Enterprise Server endpoint.
func NewClient(ctx context.Context, token, apiURL string) (*Client, error) {
	var httpClient *http.Client
	if token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}

	client := gh.NewClient(httpClient)

	apiURL = strings.TrimSuffix(apiURL, "/")
	if apiURL == "" || apiURL == DefaultAPIURL {
		return client, nil
	}

	client, err := client.WithEnterpriseURLs(apiURL+"/", apiURL+"/")
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
	}
	return client, nil
}
