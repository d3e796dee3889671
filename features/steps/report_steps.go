//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"asset-size-action/cmd"
	"asset-size-action/domain/assets"
	"asset-size-action/domain/report"
	"asset-size-action/infrastructure/actions"
	"asset-size-action/infrastructure/config"
	"asset-size-action/infrastructure/github"

	"github.com/cucumber/godog"
)

const (
	reportBaseSHA = "1111111111111111111111111111111111111111"
	reportHeadSHA = "2222222222222222222222222222222222222222"
)

// fakeCheckout implements build.Checkout by remembering the current ref
type fakeCheckout struct {
	refs    []string
	current string
}

func (f *fakeCheckout) Checkout(ctx context.Context, dir, ref string) error {
	f.refs = append(f.refs, ref)
	f.current = ref
	return nil
}

// refMeasurer returns the sizes registered for whatever ref is checked out
type refMeasurer struct {
	checkout *fakeCheckout
	sizes    map[string]assets.SizeMap
}

func (m *refMeasurer) Measure(ctx context.Context, dir string) (assets.SizeMap, error) {
	sizes, ok := m.sizes[m.checkout.current]
	if !ok {
		return nil, fmt.Errorf("no sizes for ref %q", m.checkout.current)
	}
	return sizes, nil
}

// fakeGitHub records the comment calls made against the REST API
type fakeGitHub struct {
	mu             sync.Mutex
	server         *httptest.Server
	existing       []map[string]any
	createdBody    string
	editedID       int64
	editedBody     string
	failComments   bool
	pullRequestHit bool
}

type reportContext struct {
	tempDir     string
	eventPath   string
	summaryPath string
	outputPath  string
	api         *fakeGitHub
	checkout    *fakeCheckout
	measurer    *refMeasurer
	output      bytes.Buffer
	err         error
}

var SharedReportContext = &reportContext{}

func InitializeReportScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedReportContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		dir, err := os.MkdirTemp("", "report-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = dir
		testCtx.eventPath = filepath.Join(dir, "event.json")
		testCtx.summaryPath = filepath.Join(dir, "step_summary.md")
		testCtx.outputPath = filepath.Join(dir, "github_output")
		testCtx.api = newFakeGitHub()
		testCtx.checkout = &fakeCheckout{}
		testCtx.measurer = &refMeasurer{checkout: testCtx.checkout, sizes: map[string]assets.SizeMap{}}
		testCtx.output.Reset()
		testCtx.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.api != nil {
			testCtx.api.server.Close()
		}
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^a pull_request event for "([^/"]*)/([^"]*)" number (\d+)$`, testCtx.aPullRequestEventFor)
	ctx.Step(`^a push event$`, testCtx.aPushEvent)
	ctx.Step(`^the base commit builds:$`, testCtx.theBaseCommitBuilds)
	ctx.Step(`^the head commit builds:$`, testCtx.theHeadCommitBuilds)
	ctx.Step(`^the pull request already has a size comment with id (\d+)$`, testCtx.thePullRequestAlreadyHasASizeComment)
	ctx.Step(`^the GitHub API rejects comments$`, testCtx.theGitHubAPIRejectsComments)
	ctx.Step(`^I run the report$`, testCtx.iRunTheReport)
	ctx.Step(`^the report should succeed$`, testCtx.theReportShouldSucceed)
	ctx.Step(`^the report should fail with "([^"]*)"$`, testCtx.theReportShouldFailWith)
	ctx.Step(`^the base commit should be built before the head commit$`, testCtx.theBaseCommitShouldBeBuiltBeforeTheHeadCommit)
	ctx.Step(`^nothing should be built$`, testCtx.nothingShouldBeBuilt)
	ctx.Step(`^a new comment should contain "([^"]*)"$`, testCtx.aNewCommentShouldContain)
	ctx.Step(`^comment (\d+) should be updated with "([^"]*)"$`, testCtx.commentShouldBeUpdatedWith)
	ctx.Step(`^no comment should be posted$`, testCtx.noCommentShouldBePosted)
	ctx.Step(`^the step summary should contain "([^"]*)"$`, testCtx.theStepSummaryShouldContain)
	ctx.Step(`^the step output "([^"]*)" should contain "([^"]*)"$`, testCtx.theStepOutputShouldContain)
	ctx.Step(`^the report output should contain "([^"]*)"$`, testCtx.theReportOutputShouldContain)
}

func newFakeGitHub() *fakeGitHub {
	api := &fakeGitHub{}
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v3/repos/", api.handle)
	api.server = httptest.NewServer(mux)
	return api
}

func (f *fakeGitHub) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api/v3/repos/")
	parts := strings.Split(path, "/")
	w.Header().Set("Content-Type", "application/json")

	switch {
	// owner/repo/pulls/N
	case len(parts) == 4 && parts[2] == "pulls" && r.Method == http.MethodGet:
		f.pullRequestHit = true
		number, _ := strconv.Atoi(parts[3])
		json.NewEncoder(w).Encode(map[string]any{
			"number": number,
			"title":  "Upgrade dependencies",
			"base":   map[string]any{"ref": "main", "sha": reportBaseSHA},
			"head":   map[string]any{"ref": "deps", "sha": reportHeadSHA},
		})

	// owner/repo/issues/N/comments
	case len(parts) == 5 && parts[2] == "issues" && parts[4] == "comments":
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(f.existing)
			return
		}
		if f.failComments {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message": "Resource not accessible by integration"}`)
			return
		}
		f.createdBody = decodeCommentBody(r.Body)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 100}`)

	// owner/repo/issues/comments/ID
	case len(parts) == 5 && parts[2] == "issues" && parts[3] == "comments" && r.Method == http.MethodPatch:
		f.editedID, _ = strconv.ParseInt(parts[4], 10, 64)
		f.editedBody = decodeCommentBody(r.Body)
		fmt.Fprintf(w, `{"id": %d}`, f.editedID)

	default:
		http.NotFound(w, r)
	}
}

func decodeCommentBody(body io.Reader) string {
	var comment struct {
		Body string `json:"body"`
	}
	_ = json.NewDecoder(body).Decode(&comment)
	return comment.Body
}

func (c *reportContext) aPullRequestEventFor(owner, repo string, number int) error {
	event := map[string]any{
		"action": "synchronize",
		"number": number,
		"pull_request": map[string]any{
			"number": number,
			"base": map[string]any{
				"repo": map[string]any{"name": repo, "owner": map[string]any{"login": owner}},
			},
		},
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return os.WriteFile(c.eventPath, data, 0644)
}

func (c *reportContext) aPushEvent() error {
	return os.WriteFile(c.eventPath, []byte(`{"ref": "refs/heads/main", "after": "abc"}`), 0644)
}

func (c *reportContext) theBaseCommitBuilds(table *godog.Table) error {
	sizes, err := sizeTable(table)
	c.measurer.sizes[reportBaseSHA] = sizes
	return err
}

func (c *reportContext) theHeadCommitBuilds(table *godog.Table) error {
	sizes, err := sizeTable(table)
	c.measurer.sizes[reportHeadSHA] = sizes
	return err
}

func sizeTable(table *godog.Table) (assets.SizeMap, error) {
	sizes := assets.SizeMap{}
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		name := strings.ReplaceAll(row.Cells[0].Value, "{hash}", fixtureHash)
		raw, err := strconv.ParseInt(row.Cells[1].Value, 10, 64)
		if err != nil {
			return nil, err
		}
		gzip, err := strconv.ParseInt(row.Cells[2].Value, 10, 64)
		if err != nil {
			return nil, err
		}
		sizes[name] = assets.Size{Raw: raw, Gzip: gzip}
	}
	return sizes, nil
}

func (c *reportContext) thePullRequestAlreadyHasASizeComment(id int) error {
	c.api.existing = []map[string]any{
		{"id": 7, "body": "Looks good to me"},
		{"id": id, "body": config.DefaultCommentMarker + "\nold report"},
	}
	return nil
}

func (c *reportContext) theGitHubAPIRejectsComments() error {
	c.api.failComments = true
	return nil
}

func (c *reportContext) iRunTheReport() error {
	cfg := &config.Config{}
	cfg.Project.Directory = c.tempDir
	cfg.GitHub.Token = "test-token"
	cfg.GitHub.APIURL = c.api.server.URL
	cfg.GitHub.EventPath = c.eventPath
	cfg.ApplyDefaults()

	ctx := context.Background()
	client, err := github.NewClient(ctx, cfg.GitHub.Token, cfg.GitHub.APIURL)
	if err != nil {
		return err
	}

	accessor := github.NewAccessor(client, cfg.GitHub.EventPath)
	publishers := []report.Publisher{
		actions.NewWriterPublisher(&c.output),
		github.NewCommentPublisher(client, cfg.GitHub.CommentMarker),
		actions.NewStepSummaryPublisher(c.summaryPath),
		actions.NewOutputPublisher(c.outputPath),
	}

	c.err = cmd.RunReportWithDependencies(ctx, cfg, accessor, c.checkout, c.measurer, publishers, &c.output)
	return nil
}

func (c *reportContext) theReportShouldSucceed() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got: %v\noutput:\n%s", c.err, c.output.String())
	}
	return nil
}

func (c *reportContext) theReportShouldFailWith(expected string) error {
	if c.err == nil {
		return fmt.Errorf("expected the report to fail")
	}
	if !strings.Contains(c.err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got %q", expected, c.err.Error())
	}
	return nil
}

func (c *reportContext) theBaseCommitShouldBeBuiltBeforeTheHeadCommit() error {
	want := []string{reportBaseSHA, reportHeadSHA}
	if strings.Join(c.checkout.refs, ",") != strings.Join(want, ",") {
		return fmt.Errorf("expected checkouts %v, got %v", want, c.checkout.refs)
	}
	return nil
}

func (c *reportContext) nothingShouldBeBuilt() error {
	if len(c.checkout.refs) != 0 {
		return fmt.Errorf("expected no checkouts, got %v", c.checkout.refs)
	}
	if c.api.pullRequestHit {
		return fmt.Errorf("expected no pull request lookup")
	}
	return nil
}

func (c *reportContext) aNewCommentShouldContain(expected string) error {
	c.api.mu.Lock()
	defer c.api.mu.Unlock()
	if !strings.HasPrefix(c.api.createdBody, config.DefaultCommentMarker+"\n") {
		return fmt.Errorf("expected a new marked comment, got %q", c.api.createdBody)
	}
	if !strings.Contains(c.api.createdBody, expected) {
		return fmt.Errorf("expected comment to contain %q, got:\n%s", expected, c.api.createdBody)
	}
	return nil
}

func (c *reportContext) commentShouldBeUpdatedWith(id int, expected string) error {
	c.api.mu.Lock()
	defer c.api.mu.Unlock()
	if c.api.editedID != int64(id) {
		return fmt.Errorf("expected comment %d to be edited, got %d", id, c.api.editedID)
	}
	if c.api.createdBody != "" {
		return fmt.Errorf("expected no new comment, got %q", c.api.createdBody)
	}
	if !strings.Contains(c.api.editedBody, expected) {
		return fmt.Errorf("expected edited comment to contain %q, got:\n%s", expected, c.api.editedBody)
	}
	return nil
}

func (c *reportContext) noCommentShouldBePosted() error {
	c.api.mu.Lock()
	defer c.api.mu.Unlock()
	if c.api.createdBody != "" || c.api.editedID != 0 {
		return fmt.Errorf("expected no comment, got created=%q edited=%d", c.api.createdBody, c.api.editedID)
	}
	return nil
}

func (c *reportContext) theStepSummaryShouldContain(expected string) error {
	data, err := os.ReadFile(c.summaryPath)
	if err != nil {
		return fmt.Errorf("failed to read step summary: %w", err)
	}
	if !strings.Contains(string(data), expected) {
		return fmt.Errorf("expected step summary to contain %q, got:\n%s", expected, data)
	}
	return nil
}

func (c *reportContext) theStepOutputShouldContain(name, expected string) error {
	data, err := os.ReadFile(c.outputPath)
	if err != nil {
		return fmt.Errorf("failed to read step output: %w", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, name+"<<") {
		return fmt.Errorf("expected output %q, got:\n%s", name, content)
	}
	if !strings.Contains(content, expected) {
		return fmt.Errorf("expected output %q to contain %q, got:\n%s", name, expected, content)
	}
	return nil
}

func (c *reportContext) theReportOutputShouldContain(expected string) error {
	if !strings.Contains(c.output.String(), expected) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", expected, c.output.String())
	}
	return nil
}
