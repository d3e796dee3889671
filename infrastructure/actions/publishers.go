// Package actions delivers reports through GitHub Actions runner files and stdout.
package actions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"asset-size-action/domain/report"
)

// OutputName is the step output that carries the rendered report
const OutputName = "report"

// WriterPublisher writes the report to a stream, usually stdout
type WriterPublisher struct {
	w io.Writer
}

// NewWriterPublisher creates a publisher for w
func NewWriterPublisher(w io.Writer) *WriterPublisher {
	return &WriterPublisher{w: w}
}

// Name implements report.Publisher
func (p *WriterPublisher) Name() string {
	return "stdout"
}

// Publish implements report.Publisher
func (p *WriterPublisher) Publish(ctx context.Context, r *report.Report) error {
	if _, err := fmt.Fprintln(p.w, r.Markdown); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// StepSummaryPublisher appends the report to $GITHUB_STEP_SUMMARY
type StepSummaryPublisher struct {
	path string
}

// NewStepSummaryPublisher creates a publisher for the summary file at path
func NewStepSummaryPublisher(path string) *StepSummaryPublisher {
	return &StepSummaryPublisher{path: path}
}

// Name implements report.Publisher
func (p *StepSummaryPublisher) Name() string {
	return "step summary"
}

// Publish implements report.Publisher
func (p *StepSummaryPublisher) Publish(ctx context.Context, r *report.Report) error {
	return appendFile(p.path, "## Asset sizes\n\n"+r.Markdown+"\n")
}

// OutputPublisher sets the multi-line "report" step output in $GITHUB_OUTPUT
type OutputPublisher struct {
	path      string
	delimiter func() (string, error)
}

// NewOutputPublisher creates a publisher for the output file at path
func NewOutputPublisher(path string) *OutputPublisher {
	return &OutputPublisher{path: path, delimiter: randomDelimiter}
}

// Name implements report.Publisher
func (p *OutputPublisher) Name() string {
	return "step output"
}

// Publish implements report.Publisher
func (p *OutputPublisher) Publish(ctx context.Context, r *report.Report) error {
	delim, err := p.delimiter()
	if err != nil {
		return err
	}
	if strings.Contains(r.Markdown, delim) {
		return fmt.Errorf("report contains output delimiter %q", delim)
	}

	entry := fmt.Sprintf("%s<<%s\n%s\n%s\n", OutputName, delim, r.Markdown, delim)
	return appendFile(p.path, entry)
}

func randomDelimiter() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate output delimiter: %w", err)
	}
	return "ghadelimiter_" + hex.EncodeToString(b), nil
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

var (
	_ report.Publisher = (*WriterPublisher)(nil)
	_ report.Publisher = (*StepSummaryPublisher)(nil)
	_ report.Publisher = (*OutputPublisher)(nil)
)
