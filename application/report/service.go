package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"asset-size-action/domain/assets"
	"asset-size-action/domain/build"
	"asset-size-action/domain/pullrequest"
	"asset-size-action/domain/report"
	"asset-size-action/infrastructure/logging"
)

// Measurer builds and measures a working tree
type Measurer interface {
	Measure(ctx context.Context, dir string) (assets.SizeMap, error)
}

// Service runs the pull request size report workflow
type Service struct {
	accessor   pullrequest.Accessor
	checkout   build.Checkout
	measurer   Measurer
	publishers []report.Publisher
	dir        string
	opts       Options
	output     io.Writer
}

// NewService creates a new report service for the project in dir
func NewService(
	accessor pullrequest.Accessor,
	checkout build.Checkout,
	measurer Measurer,
	publishers []report.Publisher,
	dir string,
	opts Options,
	output io.Writer,
) *Service {
	return &Service{
		accessor:   accessor,
		checkout:   checkout,
		measurer:   measurer,
		publishers: publishers,
		dir:        dir,
		opts:       opts,
		output:     output,
	}
}

// Run builds the base and head of the current pull request, compares their
// assets and publishes the report. It returns nil, nil when the run was not
// triggered by a pull request.
func (s *Service) Run(ctx context.Context) (*report.Report, error) {
	start := time.Now()

	fmt.Fprintf(s.output, "[1/5] Resolving pull request...\n")
	pr, err := s.accessor.Get(ctx)
	if errors.Is(err, pullrequest.ErrNoPullRequest) {
		logging.Warn("could not get pull request number from context, exiting")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pull request lookup failed: %w", err)
	}
	fmt.Fprintf(s.output, "      %s %q (%s...%s)\n\n", pr, pr.Title, pr.Base.Ref, pr.Head.Ref)

	fmt.Fprintf(s.output, "[2/5] Building base %s...\n", shortSHA(pr.Base.SHA))
	base, err := s.measureRef(ctx, pr.Base.SHA)
	if err != nil {
		return nil, fmt.Errorf("base build failed: %w", err)
	}
	fmt.Fprintf(s.output, "      Measured %d files\n\n", len(base))

	fmt.Fprintf(s.output, "[3/5] Building pull request %s...\n", shortSHA(pr.Head.SHA))
	head, err := s.measureRef(ctx, pr.Head.SHA)
	if err != nil {
		return nil, fmt.Errorf("pull request build failed: %w", err)
	}
	fmt.Fprintf(s.output, "      Measured %d files\n\n", len(head))

	fmt.Fprintf(s.output, "[4/5] Comparing sizes...\n")
	r := Compare(base, head, s.opts)
	r.PullRequest = pr
	fmt.Fprintf(s.output, "      %d files compared, %d removed\n\n", len(r.Files), len(r.Removed))

	fmt.Fprintf(s.output, "[5/5] Publishing report...\n")
	if r.Markdown == "" {
		logging.Warn("no assets to compare", logging.String("pr", pr.String()))
		fmt.Fprintf(s.output, "      No assets to compare, nothing published\n")
		fmt.Fprintf(s.output, "\nDone! Completed in %s\n", formatDuration(time.Since(start)))
		return r, nil
	}
	if err := s.Publish(ctx, r); err != nil {
		return r, err
	}

	fmt.Fprintf(s.output, "\nDone! Completed in %s\n", formatDuration(time.Since(start)))
	return r, nil
}

// Publish hands the report to every publisher. A failing publisher does not
// stop the others; all failures are returned together.
func (s *Service) Publish(ctx context.Context, r *report.Report) error {
	if r.Markdown == "" {
		return report.ErrEmptyReport
	}

	var errs []error
	for _, p := range s.publishers {
		if err := p.Publish(ctx, r); err != nil {
			logging.Error("publisher failed", logging.String("publisher", p.Name()), logging.Err(err))
			fmt.Fprintf(s.output, "      Failed: %s\n", p.Name())
			errs = append(errs, fmt.Errorf("%w to %s: %w", report.ErrPublishFailed, p.Name(), err))
			continue
		}
		fmt.Fprintf(s.output, "      Published: %s\n", p.Name())
	}
	return errors.Join(errs...)
}

func (s *Service) measureRef(ctx context.Context, sha string) (assets.SizeMap, error) {
	if err := s.checkout.Checkout(ctx, s.dir, sha); err != nil {
		return nil, err
	}
	return s.measurer.Measure(ctx, s.dir)
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	sec := (d % time.Minute) / time.Second
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, sec)
	}
	return fmt.Sprintf("%ds", sec)
}
