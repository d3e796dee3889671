package cmd

import (
	"context"
	"fmt"
	"time"

	appbuild "asset-size-action/application/build"
	appnotif "asset-size-action/application/notification"
	appreport "asset-size-action/application/report"
	"asset-size-action/domain/build"
	"asset-size-action/domain/notification"
	"asset-size-action/domain/pullrequest"
	"asset-size-action/domain/report"
	"asset-size-action/infrastructure/actions"
	"asset-size-action/infrastructure/config"
	"asset-size-action/infrastructure/git"
	"asset-size-action/infrastructure/github"
	"asset-size-action/infrastructure/gmail"
	"asset-size-action/infrastructure/logging"
	"asset-size-action/infrastructure/measure"
	"asset-size-action/infrastructure/npm"
	"asset-size-action/infrastructure/process"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compare asset sizes between a pull request and its base",
	Long: `Run the full pull request workflow:
1. Resolve the pull request from the GitHub Actions event
2. Check out the base commit, install dependencies, build and measure
3. Check out the head commit, install dependencies, build and measure
4. Compare sizes per file and per asset type
5. Publish the report

Runs that were not triggered by a pull request exit successfully without
doing anything.

Example:
  GITHUB_TOKEN=... GITHUB_EVENT_PATH=event.json asset-size-action report`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	runner := &process.ExecCommandRunner{}

	checkout := git.NewCheckout(git.WithCommandRunner(runner))
	if err := verifyInstalled(ctx, "git", checkout); err != nil {
		return err
	}

	measurer, err := newBuildService(ctx, cfg, runner, cfg.Project.SkipInstall, false)
	if err != nil {
		return err
	}

	client, err := github.NewClient(ctx, cfg.GitHub.Token, cfg.GitHub.APIURL)
	if err != nil {
		return err
	}
	accessor := github.NewAccessor(client, cfg.GitHub.EventPath, github.WithRepository(repositorySlug(cfg)))

	publishers, err := newPublishers(ctx, cfg, client)
	if err != nil {
		return err
	}

	return RunReportWithDependencies(ctx, cfg, accessor, checkout, measurer, publishers, DefaultOutput)
}

// RunReportWithDependencies runs the report command with injected dependencies (for testing)
func RunReportWithDependencies(
	ctx context.Context,
	cfg *config.Config,
	accessor pullrequest.Accessor,
	checkout build.Checkout,
	measurer appreport.Measurer,
	publishers []report.Publisher,
	out OutputWriter,
) error {
	svc := appreport.NewService(accessor, checkout, measurer, publishers, cfg.Project.Directory, reportOptions(cfg), out)
	_, err := svc.Run(ctx)
	return err
}

func reportOptions(cfg *config.Config) appreport.Options {
	return appreport.Options{
		Normalize:      true,
		ShowTotalDiffs: config.BoolValue(cfg.Report.ShowTotalDiffs),
		ShowTotals:     config.BoolValue(cfg.Report.ShowTotals),
		ShowRemoved:    config.BoolValue(cfg.Report.ShowRemoved),
	}
}

// newBuildService wires the npm toolchain, build command and measurer
func newBuildService(ctx context.Context, cfg *config.Config, runner process.CommandRunner, skipInstall, skipBuild bool) (*appbuild.Service, error) {
	var toolchain build.Toolchain
	if !skipInstall {
		tc, err := npm.DetectToolchain(ctx, runner)
		if err != nil {
			return nil, err
		}
		toolchain = tc
		logging.Debug("detected toolchain", logging.String("npm", tc.NPMVersion))
	}

	builder, err := npm.NewBuilder(cfg.Project.BuildCommand, npm.WithBuildRunner(runner))
	if err != nil {
		return nil, err
	}

	return appbuild.NewService(
		npm.NewDetector(),
		toolchain,
		npm.NewInstaller(npm.WithInstallRunner(runner)),
		builder,
		measure.NewMeasurer(cfg.Project.Patterns),
		appbuild.WithSkipInstall(skipInstall),
		appbuild.WithSkipBuild(skipBuild),
	), nil
}

// newPublishers returns stdout plus every publisher enabled in cfg
func newPublishers(ctx context.Context, cfg *config.Config, client *github.Client) ([]report.Publisher, error) {
	publishers := []report.Publisher{actions.NewWriterPublisher(DefaultOutput)}

	if config.BoolValue(cfg.GitHub.Comment) {
		publishers = append(publishers, github.NewCommentPublisher(client, cfg.GitHub.CommentMarker))
	}
	if cfg.Outputs.StepSummary != "" {
		publishers = append(publishers, actions.NewStepSummaryPublisher(cfg.Outputs.StepSummary))
	}
	if cfg.Outputs.GitHubOutput != "" {
		publishers = append(publishers, actions.NewOutputPublisher(cfg.Outputs.GitHubOutput))
	}

	if cfg.Email.Enabled {
		from := notification.Recipient{Name: cfg.Email.FromName, Address: cfg.Email.FromAddress}
		sender, err := gmail.NewClientWithServiceAccount(ctx, gmail.ServiceAccountConfig{
			CredentialsFile: cfg.Email.CredentialsFile,
		}, from)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gmail client: %w", err)
		}
		publishers = append(publishers, appnotif.NewService(
			sender,
			toRecipients(cfg.Email.Recipients),
			toRecipients(cfg.Email.CC),
			repositorySlug(cfg),
			cfg.Email.FromName,
		))
	}

	return publishers, nil
}

// repositorySlug prefers the configured repository and falls back to the
// origin remote of the project checkout
func repositorySlug(cfg *config.Config) string {
	if cfg.GitHub.Repository != "" {
		return cfg.GitHub.Repository
	}
	slug, err := git.RepositorySlug(cfg.Project.Directory)
	if err != nil {
		logging.Debug("could not read repository from git config", logging.Err(err))
		return ""
	}
	return slug
}

func toRecipients(rs []config.RecipientConfig) []notification.Recipient {
	out := make([]notification.Recipient, len(rs))
	for i, r := range rs {
		out[i] = notification.Recipient{Name: r.Name, Address: r.Address}
	}
	return out
}

// verifyInstalled checks an external tool when the dependency supports it
func verifyInstalled(ctx context.Context, name string, dep any) error {
	verifiable, ok := dep.(interface{ VerifyInstalled(context.Context) error })
	if !ok {
		return nil
	}
	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
		return fmt.Errorf("%s verification failed: %w", name, err)
	}
	return nil
}
