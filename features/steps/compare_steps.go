//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	appreport "asset-size-action/application/report"
	"asset-size-action/cmd"
	"asset-size-action/domain/assets"
	"asset-size-action/domain/report"

	"github.com/cucumber/godog"
)

// fixtureHash stands in for a build fingerprint in asset names
const fixtureHash = "0123456789abcdef0123456789abcdef"

var sectionHeadings = map[string]string{
	"bigger":      report.HeadingBigger,
	"smaller":     report.HeadingSmaller,
	"same":        report.HeadingSame,
	"removed":     report.HeadingRemoved,
	"total diffs": report.HeadingTotalDiffs,
	"totals":      report.HeadingTotals,
}

type compareContext struct {
	tempDir  string
	basePath string
	prPath   string
	opts     appreport.Options
	output   bytes.Buffer
	err      error
}

var SharedCompareContext = &compareContext{}

func InitializeCompareScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedCompareContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "compare-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.basePath = filepath.Join(tempDir, "base.json")
		testCtx.prPath = filepath.Join(tempDir, "pr.json")
		testCtx.opts = appreport.DefaultOptions()
		testCtx.output.Reset()
		testCtx.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^the base build produced:$`, testCtx.theBaseBuildProduced)
	ctx.Step(`^the pull request build produced:$`, testCtx.thePullRequestBuildProduced)
	ctx.Step(`^total tables are turned off$`, testCtx.totalTablesAreTurnedOff)
	ctx.Step(`^removed files are not listed$`, testCtx.removedFilesAreNotListed)
	ctx.Step(`^I compare the builds$`, testCtx.iCompareTheBuilds)
	ctx.Step(`^"([^"]*)" should be listed under (bigger|smaller|same|removed|total diffs|totals) as "([^"]*)"$`, testCtx.shouldBeListedUnderAs)
	ctx.Step(`^the report should not have a (bigger|smaller|same|removed|total diffs|totals) section$`, testCtx.theReportShouldNotHaveASection)
	ctx.Step(`^the report sections should be in order:$`, testCtx.theReportSectionsShouldBeInOrder)
	ctx.Step(`^the compare output should be "([^"]*)"$`, testCtx.theCompareOutputShouldBe)
}

// writeSizeTable writes a | file | raw | gzip | table as a size report,
// replacing {hash} in file names with a fixed fingerprint
func writeSizeTable(path string, table *godog.Table) error {
	sizes := assets.SizeMap{}
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		name := strings.ReplaceAll(row.Cells[0].Value, "{hash}", fixtureHash)
		raw, err := strconv.ParseInt(row.Cells[1].Value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid raw size for %s: %w", name, err)
		}
		gzip, err := strconv.ParseInt(row.Cells[2].Value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid gzip size for %s: %w", name, err)
		}
		sizes[name] = assets.Size{Raw: raw, Gzip: gzip}
	}

	data, err := json.Marshal(sizes)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *compareContext) theBaseBuildProduced(table *godog.Table) error {
	return writeSizeTable(c.basePath, table)
}

func (c *compareContext) thePullRequestBuildProduced(table *godog.Table) error {
	return writeSizeTable(c.prPath, table)
}

func (c *compareContext) totalTablesAreTurnedOff() error {
	c.opts.ShowTotals = false
	c.opts.ShowTotalDiffs = false
	return nil
}

func (c *compareContext) removedFilesAreNotListed() error {
	c.opts.ShowRemoved = false
	return nil
}

func (c *compareContext) iCompareTheBuilds() error {
	c.err = cmd.RunCompareWithDependencies(c.basePath, c.prPath, c.opts, &c.output)
	if c.err != nil {
		return fmt.Errorf("compare failed: %w", c.err)
	}
	return nil
}

// parseSections maps each heading in the output to its table rows
func parseSections(output string) (map[string][]string, []string) {
	sections := map[string][]string{}
	var order []string
	current := ""
	for _, line := range strings.Split(output, "\n") {
		if strings.HasSuffix(line, ":") && !strings.Contains(line, "|") {
			current = line
			order = append(order, line)
			continue
		}
		if current == "" || !strings.Contains(line, "|") {
			continue
		}
		if line == "File | raw | gzip" || line == "--- | --- | ---" {
			continue
		}
		sections[current] = append(sections[current], line)
	}
	return sections, order
}

func (c *compareContext) shouldBeListedUnderAs(file, section, sizes string) error {
	return expectRow(c.output.String(), file, section, sizes)
}

func expectRow(output, file, section, sizes string) error {
	sections, _ := parseSections(output)
	want := file + "|" + sizes
	for _, row := range sections[sectionHeadings[section]] {
		if row == want {
			return nil
		}
	}
	return fmt.Errorf("expected row %q under %s, got %v\noutput:\n%s", want, section, sections[sectionHeadings[section]], output)
}

func (c *compareContext) theReportShouldNotHaveASection(section string) error {
	if strings.Contains(c.output.String(), sectionHeadings[section]) {
		return fmt.Errorf("expected no %s section, got:\n%s", section, c.output.String())
	}
	return nil
}

func (c *compareContext) theReportSectionsShouldBeInOrder(table *godog.Table) error {
	_, order := parseSections(c.output.String())
	var want []string
	for _, row := range table.Rows {
		want = append(want, sectionHeadings[row.Cells[0].Value])
	}
	if strings.Join(order, "\n") != strings.Join(want, "\n") {
		return fmt.Errorf("expected sections %q, got %q", want, order)
	}
	return nil
}

func (c *compareContext) theCompareOutputShouldBe(expected string) error {
	if got := strings.TrimSpace(c.output.String()); got != expected {
		return fmt.Errorf("expected output %q, got %q", expected, got)
	}
	return nil
}
