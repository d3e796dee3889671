package report

import (
	"asset-size-action/domain/assets"
	"asset-size-action/domain/report"
	"asset-size-action/infrastructure/logging"
)

// Options selects the optional parts of a report
type Options struct {
	Normalize      bool // strip content hashes from asset names before diffing
	ShowTotalDiffs bool
	ShowTotals     bool
	ShowRemoved    bool
}

// DefaultOptions renders every section from fingerprinted build output
func DefaultOptions() Options {
	return Options{Normalize: true, ShowTotalDiffs: true, ShowTotals: true, ShowRemoved: true}
}

// Compare runs the size comparison for two builds and renders the report
func Compare(base, pr assets.SizeMap, opts Options) *report.Report {
	if opts.Normalize {
		base = normalize(base)
		pr = normalize(pr)
	}

	files := assets.DiffSizes(base, pr)
	removed := assets.RemovedFiles(base, pr)
	baseTotals := assets.SumAssetSizes(base)
	prTotals := assets.SumAssetSizes(pr)
	totalDiffs := assets.DiffTotals(baseTotals, prTotals)

	var renderOpts []report.Option
	if opts.ShowRemoved {
		renderOpts = append(renderOpts, report.WithRemoved(removed))
	}
	var diffsArg *assets.TypeDelta
	if opts.ShowTotalDiffs {
		diffsArg = &totalDiffs
	}
	var totalsArg *assets.TypeTotals
	if opts.ShowTotals {
		totalsArg = &prTotals
	}

	return &report.Report{
		Markdown:   report.BuildOutputText(files, diffsArg, totalsArg, renderOpts...),
		Files:      files,
		Removed:    removed,
		BaseTotals: baseTotals,
		PRTotals:   prTotals,
		TotalDiffs: totalDiffs,
	}
}

func normalize(sizes assets.SizeMap) assets.SizeMap {
	normalized, ignored := assets.NormalizeFingerprints(sizes)
	for _, name := range ignored {
		logging.Info("ignoring file as it does not match known asset file pattern", logging.String("file", name))
	}
	return normalized
}
