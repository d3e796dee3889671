package report

import (
	"strings"

	"asset-size-action/domain/assets"
)

// Section headings
const (
	HeadingBigger     = "Files that got Bigger 🚨:"
	HeadingSmaller    = "Files that got Smaller 🎉:"
	HeadingSame       = "Files that stayed the same size 🤷‍:"
	HeadingRemoved    = "Files that were removed 🗑️:"
	HeadingTotalDiffs = "Total Sizes diff 📊:"
	HeadingTotals     = "Total Sizes ⛄:"
)

const tableHeader = "File | raw | gzip\n--- | --- | ---\n"

// row is a table line with its byte counts already formatted
type row struct {
	File string
	Raw  string
	Gzip string
}

type section struct {
	heading string
	rows    []row
}

type options struct {
	removed assets.SizeMap
}

// Option configures optional report sections
type Option func(*options)

// WithRemoved adds a section listing files that exist only in the base build
func WithRemoved(removed assets.SizeMap) Option {
	return func(o *options) {
		o.removed = removed
	}
}

// BuildOutputText renders file and total size changes as Markdown tables.
//
// Files are split into bigger, smaller and unchanged by their raw delta. The
// totalDiffs and totals tables are only rendered when non-nil.
func BuildOutputText(fileDiffs assets.Diff, totalDiffs *assets.TypeDelta, totals *assets.TypeTotals, opts ...Option) string {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var bigger, smaller, same []row
	for _, f := range fileDiffs.Files() {
		r := deltaRow(f.File, f.Delta)
		switch {
		case f.Raw > 0:
			bigger = append(bigger, r)
		case f.Raw < 0:
			smaller = append(smaller, r)
		default:
			same = append(same, r)
		}
	}

	sections := []section{
		{HeadingBigger, bigger},
		{HeadingSmaller, smaller},
		{HeadingSame, same},
	}

	if len(o.removed) > 0 {
		var removed []row
		for _, name := range o.removed.Keys() {
			size := o.removed[name]
			removed = append(removed, deltaRow(name, assets.Delta{Raw: -size.Raw, Gzip: -size.Gzip}))
		}
		sections = append(sections, section{HeadingRemoved, removed})
	}

	if totalDiffs != nil {
		sections = append(sections, section{HeadingTotalDiffs, []row{
			deltaRow(string(assets.TypeJS), totalDiffs.JS),
			deltaRow(string(assets.TypeCSS), totalDiffs.CSS),
		}})
	}

	if totals != nil {
		sections = append(sections, section{HeadingTotals, []row{
			sizeRow(string(assets.TypeJS), totals.JS),
			sizeRow(string(assets.TypeCSS), totals.CSS),
		}})
	}

	// One blank line separates sections; more would not change the rendered Markdown
	var out strings.Builder
	for _, s := range sections {
		if len(s.rows) == 0 {
			continue
		}
		out.WriteString(s.heading)
		out.WriteString("\n\n")
		out.WriteString(renderTable(s.rows))
		out.WriteString("\n")
	}

	return strings.TrimSpace(out.String())
}

func deltaRow(file string, d assets.Delta) row {
	return row{File: file, Raw: FormatBytes(d.Raw, true), Gzip: FormatBytes(d.Gzip, true)}
}

func sizeRow(file string, s assets.Size) row {
	return row{File: file, Raw: FormatBytes(s.Raw, false), Gzip: FormatBytes(s.Gzip, false)}
}

func renderTable(rows []row) string {
	var b strings.Builder
	b.WriteString(tableHeader)
	for _, r := range rows {
		b.WriteString(r.File + "|" + r.Raw + "|" + r.Gzip + "\n")
	}
	return b.String()
}
