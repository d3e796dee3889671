package assets

// TypeTotals holds the summed sizes of every JS and CSS file in a build.
// Both types are always present, zero when no file of that type exists.
type TypeTotals struct {
	JS  Size `json:"js"`
	CSS Size `json:"css"`
}

// Get returns the totals for the given asset type
func (t TypeTotals) Get(typ AssetType) Size {
	if typ == TypeCSS {
		return t.CSS
	}
	return t.JS
}

// TypeDelta holds the per-type size change between two builds
type TypeDelta struct {
	JS  Delta `json:"js"`
	CSS Delta `json:"css"`
}

// Get returns the change for the given asset type
func (t TypeDelta) Get(typ AssetType) Delta {
	if typ == TypeCSS {
		return t.CSS
	}
	return t.JS
}

// SumAssetSizes adds up raw and gzip sizes per asset type.
// Files that are neither JS nor CSS are skipped.
func SumAssetSizes(report SizeMap) TypeTotals {
	var totals TypeTotals

	for name, size := range report {
		typ, ok := ClassifyFile(name)
		if !ok {
			continue
		}
		switch typ {
		case TypeJS:
			totals.JS = totals.JS.Add(size)
		case TypeCSS:
			totals.CSS = totals.CSS.Add(size)
		}
	}

	return totals
}

// DiffTotals returns the per-type change from the base totals to the pull
// request totals
func DiffTotals(base, pr TypeTotals) TypeDelta {
	return TypeDelta{
		JS:  subtract(pr.JS, base.JS),
		CSS: subtract(pr.CSS, base.CSS),
	}
}

func subtract(a, b Size) Delta {
	return Delta{Raw: a.Raw - b.Raw, Gzip: a.Gzip - b.Gzip}
}
