package assets

import "testing"

func TestClassifyFile(t *testing.T) {
	tests := []struct {
		name   string
		want   AssetType
		wantOK bool
	}{
		{"app.js", TypeJS, true},
		{"dist/assets/vendor-" + hashA + ".js", TypeJS, true},
		{"app.css", TypeCSS, true},
		{"app.js.map", "", false},
		{"index.html", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyFile(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ClassifyFile(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSumAssetSizes(t *testing.T) {
	report := SizeMap{
		"app.js":     {Raw: 100, Gzip: 40},
		"vendor.js":  {Raw: 900, Gzip: 300},
		"app.css":    {Raw: 70, Gzip: 20},
		"vendor.css": {Raw: 30, Gzip: 10},
		"logo.svg":   {Raw: 5000, Gzip: 2000},
	}

	got := SumAssetSizes(report)

	want := TypeTotals{
		JS:  Size{Raw: 1000, Gzip: 340},
		CSS: Size{Raw: 100, Gzip: 30},
	}
	if got != want {
		t.Errorf("SumAssetSizes() = %+v, want %+v", got, want)
	}
}

func TestSumAssetSizes_Empty(t *testing.T) {
	got := SumAssetSizes(SizeMap{})

	if got != (TypeTotals{}) {
		t.Errorf("SumAssetSizes({}) = %+v, want all zero", got)
	}
	if got.Get(TypeJS) != (Size{}) || got.Get(TypeCSS) != (Size{}) {
		t.Error("expected both types to be present and zero")
	}
}

func TestSumAssetSizes_OrderIndependent(t *testing.T) {
	a := SizeMap{}
	b := SizeMap{}
	names := []string{"a.js", "b.js", "c.css", "d.css", "e.txt"}
	for i, name := range names {
		a[name] = Size{Raw: int64(i * 10), Gzip: int64(i)}
	}
	for i := len(names) - 1; i >= 0; i-- {
		b[names[i]] = Size{Raw: int64(i * 10), Gzip: int64(i)}
	}

	if SumAssetSizes(a) != SumAssetSizes(b) {
		t.Errorf("totals differ: %+v vs %+v", SumAssetSizes(a), SumAssetSizes(b))
	}
}

func TestDiffTotals(t *testing.T) {
	base := SizeMap{
		"app.js":  {Raw: 100, Gzip: 40},
		"app.css": {Raw: 70, Gzip: 20},
	}
	pr := SizeMap{
		"app.js":   {Raw: 150, Gzip: 60},
		"chunk.js": {Raw: 10, Gzip: 5},
	}

	baseTotals := SumAssetSizes(base)
	prTotals := SumAssetSizes(pr)
	got := DiffTotals(baseTotals, prTotals)

	if got.JS.Raw != prTotals.Get(TypeJS).Raw-baseTotals.Get(TypeJS).Raw {
		t.Errorf("js raw delta = %d, want %d", got.JS.Raw, prTotals.JS.Raw-baseTotals.JS.Raw)
	}
	want := TypeDelta{
		JS:  Delta{Raw: 60, Gzip: 25},
		CSS: Delta{Raw: -70, Gzip: -20},
	}
	if got != want {
		t.Errorf("DiffTotals() = %+v, want %+v", got, want)
	}
	if got.Get(TypeCSS) != want.CSS {
		t.Errorf("Get(css) = %+v, want %+v", got.Get(TypeCSS), want.CSS)
	}
}
