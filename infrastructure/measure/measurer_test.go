package measure

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func gzipLen(t *testing.T, content string) int64 {
	t.Helper()
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return int64(buf.Len())
}

func TestMeasurer_Measure(t *testing.T) {
	dir := t.TempDir()
	js := strings.Repeat("function f(){return 1}\n", 50)
	css := "body{margin:0}"
	writeFile(t, dir, "dist/assets/app-0123456789abcdef0123456789abcdef.js", js)
	writeFile(t, dir, "dist/assets/chunks/vendor.js", "var a=1;")
	writeFile(t, dir, "dist/assets/app.css", css)
	writeFile(t, dir, "dist/assets/logo.svg", "<svg/>")
	writeFile(t, dir, "dist/index.js", "ignored")

	m := NewMeasurer([]string{"dist/assets/**.js", "dist/assets/**.css"})
	sizes, err := m.Measure(context.Background(), dir)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	// nested directories are not part of a segment-level "**"
	want := []string{
		"dist/assets/app-0123456789abcdef0123456789abcdef.js",
		"dist/assets/app.css",
	}
	if got := sizes.Keys(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Measure() keys = %v, want %v", got, want)
	}

	appJS := sizes["dist/assets/app-0123456789abcdef0123456789abcdef.js"]
	if appJS.Raw != int64(len(js)) {
		t.Errorf("raw = %d, want %d", appJS.Raw, len(js))
	}
	if appJS.Gzip != gzipLen(t, js) {
		t.Errorf("gzip = %d, want %d", appJS.Gzip, gzipLen(t, js))
	}
	if appJS.Gzip >= appJS.Raw {
		t.Errorf("repetitive content should compress: gzip %d >= raw %d", appJS.Gzip, appJS.Raw)
	}

	if sizes["dist/assets/app.css"].Raw != int64(len(css)) {
		t.Errorf("css raw = %d", sizes["dist/assets/app.css"].Raw)
	}
}

func TestMeasurer_MissingOutput(t *testing.T) {
	m := NewMeasurer([]string{"dist/assets/**.js"})

	sizes, err := m.Measure(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if len(sizes) != 0 {
		t.Errorf("Measure() = %v, want empty", sizes)
	}
}

func TestMeasurer_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dist/assets/app.js", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMeasurer([]string{"dist/assets/**.js"}).Measure(ctx, dir)
	if err == nil {
		t.Error("Measure() expected error for cancelled context")
	}
}

func TestCompileGlob(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"dist/assets/**.js", "dist/assets/app.js", true},
		{"dist/assets/**.js", "dist/assets/a/b/c.js", false},
		{"dist/assets/**.js", "dist/assets/chunks/vendor.js", false},
		{"dist/assets/**/*.js", "dist/assets/a/b/c.js", true},
		{"dist/assets/**/*.js", "dist/assets/app.js", true},
		{"dist/**", "dist/assets/app.js", true},
		{"dist/assets/**.js", "dist/assets/app.css", false},
		{"dist/assets/**.js", "dist/other/app.js", false},
		{"dist/assets/*.js", "dist/assets/a/b.js", false},
		{"dist/assets/*.js", "dist/assets/b.js", true},
		{"dist/assets/app.?s", "dist/assets/app.js", true},
		{"dist/assets/app.js", "dist/assets/app.js", true},
		{"dist/assets/app.js", "dist/assets/appXjs", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			re, err := compileGlob(tt.pattern)
			if err != nil {
				t.Fatal(err)
			}
			if got := re.MatchString(tt.path); got != tt.want {
				t.Errorf("match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGlobRoot(t *testing.T) {
	tests := map[string]string{
		"dist/assets/**.js": "dist/assets",
		"dist/assets/a.js":  "dist/assets",
		"**.js":             ".",
		"dist/*/x.js":       "dist",
	}
	for pattern, want := range tests {
		if got := globRoot(pattern); got != want {
			t.Errorf("globRoot(%q) = %q, want %q", pattern, got, want)
		}
	}
}
