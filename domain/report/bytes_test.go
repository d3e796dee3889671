package report

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n      int64
		signed bool
		want   string
	}{
		{0, false, "0 B"},
		{0, true, "0 B"},
		{5, true, "+5 B"},
		{500, true, "+500 B"},
		{500, false, "500 B"},
		{-500, true, "-500 B"},
		{1500, true, "+1.5 kB"},
		{-1500, true, "-1.5 kB"},
		{2048, false, "2.0 kB"},
		{1500000, false, "1.5 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatBytes(tt.n, tt.signed); got != tt.want {
				t.Errorf("FormatBytes(%d, %v) = %q, want %q", tt.n, tt.signed, got, tt.want)
			}
		})
	}
}
