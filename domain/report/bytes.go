package report

import "github.com/dustin/go-humanize"

// FormatBytes renders a byte count with an SI magnitude suffix ("1.0 kB").
// Signed output prefixes positive values with "+"; negative values always
// carry "-".
func FormatBytes(n int64, signed bool) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	s := humanize.Bytes(uint64(abs))

	switch {
	case n < 0:
		return "-" + s
	case signed && n > 0:
		return "+" + s
	default:
		return s
	}
}
