package assets

import (
	"sort"
	"strings"
)

// AssetType identifies the kind of asset a file contributes to
type AssetType string

const (
	TypeJS  AssetType = "js"
	TypeCSS AssetType = "css"
)

// Size is the measured size of a single asset in bytes
type Size struct {
	Raw  int64 `json:"raw"`
	Gzip int64 `json:"gzip"`
}

// Add returns the element-wise sum of s and other
func (s Size) Add(other Size) Size {
	return Size{Raw: s.Raw + other.Raw, Gzip: s.Gzip + other.Gzip}
}

// SizeMap maps an asset filename to its measured size.
// A map produced by a measurement is never modified afterwards.
type SizeMap map[string]Size

// Keys returns the filenames in lexical order
func (m SizeMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ClassifyFile returns the asset type of a filename based on its suffix.
// Files that are neither JS nor CSS report false.
func ClassifyFile(name string) (AssetType, bool) {
	switch {
	case strings.HasSuffix(name, ".js"):
		return TypeJS, true
	case strings.HasSuffix(name, ".css"):
		return TypeCSS, true
	default:
		return "", false
	}
}
