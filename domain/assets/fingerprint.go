package assets

import "regexp"

// fingerprintRegex matches build output paths such as
// dist/assets/vendor-0123456789abcdef0123456789abcdef.js
var fingerprintRegex = regexp.MustCompile(`dist/assets/([\w-]+)-\w{32}(.\w+)`)

// NormalizeFingerprints strips content hashes from asset paths so the same
// logical asset can be matched across two builds.
//
// The returned map is keyed by "<name>.<ext>". Keys that do not look like a
// fingerprinted asset are left out and returned as ignored so the caller can
// report them. Keys are visited in lexical order; when two inputs normalize to
// the same name the later one wins.
func NormalizeFingerprints(sizes SizeMap) (SizeMap, []string) {
	normalized := make(SizeMap, len(sizes))
	var ignored []string

	for _, key := range sizes.Keys() {
		matches := fingerprintRegex.FindStringSubmatch(key)
		if matches == nil {
			ignored = append(ignored, key)
			continue
		}
		normalized[matches[1]+matches[2]] = sizes[key]
	}

	return normalized, ignored
}
