package measure

import (
	"regexp"
	"strings"
)

// compileGlob converts a slash-separated glob into an anchored regexp.
//
//	**  as a whole path segment matches zero or more directories
//	*   matches within a single path segment, as does ** inside a segment
//	?   matches one character other than '/'
func compileGlob(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch ch := runes[i]; ch {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				startsSegment := i == 0 || runes[i-1] == '/'
				endsSegment := i+2 == len(runes) || runes[i+2] == '/'
				i++
				switch {
				case startsSegment && endsSegment && i+1 < len(runes):
					// "**/" also matches no directory at all
					b.WriteString("(?:.*/)?")
					i++
				case startsSegment && endsSegment:
					b.WriteString(".*")
				default:
					b.WriteString("[^/]*")
				}
				continue
			}
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}

	b.WriteString("$")
	return regexp.Compile(b.String())
}

// globRoot returns the longest leading directory of a pattern that holds no
// metacharacters, so walking can start there instead of at the project root.
func globRoot(pattern string) string {
	idx := strings.IndexAny(pattern, "*?")
	if idx < 0 {
		idx = len(pattern)
	}
	prefix := pattern[:idx]
	slash := strings.LastIndex(prefix, "/")
	if slash < 0 {
		return "."
	}
	return prefix[:slash]
}
