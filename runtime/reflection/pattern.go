package reflection

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Pattern is a reconstructed regular expression literal.
type Pattern struct {
	Source string `json:"source"`
	Flags  string `json:"flags"`
}

// String formats the pattern in literal form, e.g. /test/g.
func (p Pattern) String() string {
	return "/" + p.Source + "/" + p.Flags
}

// HasFlag reports whether flag is set.
func (p Pattern) HasFlag(flag rune) bool {
	return strings.ContainsRune(p.Flags, flag)
}

// Compile builds an ECMAScript-compatible matcher. The g, y and d flags
// affect iteration only and are accepted without changing the matcher.
func (p Pattern) Compile() (*regexp2.Regexp, error) {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	for _, f := range p.Flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'u', 'v':
			opts |= regexp2.Unicode
		case 'g', 'y', 'd':
		default:
			return nil, fmt.Errorf("%w: %q in %s", ErrInvalidPatternFlag, f, p)
		}
	}

	re, err := regexp2.Compile(p.Source, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", p, err)
	}
	return re, nil
}
