package config

import (
	"fmt"
	"regexp"
	"strings"
)

// IgnoreList is a compiled set of filetype patterns. A filetype is ignored
// when any pattern matches the whole string; patterns are glob-style with
// "*" matching any run of characters, "?" matching one, and "[...]"
// character classes, anchored at both ends.
type IgnoreList struct {
	patterns []string
	compiled []*regexp.Regexp
}

// CompileIgnoreList compiles the patterns. A malformed pattern yields a
// *PatternError.
func CompileIgnoreList(patterns []string) (IgnoreList, error) {
	list := IgnoreList{
		patterns: append([]string(nil), patterns...),
		compiled: make([]*regexp.Regexp, 0, len(patterns)),
	}
	for _, pat := range patterns {
		re, err := compileGlob(pat)
		if err != nil {
			return IgnoreList{}, &PatternError{Pattern: pat, Err: err}
		}
		list.compiled = append(list.compiled, re)
	}
	return list, nil
}

// Match reports whether the filetype matches any pattern.
func (l IgnoreList) Match(filetype string) bool {
	for _, re := range l.compiled {
		if re.MatchString(filetype) {
			return true
		}
	}
	return false
}

// Patterns returns the source patterns the list was compiled from.
func (l IgnoreList) Patterns() []string {
	return append([]string(nil), l.patterns...)
}

// Len returns the number of patterns.
func (l IgnoreList) Len() int {
	return len(l.compiled)
}

// compileGlob translates a glob pattern to an anchored regexp.
func compileGlob(glob string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^(?:")
	for i := 0; i < len(glob); i++ {
		switch c := glob[i]; c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		case '[':
			end := strings.IndexByte(glob[i+1:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unclosed character class at offset %d", i)
			}
			b.WriteString(glob[i : i+end+2])
			i += end + 1
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString(")$")
	return regexp.Compile(b.String())
}
