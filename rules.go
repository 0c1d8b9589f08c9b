package recwire

import "regexp"

// fieldRules is the per-field constraint record. Negative lengths and unset
// bound flags mean "no constraint", matching the builder's defaults.
type fieldRules struct {
	required bool

	minLen int // byte length for strings, element count for arrays; -1 unset
	maxLen int // -1 unset

	minVal, maxVal float64 // inclusive
	hasMin, hasMax bool

	pattern    *regexp.Regexp // compiled as a full match
	patternSrc string
	enum       []string // exact, case-sensitive
}

func newFieldRules() fieldRules {
	return fieldRules{minLen: -1, maxLen: -1}
}

// fullMatchPattern compiles expr so that the entire input must match, not
// merely contain a match.
func fullMatchPattern(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(`\A(?:` + expr + `)\z`)
}

func (r *fieldRules) inEnum(s string) bool {
	for _, e := range r.enum {
		if e == s {
			return true
		}
	}
	return false
}
