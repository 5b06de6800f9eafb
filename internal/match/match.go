// Package match ranks and filters select options against a typed query.
//
// Matching is done on normalized text: diacritics are stripped and case is
// folded, so "É" matches "e" and "Straße" matches "STRASSE". Results are
// always a subsequence-preserving selection of the input options.
package match

import (
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option is a single selectable entry.
type Option struct {
	Label    string
	Value    string
	Disabled bool
}

// Field selects which Option attribute an exact lookup compares against.
type Field int

const (
	FieldLabel Field = iota
	FieldValue
)

var folder = cases.Fold()

// Normalize folds case and strips combining marks so that comparisons are
// insensitive to both.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return folder.String(stripped)
}

// Match returns the options whose label contains query. Options whose label
// starts with query come first; each tier keeps the input order. An empty
// query returns every option.
func Match(query string, options []Option) []Option {
	return Matcher{}.Match(query, options)
}

// FindExactMatchBy returns the first option whose label or value equals
// value after normalization.
func FindExactMatchBy(field Field, value string, options []Option) (Option, bool) {
	needle := Normalize(value)
	if needle == "" {
		return Option{}, false
	}
	for _, opt := range options {
		candidate := opt.Label
		if field == FieldValue {
			candidate = opt.Value
		}
		if Normalize(candidate) == needle {
			return opt, true
		}
	}
	return Option{}, false
}

// FindBestMatch returns the top ranked, enabled option for query.
func FindBestMatch(query string, options []Option) (Option, bool) {
	return Matcher{}.BestMatch(query, options)
}

// Matcher carries ranking knobs. The zero value ranks by prefix, then
// substring, then all-words-present.
type Matcher struct {
	// Fuzzy appends a character-subsequence tier ranked by fuzzy score.
	Fuzzy bool
}

// Match ranks options against query.
func (m Matcher) Match(query string, options []Option) []Option {
	q := Normalize(query)
	if q == "" {
		out := make([]Option, len(options))
		copy(out, options)
		return out
	}

	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = Normalize(opt.Label)
	}

	var prefix, contains []Option
	used := make([]bool, len(options))
	for i, opt := range options {
		switch {
		case strings.HasPrefix(labels[i], q):
			prefix = append(prefix, opt)
			used[i] = true
		case strings.Contains(labels[i], q):
			contains = append(contains, opt)
			used[i] = true
		}
	}
	result := append(prefix, contains...)
	if len(result) > 0 {
		return result
	}

	if words := strings.Fields(q); len(words) > 1 {
		for i, opt := range options {
			if containsAll(labels[i], words) {
				result = append(result, opt)
				used[i] = true
			}
		}
	}

	if m.Fuzzy {
		for _, hit := range fuzzy.Find(q, labels) {
			if hit.Index >= 0 && hit.Index < len(options) && !used[hit.Index] {
				result = append(result, options[hit.Index])
				used[hit.Index] = true
			}
		}
	}
	return result
}

// BestMatch returns the first enabled option Match ranks for query.
func (m Matcher) BestMatch(query string, options []Option) (Option, bool) {
	if Normalize(query) == "" {
		return Option{}, false
	}
	for _, opt := range m.Match(query, options) {
		if !opt.Disabled {
			return opt, true
		}
	}
	return Option{}, false
}

func containsAll(label string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(label, w) {
			return false
		}
	}
	return true
}
