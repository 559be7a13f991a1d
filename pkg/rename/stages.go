package rename

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultTitleExceptions are the Spanish articles, prepositions and
// conjunctions SmartTitle keeps lowercase after the first word.
var DefaultTitleExceptions = []string{"de", "del", "la", "el", "en", "y", "con", "a", "los", "las", "e"}

// DefaultDashKeywords are the section headings AddDashAfterKeywords marks
// when called without keywords.
var DefaultDashKeywords = []string{"encuentro prospectivo", "nota de actualidad"}

// Stage is a pure transformation of a name.
type Stage func(string) string

// ContainsFilter returns name when keyword is a substring of it (or is not,
// when invert is set) and "" otherwise. An empty result skips the rename.
func ContainsFilter(name, keyword string, invert bool) string {
	if strings.Contains(name, keyword) != invert {
		return name
	}
	return ""
}

// KeepAfter drops everything up to the first sep and joins the remaining
// parts with spaces. Without sep in name it falls back to the text after
// the last dot.
func KeepAfter(name, sep string) string {
	parts := strings.Split(name, sep)
	if len(parts) == 1 {
		tail := parts[0]
		if i := strings.LastIndexByte(tail, '.'); i >= 0 {
			tail = tail[i+1:]
		}
		return strings.TrimSpace(tail)
	}
	return strings.TrimSpace(strings.Join(parts[1:], " "))
}

// NormalizeSpacesLower collapses whitespace runs to single spaces, trims the
// ends and lowercases the result.
func NormalizeSpacesLower(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// AddDashAfterKeywords appends " -" after every occurrence of each keyword,
// trying keywords in order.
func AddDashAfterKeywords(name string, keywords []string) string {
	for _, k := range keywords {
		if k != "" && strings.Contains(name, k) {
			name = strings.ReplaceAll(name, k, k+" -")
		}
	}
	return name
}

// SmartTitle capitalizes each whitespace-separated word. Words listed in
// exceptions stay lowercase unless first; all-uppercase words of two or more
// characters are kept as acronyms.
func SmartTitle(name string, exceptions map[string]struct{}) string {
	words := strings.Fields(name)
	for i, w := range words {
		lower := strings.ToLower(w)
		if _, ok := exceptions[lower]; ok && i != 0 {
			words[i] = lower
			continue
		}
		if isAcronym(w) {
			continue
		}
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// ExceptionSet lowercases words into a lookup set.
func ExceptionSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// isAcronym reports whether w has at least two characters, at least one
// cased letter, and no lowercase letters.
func isAcronym(w string) bool {
	if utf8.RuneCountInString(w) < 2 {
		return false
	}
	cased := false
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return strings.ToLower(w)
	}
	return string(unicode.ToTitle(r)) + strings.ToLower(w[size:])
}
