// Package natsort orders names by the first number they contain, so
// "file2" sorts before "file10".
package natsort

import (
	"regexp"
	"slices"
	"strings"
)

var reDigits = regexp.MustCompile(`\d+`)

// ByFirstNumber returns a stably sorted copy of names keyed on the first run
// of decimal digits in each name, compared as an integer. Names without
// digits sort after all others, keeping their relative order.
func ByFirstNumber(names []string) []string {
	return ByFirstNumberFunc(names, func(s string) string { return s })
}

// ByFirstNumberFunc is ByFirstNumber over the string key(item) of each item.
func ByFirstNumberFunc[T any](items []T, key func(T) string) []T {
	ks := make([]keyed[T], len(items))
	for i, it := range items {
		d := reDigits.FindString(key(it))
		ks[i] = keyed[T]{item: it, digits: trimZeros(d), ok: d != ""}
	}

	slices.SortStableFunc(ks, func(a, b keyed[T]) int {
		switch {
		case a.ok && !b.ok:
			return -1
		case !a.ok && b.ok:
			return 1
		case !a.ok && !b.ok:
			return 0
		}
		return compareDigits(a.digits, b.digits)
	})

	out := make([]T, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}

type keyed[T any] struct {
	item   T
	digits string
	ok     bool
}

// compareDigits compares two zero-trimmed decimal strings numerically
// without parsing, so arbitrarily long runs never overflow.
func compareDigits(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func trimZeros(d string) string {
	t := strings.TrimLeft(d, "0")
	if t == "" && d != "" {
		return "0"
	}
	return t
}
