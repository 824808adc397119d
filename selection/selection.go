// Package selection picks files out of a normalized listing: the most recently modified file, or the newest-dated
// file per key for files following a dated naming convention.
package selection

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/c2fo/doclib"
)

// FundFilePattern matches fund position files, ie FD01_20230101_1_ALPHA_FIM.xml.  Group 1 is the date, group 3 the
// fund code.  The fund code may hold any Unicode letter or digit (AÇÃO), and the extension dot is literal, so
// FD01_20230101_1_ALPHA_FIMaxml is not a fund file.
var FundFilePattern = regexp.MustCompile(`^FD\d+_(\d+)_(\d+)_([\p{L}\p{N}_]+)_(FIM|FIA)\.xml$`)

const (
	fundDateGroup = 1
	fundKeyGroup  = 3
)

// newer reports whether a sorts before b: later ModifiedAt first, then lexicographically smaller Name.
func newer(a, b doclib.FileRef) int {
	if c := b.ModifiedAt.Compare(a.ModifiedAt); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// SelectLatest returns the file with the greatest ModifiedAt.  Files modified at the same instant resolve to the
// lexicographically smallest Name; if names are equal too, the first one encountered wins.
func SelectLatest(files []doclib.FileRef) (doclib.FileRef, error) {
	if len(files) == 0 {
		return doclib.FileRef{}, doclib.ErrEmptyInput
	}

	latest := files[0]
	for _, f := range files[1:] {
		if newer(f, latest) < 0 {
			latest = f
		}
	}
	return latest, nil
}

// SortByModified returns a copy of files ordered newest first, with the same tie-break as SelectLatest.
func SortByModified(files []doclib.FileRef) []doclib.FileRef {
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, newer)
	return sorted
}

// SelectNewestByKey groups the names matching pattern by the (uppercased) keyGroup submatch and keeps, per key, the
// name whose dateGroup submatch is the largest integer.  Dates are compared as digit strings, so their width is
// unbounded.  Names that don't match, or whose date isn't an integer, are skipped.  On equal dates the first name seen
// is kept.
func SelectNewestByKey(names []string, pattern *regexp.Regexp, dateGroup, keyGroup int) map[string]string {
	type candidate struct {
		name string
		date string
	}

	best := make(map[string]candidate)
	for _, name := range names {
		m := pattern.FindStringSubmatch(name)
		if m == nil || dateGroup >= len(m) || keyGroup >= len(m) {
			continue
		}
		date, ok := digits(m[dateGroup])
		if !ok {
			continue
		}
		key := strings.ToUpper(m[keyGroup])
		if cur, ok := best[key]; !ok || compareDigits(date, cur.date) > 0 {
			best[key] = candidate{name: name, date: date}
		}
	}

	result := make(map[string]string, len(best))
	for key, c := range best {
		result[key] = c.name
	}
	return result
}

// digits returns s without leading zeros, or false when s isn't a non-empty run of ASCII digits.
func digits(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return strings.TrimLeft(s, "0"), true
}

// compareDigits compares two integers written as digit strings without leading zeros.
func compareDigits(a, b string) int {
	if len(a) != len(b) {
		return cmp.Compare(len(a), len(b))
	}
	return strings.Compare(a, b)
}

// FundFiles maps each fund code to its newest fund position file.
func FundFiles(names []string) map[string]string {
	return SelectNewestByKey(names, FundFilePattern, fundDateGroup, fundKeyGroup)
}

// FundFileKey returns the uppercased fund code of name, or false when name isn't a fund position file.
func FundFileKey(name string) (string, bool) {
	m := FundFilePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[fundKeyGroup]), true
}

// Names returns the names of files, in order.
func Names(files []doclib.FileRef) []string {
	names := make([]string, len(files))
	for i := range files {
		names[i] = files[i].Name
	}
	return names
}
