// Package collate provides a locale-aware cssdocs.ValueSorter built on
// golang.org/x/text/collate.
package collate

import (
	"sort"

	"github.com/fwojciec/cssdocs"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Ensure Sorter implements cssdocs.ValueSorter at compile time.
var _ cssdocs.ValueSorter = (*Sorter)(nil)

// Sorter orders values by the collation of their cssdocs.SortKey.
// A Sorter is not safe for concurrent use.
type Sorter struct {
	collator *collate.Collator
}

// NewSorter creates a Sorter for the given locale.
func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{collator: collate.New(tag)}
}

// ParseLocale returns a Sorter for a BCP 47 locale such as "en" or "de-CH".
func ParseLocale(locale string) (*Sorter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, cssdocs.Errorf(cssdocs.ECONFIG, "invalid locale %q: %v", locale, err)
	}
	return NewSorter(tag), nil
}

// Sort reorders values in place. Values with equal keys keep their
// relative order.
func (s *Sorter) Sort(values []*cssdocs.Value) {
	keys := make(map[*cssdocs.Value]string, len(values))
	for _, v := range values {
		keys[v] = norm.NFC.String(cssdocs.SortKey(v.Value))
	}
	sort.SliceStable(values, func(i, j int) bool {
		return s.collator.CompareString(keys[values[i]], keys[values[j]]) < 0
	})
}
