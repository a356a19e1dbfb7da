package mock

import "github.com/fwojciec/cssdocs"

var _ cssdocs.ValueSorter = (*ValueSorter)(nil)

// ValueSorter is a mock implementation of cssdocs.ValueSorter.
type ValueSorter struct {
	SortFn func(values []*cssdocs.Value)
}

func (s *ValueSorter) Sort(values []*cssdocs.Value) {
	s.SortFn(values)
}
