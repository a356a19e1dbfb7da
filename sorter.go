package cssdocs

// ValueSorter orders a property's values in place.
type ValueSorter interface {
	Sort(values []*Value)
}
