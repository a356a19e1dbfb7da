package mock

import "github.com/fwojciec/cssdocs"

var _ cssdocs.Converter = (*Converter)(nil)

// Converter is a mock implementation of cssdocs.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
