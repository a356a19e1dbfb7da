package mock

import "github.com/fwojciec/cssdocs"

var _ cssdocs.ResponseParser = (*ResponseParser)(nil)

// ResponseParser is a mock implementation of cssdocs.ResponseParser.
type ResponseParser struct {
	ParseFn func(body string) (*cssdocs.QueryResults, error)
}

func (p *ResponseParser) Parse(body string) (*cssdocs.QueryResults, error) {
	return p.ParseFn(body)
}
