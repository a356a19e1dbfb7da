// Package gojay decodes ask API responses and encodes the output artifact
// using github.com/francoispqt/gojay, which visits object keys in document
// order. Property and value order therefore follows the remote response.
package gojay

import (
	"bytes"
	"encoding/json"

	"github.com/fwojciec/cssdocs"
	"github.com/francoispqt/gojay"
)

// Ensure Parser implements cssdocs.ResponseParser at compile time.
var _ cssdocs.ResponseParser = (*Parser)(nil)

// Parser decodes the ask API envelope
// {"query":{"results":{<key>:{"printouts":{...},"fullurl":...}}}}.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes body into query results.
func (p *Parser) Parse(body string) (*cssdocs.QueryResults, error) {
	data := []byte(body)
	if !json.Valid(data) {
		return nil, cssdocs.Errorf(cssdocs.EPARSE, "invalid response body: not a single JSON value")
	}
	var env envelope
	if err := gojay.UnmarshalJSONObject(data, &env); err != nil {
		return nil, cssdocs.Errorf(cssdocs.EPARSE, "invalid response body: %v", err)
	}
	if env.apiErr != nil {
		return nil, cssdocs.Errorf(cssdocs.EPARSE, "ask API error %s: %s", env.apiErr.code, env.apiErr.info)
	}
	if env.query == nil || !env.query.found {
		return nil, cssdocs.Errorf(cssdocs.EPARSE, "response has no query results")
	}
	return &cssdocs.QueryResults{Entries: env.query.results.entries}, nil
}

type envelope struct {
	query  *query
	apiErr *apiError
}

func (e *envelope) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "query":
		e.query = &query{}
		return dec.Object(e.query)
	case "error":
		e.apiErr = &apiError{}
		return dec.Object(e.apiErr)
	}
	return nil
}

func (e *envelope) NKeys() int { return 0 }

type apiError struct {
	code string
	info string
}

func (e *apiError) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "code":
		return dec.String(&e.code)
	case "info":
		return dec.String(&e.info)
	}
	return nil
}

func (e *apiError) NKeys() int { return 2 }

type query struct {
	found   bool
	results resultSet
}

func (q *query) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	if key != "results" {
		return nil
	}
	q.found = true
	return objectOrEmptyArray(dec, &q.results)
}

func (q *query) NKeys() int { return 0 }

type resultSet struct {
	entries []*cssdocs.ResultEntry
}

func (r *resultSet) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	e := &entry{ResultEntry: &cssdocs.ResultEntry{
		Key:       key,
		Printouts: make(map[string][]string),
	}}
	if err := dec.Object(e); err != nil {
		return err
	}
	r.entries = append(r.entries, e.ResultEntry)
	return nil
}

func (r *resultSet) NKeys() int { return 0 }

type entry struct {
	*cssdocs.ResultEntry
}

func (e *entry) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "fullurl":
		return dec.String(&e.FullURL)
	case "printouts":
		return objectOrEmptyArray(dec, printoutSet(e.Printouts))
	}
	return nil
}

func (e *entry) NKeys() int { return 0 }

type printoutSet map[string][]string

func (p printoutSet) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	var list printoutList
	if err := dec.Array(&list); err != nil {
		return err
	}
	p[key] = list
	return nil
}

func (p printoutSet) NKeys() int { return 0 }

// printoutList collects string printouts. Page printouts contribute their
// "fulltext"; other value types are ignored.
type printoutList []string

func (l *printoutList) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var raw gojay.EmbeddedJSON
	if err := dec.AddEmbeddedJSON(&raw); err != nil {
		return err
	}
	// Decode from a private copy: gojay unescapes strings in place.
	trimmed := append([]byte(nil), bytes.TrimSpace(raw)...)
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := gojay.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*l = append(*l, s)
	case '{':
		var pg page
		if err := gojay.UnmarshalJSONObject(trimmed, &pg); err != nil {
			return err
		}
		if pg.found {
			*l = append(*l, pg.fulltext)
		}
	}
	return nil
}

// page is a page-reference printout.
type page struct {
	fulltext string
	found    bool
}

func (p *page) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	if key != "fulltext" {
		return nil
	}
	p.found = true
	return dec.String(&p.fulltext)
}

func (p *page) NKeys() int { return 0 }

// objectOrEmptyArray decodes an object into v. The ask API serializes an
// empty object as [], which is accepted as no keys.
func objectOrEmptyArray(dec *gojay.Decoder, v gojay.UnmarshalerJSONObject) error {
	var raw gojay.EmbeddedJSON
	if err := dec.AddEmbeddedJSON(&raw); err != nil {
		return err
	}
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		return nil
	case trimmed[0] == '[':
		inner := bytes.TrimSuffix(trimmed[1:], []byte("]"))
		if len(bytes.TrimSpace(inner)) != 0 {
			return cssdocs.Errorf(cssdocs.EPARSE, "expected object, got non-empty array")
		}
		return nil
	}
	return gojay.UnmarshalJSONObject(trimmed, v)
}
