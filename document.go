package cssdocs

import "time"

// DateTimeLayout is the format of the artifact's DATETIME field.
// It matches HTTP-date (RFC 1123 in GMT).
const DateTimeLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Value is one allowed value of a CSS property.
type Value struct {
	Value       string `json:"value"`       // HTML fragment
	Description string `json:"description"` // HTML fragment, possibly empty
}

// Property is one entry of the result document.
type Property struct {
	Summary string   `json:"SUMMARY"`
	URL     string   `json:"URL"`
	Values  []*Value `json:"VALUES,omitempty"`
}

// Document maps property identifiers to properties.
// Keys keep their insertion order, which is the serialization order.
type Document struct {
	keys  []string
	props map[string]*Property
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{props: make(map[string]*Property)}
}

// Put inserts or replaces the property stored under id.
// A replaced property keeps the position of the original key.
func (d *Document) Put(id string, p *Property) {
	if _, ok := d.props[id]; !ok {
		d.keys = append(d.keys, id)
	}
	d.props[id] = p
}

// Get returns the property stored under id.
func (d *Document) Get(id string) (*Property, bool) {
	p, ok := d.props[id]
	return p, ok
}

// Keys returns the identifiers in insertion order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// Len returns the number of properties.
func (d *Document) Len() int {
	return len(d.keys)
}

// Artifact is the serialized output of a successful run.
type Artifact struct {
	Generated  time.Time
	Properties *Document
}

// DateTime returns the generation timestamp formatted with DateTimeLayout.
func (a *Artifact) DateTime() string {
	return a.Generated.UTC().Format(DateTimeLayout)
}
