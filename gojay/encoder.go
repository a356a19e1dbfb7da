package gojay

import (
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cssdocs"
	"github.com/francoispqt/gojay"
)

// EncodeArtifact serializes a as
// {"DATETIME":...,"PROPERTIES":{<id>:{"SUMMARY","URL","VALUES"}}}
// with properties in document order.
func EncodeArtifact(a *cssdocs.Artifact) ([]byte, error) {
	return gojay.MarshalJSONObject(artifact{a})
}

// Digest returns the xxhash of the encoded properties. Two runs over
// identical responses produce the same digest.
func Digest(doc *cssdocs.Document) (uint64, error) {
	b, err := gojay.MarshalJSONObject(document{doc})
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(b), nil
}

type artifact struct {
	*cssdocs.Artifact
}

func (a artifact) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("DATETIME", a.DateTime())
	enc.ObjectKey("PROPERTIES", document{a.Properties})
}

func (a artifact) IsNil() bool { return a.Artifact == nil }

type document struct {
	*cssdocs.Document
}

func (d document) MarshalJSONObject(enc *gojay.Encoder) {
	if d.Document == nil {
		return
	}
	for _, id := range d.Keys() {
		p, _ := d.Get(id)
		enc.ObjectKey(id, property{p})
	}
}

func (d document) IsNil() bool { return false }

type property struct {
	*cssdocs.Property
}

func (p property) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("SUMMARY", p.Summary)
	enc.StringKey("URL", p.URL)
	if len(p.Values) > 0 {
		enc.ArrayKey("VALUES", valueList(p.Values))
	}
}

func (p property) IsNil() bool { return p.Property == nil }

type valueList []*cssdocs.Value

func (l valueList) MarshalJSONArray(enc *gojay.Encoder) {
	for _, v := range l {
		enc.Object(value{v})
	}
}

func (l valueList) IsNil() bool { return l == nil }

type value struct {
	*cssdocs.Value
}

func (v value) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("value", v.Value.Value)
	enc.StringKey("description", v.Description)
}

func (v value) IsNil() bool { return v.Value == nil }
