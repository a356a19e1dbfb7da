package cssdocs

import (
	"net/url"
	"strings"
)

// ScopePlaceholder marks where a scope is substituted into a query template.
const ScopePlaceholder = "{path}"

// Default ask API query templates.
//
//	#ask: [[Path::~{path}/*]]|?Summary|prettyprint=no|limit=100000
//	#ask: [[Value for property::~{path}/*]]|?Property value|?Property value description|?Value for property|prettyprint=no|limit=100000
const (
	DefaultPropertiesQuery = "https://docs.webplatform.org/w/api.php?action=ask&format=json&query=%20%5B%5BPath%3A%3A~" + ScopePlaceholder + "%2F*%5D%5D%7C%3FSummary%7Cprettyprint%3Dno%7Climit%3D100000"
	DefaultValuesQuery     = "https://docs.webplatform.org/w/api.php?action=ask&format=json&query=%5B%5BValue%20for%20property%3A%3A~" + ScopePlaceholder + "%2F*%5D%5D%7C%3FProperty%20value%7C%3FProperty%20value%20description%7C%3FValue%20for%20property%7Cprettyprint%3Dno%7Climit%3D100000"
)

// Queries holds the two URL templates issued for every scope.
type Queries struct {
	Properties string
	Values     string
}

// DefaultQueries returns the webplatform.org query templates.
func DefaultQueries() Queries {
	return Queries{
		Properties: DefaultPropertiesQuery,
		Values:     DefaultValuesQuery,
	}
}

// Validate returns an ECONFIG error unless both templates carry exactly one placeholder.
func (q Queries) Validate() error {
	if strings.Count(q.Properties, ScopePlaceholder) != 1 {
		return Errorf(ECONFIG, "properties query must contain %s exactly once", ScopePlaceholder)
	}
	if strings.Count(q.Values, ScopePlaceholder) != 1 {
		return Errorf(ECONFIG, "values query must contain %s exactly once", ScopePlaceholder)
	}
	return nil
}

// For returns the properties and values query URLs for scope.
func (q Queries) For(scope string) (propertiesURL, valuesURL string) {
	return BuildQueryURL(q.Properties, scope), BuildQueryURL(q.Values, scope)
}

// BuildQueryURL substitutes the percent-encoded scope into template.
func BuildQueryURL(template, scope string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(scope), "+", "%20")
	return strings.Replace(template, ScopePlaceholder, escaped, 1)
}
