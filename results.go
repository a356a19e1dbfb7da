package cssdocs

// Printout names used by the default queries.
const (
	PrintoutSummary          = "Summary"
	PrintoutPropertyValue    = "Property value"
	PrintoutValueDescription = "Property value description"
	PrintoutValueForProperty = "Value for property"
)

// QueryResults is the decoded "results" object of an ask API response.
type QueryResults struct {
	// Entries appear in the order of the response.
	Entries []*ResultEntry
}

// ResultEntry is one matched page.
type ResultEntry struct {
	Key     string
	FullURL string

	// Printouts holds string printouts by name. Page printouts are
	// reduced to their full text.
	Printouts map[string][]string
}

// First returns the first value of the named printout, or "" when the
// printout is absent or empty.
func (e *ResultEntry) First(name string) string {
	if values := e.Printouts[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// ResponseParser decodes an ask API response body.
type ResponseParser interface {
	// Parse returns EPARSE when body is not a valid query envelope.
	Parse(body string) (*QueryResults, error)
}
