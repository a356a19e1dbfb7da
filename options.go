package cssdocs

// Options is the resolved configuration consumed by a run.
type Options struct {
	// Output is the destination path of the JSON artifact.
	Output string

	// Paths are the scopes to query, processed in order.
	Paths []string

	ExcludeVendorPrefixed bool
	LowercaseKeys         bool
	Sort                  bool

	// AddProtocol makes protocol-relative property URLs absolute.
	AddProtocol bool

	// Locale selects the collation used when Sort is set. Defaults to "en".
	Locale string

	// Markdown converts every rendered fragment to Markdown.
	Markdown bool

	Queries Queries
}

// DefaultOptions returns the built-in defaults.
// Output and Paths have no default and must be configured.
func DefaultOptions() Options {
	return Options{
		Locale:  "en",
		Queries: DefaultQueries(),
	}
}

// Validate returns an ECONFIG error if a required option is missing.
func (o *Options) Validate() error {
	if o.Output == "" {
		return Errorf(ECONFIG, "output path required")
	}
	if len(o.Paths) == 0 {
		return Errorf(ECONFIG, "at least one path required")
	}
	return o.Queries.Validate()
}
