package cssdocs

// Renderer converts wiki markup into an HTML fragment.
type Renderer interface {
	Render(markup string) (string, error)
}
