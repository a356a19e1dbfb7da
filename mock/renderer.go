package mock

import "github.com/fwojciec/cssdocs"

var _ cssdocs.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of cssdocs.Renderer.
type Renderer struct {
	RenderFn func(markup string) (string, error)
}

func (r *Renderer) Render(markup string) (string, error) {
	return r.RenderFn(markup)
}
