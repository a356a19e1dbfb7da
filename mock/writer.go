package mock

import (
	"context"

	"github.com/fwojciec/cssdocs"
)

var _ cssdocs.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of cssdocs.ArtifactWriter.
type ArtifactWriter struct {
	WriteArtifactFn func(ctx context.Context, a *cssdocs.Artifact) error
}

func (w *ArtifactWriter) WriteArtifact(ctx context.Context, a *cssdocs.Artifact) error {
	return w.WriteArtifactFn(ctx, a)
}
