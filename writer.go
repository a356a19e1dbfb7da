package cssdocs

import "context"

// ArtifactWriter persists the final artifact.
// Implementations must not leave a partially written artifact behind.
type ArtifactWriter interface {
	WriteArtifact(ctx context.Context, a *Artifact) error
}
