// Package fs provides file-based output for the harvested artifact.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/cssdocs"
	"github.com/fwojciec/cssdocs/gojay"
)

// Ensure Writer implements cssdocs.ArtifactWriter at compile time.
var _ cssdocs.ArtifactWriter = (*Writer)(nil)

// Writer writes the artifact as JSON to a single file.
//
// The file is written to a sibling temp file first and renamed into place,
// so the destination either keeps its previous content or holds the
// complete new artifact.
type Writer struct {
	path string
	perm os.FileMode
}

// NewWriter creates a Writer for path.
func NewWriter(path string) *Writer {
	return &Writer{path: path, perm: 0644}
}

// Path returns the destination file path.
func (w *Writer) Path() string {
	return w.path
}

// WriteArtifact encodes a and replaces the destination file.
func (w *Writer) WriteArtifact(ctx context.Context, a *cssdocs.Artifact) error {
	if a == nil || a.Properties == nil {
		return cssdocs.Errorf(cssdocs.EINVALID, "artifact has no properties")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := gojay.EncodeArtifact(a)
	if err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, data, w.perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, w.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
