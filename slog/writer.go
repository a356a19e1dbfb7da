package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cssdocs"
)

// Ensure LoggingArtifactWriter implements cssdocs.ArtifactWriter.
var _ cssdocs.ArtifactWriter = (*LoggingArtifactWriter)(nil)

// LoggingArtifactWriter wraps an ArtifactWriter with logging.
type LoggingArtifactWriter struct {
	next   cssdocs.ArtifactWriter
	logger *slog.Logger
}

// NewLoggingArtifactWriter creates a new LoggingArtifactWriter.
func NewLoggingArtifactWriter(next cssdocs.ArtifactWriter, logger *slog.Logger) *LoggingArtifactWriter {
	return &LoggingArtifactWriter{next: next, logger: logger}
}

// WriteArtifact delegates to the wrapped writer and logs the operation.
func (w *LoggingArtifactWriter) WriteArtifact(ctx context.Context, a *cssdocs.Artifact) (err error) {
	defer func(begin time.Time) {
		properties := 0
		if a != nil && a.Properties != nil {
			properties = a.Properties.Len()
		}
		w.logger.Info("write artifact",
			"properties", properties,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteArtifact(ctx, a)
}
