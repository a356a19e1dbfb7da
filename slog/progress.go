package slog

import (
	"log/slog"

	"github.com/fwojciec/cssdocs/harvest"
)

// ProgressLogger returns a harvest.ProgressFunc that logs every state
// transition to logger.
func ProgressLogger(logger *slog.Logger) harvest.ProgressFunc {
	return func(e harvest.ProgressEvent) {
		switch e.State {
		case harvest.StateFetchingProperties:
			logger.Info("getting properties", "scope", e.Scope, "index", e.Index, "total", e.Total)
		case harvest.StateFetchingValues:
			logger.Info("getting values", "scope", e.Scope,
				"merged", e.Stats.Merged, "skipped", e.Stats.Skipped)
		case harvest.StateIdle:
			logger.Debug("scope done", "scope", e.Scope,
				"merged", e.Stats.Merged, "skipped", e.Stats.Skipped)
		case harvest.StateSorting:
			logger.Info("sorting values")
		case harvest.StateWriting:
			logger.Info("writing artifact")
		case harvest.StateDone:
			logger.Debug("harvest done")
		case harvest.StateFailed:
			logger.Error("harvest failed", "scope", e.Scope, "err", e.Error)
		}
	}
}
