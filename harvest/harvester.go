// Package harvest provides the fetch-merge-transform pipeline. It queries
// every configured scope strictly in sequence, merges the results into one
// document, optionally sorts values and writes the artifact.
package harvest

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/cssdocs"
)

// State is a step of a run.
type State int

const (
	StateIdle State = iota
	StateFetchingProperties
	StateFetchingValues
	StateSorting
	StateWriting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingProperties:
		return "fetching properties"
	case StateFetchingValues:
		return "fetching values"
	case StateSorting:
		return "sorting"
	case StateWriting:
		return "writing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ProgressEvent reports a state transition.
type ProgressEvent struct {
	State State

	// Scope and Index (1-based) identify the scope being processed.
	Scope string
	Index int
	Total int

	// Stats are the merge counts of the step that just finished.
	Stats MergeStats

	Error error
}

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Harvester runs the pipeline over Options.Paths.
type Harvester struct {
	Fetcher cssdocs.Fetcher
	Parser  cssdocs.ResponseParser
	// Builder merges responses. Run replaces its Options with the
	// harvester's own.
	Builder *Builder
	Sorter  cssdocs.ValueSorter
	Writer  cssdocs.ArtifactWriter
	Options cssdocs.Options

	// Now returns the generation time. Defaults to time.Now.
	Now func() time.Time
}

type mergeFunc func(*cssdocs.Document, *cssdocs.QueryResults) (MergeStats, error)

// Run processes every scope, then sorts and writes the artifact.
//
// A scope's values query starts only after its properties have been
// merged, and the next scope starts only after both queries finished, so
// at most one request is in flight. Any failure aborts the run and nothing
// is written.
func (h *Harvester) Run(ctx context.Context, progress ProgressFunc) (*cssdocs.Artifact, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	fail := func(event ProgressEvent, err error) (*cssdocs.Artifact, error) {
		event.State, event.Error = StateFailed, err
		progress(event)
		return nil, err
	}

	if err := h.Options.Validate(); err != nil {
		return fail(ProgressEvent{}, err)
	}
	if h.Options.Sort && h.Sorter == nil {
		return fail(ProgressEvent{}, cssdocs.Errorf(cssdocs.ECONFIG, "sorting enabled without a sorter"))
	}

	// The builder merges with the options validated above.
	builder := *h.Builder
	builder.Options = h.Options

	doc := cssdocs.NewDocument()
	total := len(h.Options.Paths)
	for i, scope := range h.Options.Paths {
		event := ProgressEvent{Scope: scope, Index: i + 1, Total: total}
		propertiesURL, valuesURL := h.Options.Queries.For(scope)

		event.State = StateFetchingProperties
		progress(event)
		stats, err := h.step(ctx, doc, scope, cssdocs.StepProperties, propertiesURL, builder.MergeProperties)
		if err != nil {
			return fail(event, err)
		}

		event.State, event.Stats = StateFetchingValues, stats
		progress(event)
		stats, err = h.step(ctx, doc, scope, cssdocs.StepValues, valuesURL, builder.MergeValues)
		if err != nil {
			return fail(event, err)
		}

		event.State, event.Stats = StateIdle, stats
		progress(event)
	}

	if h.Options.Sort {
		progress(ProgressEvent{State: StateSorting, Total: total})
		for _, id := range doc.Keys() {
			p, _ := doc.Get(id)
			h.Sorter.Sort(p.Values)
		}
	}

	now := h.Now
	if now == nil {
		now = time.Now
	}
	artifact := &cssdocs.Artifact{
		Generated:  now().UTC(),
		Properties: doc,
	}

	if h.Writer != nil {
		progress(ProgressEvent{State: StateWriting, Total: total})
		if err := h.Writer.WriteArtifact(ctx, artifact); err != nil {
			return fail(ProgressEvent{Total: total}, fmt.Errorf("write artifact: %w", err))
		}
	}

	progress(ProgressEvent{State: StateDone, Total: total})
	return artifact, nil
}

// step fetches url, parses the response and merges it into doc.
func (h *Harvester) step(ctx context.Context, doc *cssdocs.Document, scope string, step cssdocs.Step, url string, merge mergeFunc) (MergeStats, error) {
	wrap := func(err error) error {
		return &cssdocs.StepError{Scope: scope, Step: step, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return MergeStats{}, wrap(cssdocs.Errorf(cssdocs.ETRANSPORT, "%v", err))
	}
	body, err := h.Fetcher.Fetch(ctx, url)
	if err != nil {
		if cssdocs.ErrorCode(err) == cssdocs.EINTERNAL {
			err = cssdocs.Errorf(cssdocs.ETRANSPORT, "%v", err)
		}
		return MergeStats{}, wrap(err)
	}

	results, err := h.Parser.Parse(body)
	if err != nil {
		if cssdocs.ErrorCode(err) == cssdocs.EINTERNAL {
			err = cssdocs.Errorf(cssdocs.EPARSE, "%v", err)
		}
		return MergeStats{}, wrap(err)
	}

	stats, err := merge(doc, results)
	if err != nil {
		return stats, wrap(err)
	}
	return stats, nil
}
