// Package cssdocs builds a CSS reference dataset (property summaries, URLs
// and allowed values) from a Semantic MediaWiki ask API and serializes it
// as a timestamped JSON artifact.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gojay/, collate/, yaml/).
package cssdocs
