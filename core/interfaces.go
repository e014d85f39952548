// Package core defines the canonical conversation model and the pipeline
// interfaces for chatpipe. Each stage of the pipeline is a small, testable
// interface; concrete implementations live in the core/* subpackages.
package core

import (
	"context"
	"time"
)

// FetchResult holds the raw bytes of an input file and what we know about it.
type FetchResult struct {
	Path    string // "-" for stdin
	Data    []byte
	ModTime time.Time // zero for stdin
}

// Turn is one conversation turn pulled out of an HTML export, before its
// markup has been turned into text.
type Turn struct {
	Role string // raw role cue, lower-cased
	HTML string // inner HTML of the content container
	Rich bool   // content carries block markup worth converting to Markdown
	Text string // trimmed visible text
}

// Fetcher reads the raw input for a conversion.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*FetchResult, error)
}

// TurnExtractor finds the conversation turns in an HTML export. It is the
// only place that knows about the export's markup conventions.
type TurnExtractor interface {
	ExtractTurns(html string) ([]Turn, error)
}

// Normalizer converts a turn's HTML fragment into Markdown text.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer serializes a Conversation into an output format.
type Renderer interface {
	Render(conv *Conversation) ([]byte, error)
	// Suffix is appended to the input's base name to build the output file
	// name (e.g. ".md", "_converted.json").
	Suffix() string
}
