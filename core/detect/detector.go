// Package detect recognizes which conversation schema an input document
// follows and normalizes it into a core.Conversation.
//
// Detection is structural: the file extension is never consulted. The known
// schemas form a closed, ordered set of variants whose Match predicates are
// mutually exclusive, so at most one variant ever applies.
package detect

import (
	"fmt"

	"github.com/gaurav-prasanna/chatpipe/core"
)

// Variant is one recognized input schema.
type Variant interface {
	Source() core.SourceFormat
	// Match reports whether doc has this variant's top-level shape.
	Match(doc *Document) bool
	// Normalize converts a matching document. It may assume Match(doc).
	Normalize(doc *Document) (*core.Conversation, error)
}

// Detector dispatches a Document to the first matching Variant.
type Detector struct {
	variants []Variant
}

// New creates a Detector for Playground, Workbench and ChatGPT HTML input,
// tried in that order. HTML turns are found by extractor and converted to
// text by normalizer.
func New(extractor core.TurnExtractor, normalizer core.Normalizer) *Detector {
	return NewWithVariants(
		Playground{},
		Workbench{},
		ChatGPTHTML{Extractor: extractor, Normalizer: normalizer},
	)
}

// NewWithVariants creates a Detector over an explicit variant list.
func NewWithVariants(variants ...Variant) *Detector {
	return &Detector{variants: variants}
}

// Detect normalizes doc with the first variant whose predicate matches.
// The returned Conversation has its Source set and satisfies
// Conversation.Validate.
func (d *Detector) Detect(doc *Document) (*core.Conversation, error) {
	for _, v := range d.variants {
		if !v.Match(doc) {
			continue
		}
		conv, err := v.Normalize(doc)
		if err != nil {
			return nil, err
		}
		conv.Source = v.Source()
		if err := conv.Validate(); err != nil {
			return nil, err
		}
		return conv, nil
	}
	return nil, &core.FormatError{
		Reason: core.ReasonUnrecognizedFormat,
		Detail: fmt.Sprintf("%s document does not match any known conversation schema", doc.Kind),
	}
}

// Matches lists every variant whose predicate accepts doc. For a well-formed
// detector this has at most one element.
func (d *Detector) Matches(doc *Document) []core.SourceFormat {
	var out []core.SourceFormat
	for _, v := range d.variants {
		if v.Match(doc) {
			out = append(out, v.Source())
		}
	}
	return out
}

func formatErr(source core.SourceFormat, reason core.Reason, format string, args ...any) error {
	return &core.FormatError{
		Reason: reason,
		Source: source,
		Detail: fmt.Sprintf(format, args...),
	}
}
